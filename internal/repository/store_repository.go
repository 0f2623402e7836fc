package repository

import (
	"context"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
)

type StoreRepository interface {
	Create(ctx context.Context, s model.Store) (model.Store, error)
	FindByID(ctx context.Context, id int64) (model.Store, error)
	List(ctx context.Context) ([]model.Store, error)
	ListByOwnerID(ctx context.Context, ownerID int64) ([]model.Store, error)
	Update(ctx context.Context, s model.Store) error
	//商品と注文もカスケードで消える
	Delete(ctx context.Context, id int64) error
}
