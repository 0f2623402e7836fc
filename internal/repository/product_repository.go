package repository

import (
	"context"
	"errors"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	Create(ctx context.Context, p model.Product) (model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	ListByStoreID(ctx context.Context, storeID int64) ([]model.Product, error)
	//公開中の商品一覧（is_available = true）
	ListAvailable(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
