package repository

import (
	"context"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//status は空なら絞り込みなし
	ListByCustomerID(ctx context.Context, customerID int64, status model.OrderStatus) ([]model.Order, error)
	ListByStoreID(ctx context.Context, storeID int64, status model.OrderStatus) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	//decline の理由追記用。statusとnotesを同時に更新する。
	UpdateStatusAndNotes(ctx context.Context, orderID int64, status model.OrderStatus, notes string) error
}
