package repository

import (
	"context"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error)
	// 同一商品は数量加算、無ければ新規作成
	AddQuantity(ctx context.Context, cartID int64, productID int64, addQty int64) error
	// 数量を上書き。明細が無ければ ErrNotFound
	SetQuantity(ctx context.Context, cartID int64, productID int64, qty int64) error
	// 明細が無ければ ErrNotFound
	DeleteByCartAndProduct(ctx context.Context, cartID int64, productID int64) error
	DeleteByCartID(ctx context.Context, cartID int64) error
}
