package repository

import (
	"context"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
)

type CartRepository interface {
	//持ち主のカートを取得し、無ければ作成。同時アクセスでも二重には作らない。
	GetOrCreateByOwner(ctx context.Context, owner model.CartOwner) (model.Cart, error)
	FindByOwner(ctx context.Context, owner model.CartOwner) (model.Cart, error)
	//カートと明細をまとめて削除（マージ後のゲストカート用）
	Delete(ctx context.Context, cartID int64) error
}
