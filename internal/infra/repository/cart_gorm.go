package repository

import (
	"context"
	"errors"
	"time"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
	repo "github.com/TuanDoan14112003/storebuilder-backend/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

func ownerCondition(owner model.CartOwner) (string, interface{}) {
	if owner.IsUser() {
		return "user_id = ?", owner.UserID()
	}
	return "session_key = ?", owner.SessionKey()
}

// 持ち主のカートを取得し、無ければ作成。
func (r *CartGormRepository) GetOrCreateByOwner(ctx context.Context, owner model.CartOwner) (model.Cart, error) {

	var cart model.Cart
	cond, arg := ownerCondition(owner)

	//トランザクションで探す→無ければ作る
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(cond, arg).
			First(&cart).Error

		if findErr == nil {
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 無ければ作る
		now := time.Now()
		newCart := model.Cart{
			CreatedAt: now,
			UpdatedAt: now,
		}
		if owner.IsUser() {
			userID := owner.UserID()
			newCart.UserID = &userID
		} else {
			key := owner.SessionKey()
			newCart.SessionKey = &key
		}

		if err := tx.Create(&newCart).Error; err != nil {
			//同時作成でユニーク制約に負けた場合は取り直す
			retryErr := tx.Where(cond, arg).First(&cart).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		cart = newCart
		return nil
	})

	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) FindByOwner(ctx context.Context, owner model.CartOwner) (model.Cart, error) {
	var cart model.Cart
	cond, arg := ownerCondition(owner)

	err := r.db.WithContext(ctx).
		Where(cond, arg).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// カート本体と明細をまとめて削除
func (r *CartGormRepository) Delete(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Cart{}, cartID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
