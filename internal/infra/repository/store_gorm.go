package repository

import (
	"context"
	"errors"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
	repo "github.com/TuanDoan14112003/storebuilder-backend/internal/repository"

	"gorm.io/gorm"
)

type StoreGormRepository struct {
	db *gorm.DB
}

// DI
func NewStoreGormRepository(db *gorm.DB) *StoreGormRepository {
	return &StoreGormRepository{db: db}
}

func (r *StoreGormRepository) Create(ctx context.Context, s model.Store) (model.Store, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Store{}, err
	}
	return s, nil
}

func (r *StoreGormRepository) FindByID(ctx context.Context, id int64) (model.Store, error) {
	var s model.Store
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Store{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Store{}, err
	}
	return s, nil
}

func (r *StoreGormRepository) List(ctx context.Context) ([]model.Store, error) {
	var items []model.Store
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return []model.Store{}, err
	}
	return items, nil
}

func (r *StoreGormRepository) ListByOwnerID(ctx context.Context, ownerID int64) ([]model.Store, error) {
	var items []model.Store
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name asc").
		Find(&items).Error
	if err != nil {
		return []model.Store{}, err
	}
	return items, nil
}

func (r *StoreGormRepository) Update(ctx context.Context, s model.Store) error {
	res := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("id = ?", s.ID).
		Update("name", s.Name)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ストアと配下の商品・注文をまとめて削除
func (r *StoreGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orderIDs []int64
		if err := tx.Model(&model.Order{}).
			Where("store_id = ?", id).
			Pluck("id", &orderIDs).Error; err != nil {
			return err
		}

		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&model.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("store_id = ?", id).Delete(&model.Order{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("store_id = ?", id).Delete(&model.Product{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Store{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
