package usecase_test

import (
	"context"
	"testing"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
	repo "github.com/TuanDoan14112003/storebuilder-backend/internal/repository"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProductUC() (*usecase.ProductUsecase, *StoreRepoMock, *ProductRepoMock) {
	storeRepo := new(StoreRepoMock)
	productRepo := new(ProductRepoMock)
	return usecase.NewProductUsecase(storeRepo, productRepo), storeRepo, productRepo
}

func TestProductUsecase_Create_NotStoreOwner(t *testing.T) {
	uc, storeRepo, productRepo := newProductUC()

	storeRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Store{ID: 10, OwnerID: 2}, nil)

	_, err := uc.Create(context.Background(), usecase.Requester{UserID: 1}, usecase.ProductInput{
		StoreID: 10,
		Name:    "Mug",
		Price:   decimal.RequireFromString("10.00"),
	})
	assertErrContains(t, err, "permission denied")

	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_Create_NegativePrice(t *testing.T) {
	uc, storeRepo, _ := newProductUC()

	storeRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Store{ID: 10, OwnerID: 1}, nil)

	_, err := uc.Create(context.Background(), usecase.Requester{UserID: 1}, usecase.ProductInput{
		StoreID: 10,
		Name:    "Mug",
		Price:   decimal.RequireFromString("-1.00"),
	})
	assertErrContains(t, err, "invalid price")
}

func TestProductUsecase_Create_NegativeStock(t *testing.T) {
	uc, storeRepo, _ := newProductUC()

	storeRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Store{ID: 10, OwnerID: 1}, nil)

	_, err := uc.Create(context.Background(), usecase.Requester{UserID: 1}, usecase.ProductInput{
		StoreID: 10,
		Name:    "Mug",
		Price:   decimal.RequireFromString("10.00"),
		Stock:   -1,
	})
	assertErrContains(t, err, "invalid stock")
}

func TestProductUsecase_Create_Success(t *testing.T) {
	uc, storeRepo, productRepo := newProductUC()

	storeRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Store{ID: 10, OwnerID: 1}, nil)
	productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.StoreID == 10 && p.Name == "Mug" && p.Price.Equal(decimal.RequireFromString("10.00"))
	})).Return(model.Product{ID: 1, StoreID: 10, Name: "Mug"}, nil)

	out, err := uc.Create(context.Background(), usecase.Requester{UserID: 1}, usecase.ProductInput{
		StoreID:     10,
		Name:        "Mug",
		Price:       decimal.RequireFromString("10.00"),
		Stock:       5,
		IsAvailable: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)

	productRepo.AssertExpectations(t)
}

// 更新でもストアの付け替えはできない。
func TestProductUsecase_Update_KeepsStore(t *testing.T) {
	uc, storeRepo, productRepo := newProductUC()

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, StoreID: 10, Name: "Mug"}, nil)
	storeRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Store{ID: 10, OwnerID: 1}, nil)
	productRepo.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.ID == 1 && p.StoreID == 10 && p.Name == "Cup"
	})).Return(nil)

	out, err := uc.Update(context.Background(), usecase.Requester{UserID: 1}, 1, usecase.ProductInput{
		StoreID: 99, // 無視される
		Name:    "Cup",
		Price:   decimal.RequireFromString("12.00"),
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), out.StoreID)

	productRepo.AssertExpectations(t)
}

func TestProductUsecase_Get_NotFound(t *testing.T) {
	uc, _, productRepo := newProductUC()

	productRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.Get(context.Background(), 99)
	assertErrContains(t, err, "product not found")
}

func TestProductUsecase_Delete_NotOwner(t *testing.T) {
	uc, storeRepo, productRepo := newProductUC()

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, StoreID: 10}, nil)
	storeRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Store{ID: 10, OwnerID: 2}, nil)

	err := uc.Delete(context.Background(), usecase.Requester{UserID: 1}, 1)
	assertErrContains(t, err, "permission denied")

	productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductUsecase_ListByStore_UnknownStore(t *testing.T) {
	uc, storeRepo, _ := newProductUC()

	storeRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Store{}, repo.ErrNotFound)

	_, err := uc.ListByStore(context.Background(), 99)
	assertErrContains(t, err, "store not found")
}
