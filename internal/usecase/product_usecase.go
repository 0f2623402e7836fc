package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
	repo "github.com/TuanDoan14112003/storebuilder-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductUsecase は商品のCRUD。書き込みはストアのオーナーだけ。
type ProductUsecase struct {
	storeRepo   repo.StoreRepository
	productRepo repo.ProductRepository
}

func NewProductUsecase(storeRepo repo.StoreRepository, productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{
		storeRepo:   storeRepo,
		productRepo: productRepo,
	}
}

type ProductInput struct {
	StoreID     int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
	ImageURL    string
	IsAvailable bool
}

func (u *ProductUsecase) Create(ctx context.Context, req Requester, in ProductInput) (model.Product, error) {
	if !req.Authenticated() {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	store, err := u.storeRepo.FindByID(ctx, in.StoreID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "store not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if store.OwnerID != req.UserID {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "permission denied")
	}

	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		StoreID:     in.StoreID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		IsAvailable: in.IsAvailable,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// ListAvailable は公開中の商品一覧。
func (u *ProductUsecase) ListAvailable(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListAvailable(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) ListByStore(ctx context.Context, storeID int64) ([]model.Product, error) {
	if _, err := u.storeRepo.FindByID(ctx, storeID); err != nil {
		if err == repo.ErrNotFound {
			return []model.Product{}, NewHTTPError(http.StatusNotFound, "store not found")
		}
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.productRepo.ListByStoreID(ctx, storeID)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// Update は商品更新。ストアの付け替えはできない。
func (u *ProductUsecase) Update(ctx context.Context, req Requester, productID int64, in ProductInput) (model.Product, error) {
	p, err := u.loadOwnedProduct(ctx, req, productID)
	if err != nil {
		return model.Product{}, err
	}

	in.StoreID = p.StoreID
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	p.ImageURL = in.ImageURL
	p.IsAvailable = in.IsAvailable

	if err := u.productRepo.Update(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, req Requester, productID int64) error {
	if _, err := u.loadOwnedProduct(ctx, req, productID); err != nil {
		return err
	}

	if err := u.productRepo.Delete(ctx, productID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) loadOwnedProduct(ctx context.Context, req Requester, productID int64) (model.Product, error) {
	if !req.Authenticated() {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	store, err := u.storeRepo.FindByID(ctx, p.StoreID)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if store.OwnerID != req.UserID {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "permission denied")
	}

	return p, nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}
	return nil
}
