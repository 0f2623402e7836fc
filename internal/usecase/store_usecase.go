package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
	repo "github.com/TuanDoan14112003/storebuilder-backend/internal/repository"
)

// StoreUsecase はストアのCRUD。書き込みはオーナーだけ、読み取りは公開。
type StoreUsecase struct {
	storeRepo   repo.StoreRepository
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
}

func NewStoreUsecase(
	storeRepo repo.StoreRepository,
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
) *StoreUsecase {
	return &StoreUsecase{
		storeRepo:   storeRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

type StoreInput struct {
	Name string
}

// ストア詳細は商品一覧つき
type StoreDetailResponse struct {
	model.Store
	Products []model.Product `json:"products"`
}

func (u *StoreUsecase) Create(ctx context.Context, req Requester, in StoreInput) (model.Store, error) {
	if !req.Authenticated() {
		return model.Store{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Store{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	s, err := u.storeRepo.Create(ctx, model.Store{Name: name, OwnerID: req.UserID})
	if err != nil {
		return model.Store{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

func (u *StoreUsecase) Get(ctx context.Context, storeID int64) (StoreDetailResponse, error) {
	s, err := u.storeRepo.FindByID(ctx, storeID)
	if err == repo.ErrNotFound {
		return StoreDetailResponse{}, NewHTTPError(http.StatusNotFound, "store not found")
	}
	if err != nil {
		return StoreDetailResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, err := u.productRepo.ListByStoreID(ctx, storeID)
	if err != nil {
		return StoreDetailResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return StoreDetailResponse{Store: s, Products: products}, nil
}

func (u *StoreUsecase) List(ctx context.Context) ([]model.Store, error) {
	stores, err := u.storeRepo.List(ctx)
	if err != nil {
		return []model.Store{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return stores, nil
}

// ListByUser は指定ユーザーがオーナーのストア一覧（公開）。
func (u *StoreUsecase) ListByUser(ctx context.Context, userID int64) ([]model.Store, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return []model.Store{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return []model.Store{}, NewHTTPError(http.StatusNotFound, "user not found")
	}

	stores, err := u.storeRepo.ListByOwnerID(ctx, userID)
	if err != nil {
		return []model.Store{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return stores, nil
}

func (u *StoreUsecase) Update(ctx context.Context, req Requester, storeID int64, in StoreInput) (model.Store, error) {
	s, err := u.loadOwnedStore(ctx, req, storeID)
	if err != nil {
		return model.Store{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Store{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	s.Name = name
	if err := u.storeRepo.Update(ctx, s); err != nil {
		return model.Store{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

func (u *StoreUsecase) Delete(ctx context.Context, req Requester, storeID int64) error {
	if _, err := u.loadOwnedStore(ctx, req, storeID); err != nil {
		return err
	}

	if err := u.storeRepo.Delete(ctx, storeID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *StoreUsecase) loadOwnedStore(ctx context.Context, req Requester, storeID int64) (model.Store, error) {
	if !req.Authenticated() {
		return model.Store{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	s, err := u.storeRepo.FindByID(ctx, storeID)
	if err == repo.ErrNotFound {
		return model.Store{}, NewHTTPError(http.StatusNotFound, "store not found")
	}
	if err != nil {
		return model.Store{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.OwnerID != req.UserID {
		return model.Store{}, NewHTTPError(http.StatusForbidden, "permission denied")
	}
	return s, nil
}
