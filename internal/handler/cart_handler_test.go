package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/config"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/handler"
	repo "github.com/TuanDoan14112003/storebuilder-backend/internal/repository"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// =====================
// Stubs（handler経由の配線テスト用。canned応答だけ返す）
// =====================

type cartRepoStub struct{}

func (cartRepoStub) GetOrCreateByOwner(ctx context.Context, owner model.CartOwner) (model.Cart, error) {
	return model.Cart{ID: 5}, nil
}

func (cartRepoStub) FindByOwner(ctx context.Context, owner model.CartOwner) (model.Cart, error) {
	return model.Cart{}, repo.ErrNotFound
}

func (cartRepoStub) Delete(ctx context.Context, cartID int64) error {
	return nil
}

// hasLineがfalseなら明細なしのカートとして振る舞う
type cartItemRepoStub struct {
	hasLine bool
}

func (s cartItemRepoStub) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	return []model.CartItem{}, nil
}

func (s cartItemRepoStub) FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error) {
	if !s.hasLine {
		return model.CartItem{}, repo.ErrNotFound
	}
	return model.CartItem{CartID: cartID, ProductID: productID, Quantity: 1}, nil
}

func (s cartItemRepoStub) AddQuantity(ctx context.Context, cartID int64, productID int64, addQty int64) error {
	return nil
}

func (s cartItemRepoStub) SetQuantity(ctx context.Context, cartID int64, productID int64, qty int64) error {
	if !s.hasLine {
		return repo.ErrNotFound
	}
	return nil
}

func (s cartItemRepoStub) DeleteByCartAndProduct(ctx context.Context, cartID int64, productID int64) error {
	if !s.hasLine {
		return repo.ErrNotFound
	}
	return nil
}

func (s cartItemRepoStub) DeleteByCartID(ctx context.Context, cartID int64) error {
	return nil
}

type productRepoStub struct{}

func (productRepoStub) Create(ctx context.Context, p model.Product) (model.Product, error) {
	return p, nil
}

func (productRepoStub) FindByID(ctx context.Context, id int64) (model.Product, error) {
	return model.Product{}, repo.ErrNotFound
}

func (productRepoStub) ListByStoreID(ctx context.Context, storeID int64) ([]model.Product, error) {
	return []model.Product{}, nil
}

func (productRepoStub) ListAvailable(ctx context.Context) ([]model.Product, error) {
	return []model.Product{}, nil
}

func (productRepoStub) Update(ctx context.Context, p model.Product) error { return nil }
func (productRepoStub) Delete(ctx context.Context, id int64) error        { return nil }

// txは使わない経路だけ通すので何もしない
type txManagerStub struct{}

func (txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return nil
}

func newCartEcho(hasLine bool) *echo.Echo {
	cfg := config.Config{JWTSecret: "test-secret"}

	cartUC := usecase.NewCartUsecase(txManagerStub{}, cartRepoStub{}, cartItemRepoStub{hasLine: hasLine}, productRepoStub{})
	checkoutUC := usecase.NewCheckoutUsecase(txManagerStub{}, cartRepoStub{}, cartItemRepoStub{hasLine: hasLine})

	e := echo.New()
	handler.NewCartHandler(cartUC, checkoutUC).RegisterRoutes(e, cfg)
	return e
}

// 無い明細の削除は404で返す。
func TestCartHandler_RemoveItem_MissingLineIs404(t *testing.T) {
	e := newCartEcho(false)

	req := httptest.NewRequest(http.MethodDelete, "/cart/remove/99", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var out map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "item not found in cart", out["error"])
}

func TestCartHandler_RemoveItem_ExistingLine(t *testing.T) {
	e := newCartEcho(true)

	req := httptest.NewRequest(http.MethodDelete, "/cart/remove/99", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var out map[string]bool
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out["removed"])
}
