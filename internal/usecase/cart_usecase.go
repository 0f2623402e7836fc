package usecase

import (
	"context"
	"net/http"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
	repo "github.com/TuanDoan14112003/storebuilder-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// カートの解決（ユーザー or セッション）と明細操作、ログイン時のマージを持つ。
type CartUsecase struct {
	tx           repo.TransactionManager
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		tx:           tx,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// CartItemResponse の price と subtotal は商品の現在価格から計算する。
// カートには価格を保存しない（注文と違ってスナップショットしない）。
type CartItemResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	StoreID     int64           `json:"store_id"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	CartID      int64              `json:"cart_id"`
	Items       []CartItemResponse `json:"items"`
	TotalItems  int64              `json:"total_items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// GetCart はカート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, req Requester) (CartResponse, error) {
	owner, err := cartOwnerOf(req)
	if err != nil {
		return CartResponse{}, err
	}

	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// AddItem はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, req Requester, in AddCartInput) (CartResponse, error) {
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//商品チェック。非公開の商品はカートに入れられない。
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsAvailable {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "product not available")
	}

	owner, err := cartOwnerOf(req)
	if err != nil {
		return CartResponse{}, err
	}

	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Upsert（同一商品は加算）
	if err := u.cartItemRepo.AddQuantity(ctx, cart.ID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// UpdateItem は数量の上書き。0以下なら明細を削除する。
// 明細が無いときはどちらも not found。
func (u *CartUsecase) UpdateItem(ctx context.Context, req Requester, productID int64, quantity int64) (CartResponse, error) {
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	owner, err := cartOwnerOf(req)
	if err != nil {
		return CartResponse{}, err
	}

	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if quantity <= 0 {
		err = u.cartItemRepo.DeleteByCartAndProduct(ctx, cart.ID, productID)
	} else {
		err = u.cartItemRepo.SetQuantity(ctx, cart.ID, productID, quantity)
	}

	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "item not found in cart")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// RemoveItem は明細を削除。無かったときは false（エラーにしない）。
func (u *CartUsecase) RemoveItem(ctx context.Context, req Requester, productID int64) (bool, error) {
	if productID <= 0 {
		return false, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	owner, err := cartOwnerOf(req)
	if err != nil {
		return false, err
	}

	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.cartItemRepo.DeleteByCartAndProduct(ctx, cart.ID, productID)
	if err == repo.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return true, nil
}

// Clear は明細を全削除。チェックアウト後にも使う。
func (u *CartUsecase) Clear(ctx context.Context, req Requester) (CartResponse, error) {
	owner, err := cartOwnerOf(req)
	if err != nil {
		return CartResponse{}, err
	}

	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByCartID(ctx, cart.ID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// Merge はゲストカートをユーザーカートへ取り込む。
// ゲストカートが無ければ false（エラーにしない）。全体を1トランザクションで行う。
func (u *CartUsecase) Merge(ctx context.Context, userID int64, sessionKey string) (bool, error) {
	if userID <= 0 {
		return false, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sessionKey == "" {
		return false, nil
	}

	merged := false
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		merged, err = mergeGuestCart(ctx, r, userID, sessionKey)
		return err
	})
	if err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return merged, nil
}

// TransferOnLogin はログイン直後のマージ。セッションキーが無ければ何もしない。
func (u *CartUsecase) TransferOnLogin(ctx context.Context, req Requester) (bool, error) {
	if !req.Authenticated() {
		return false, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if req.SessionKey == "" {
		return false, nil
	}
	return u.Merge(ctx, req.UserID, req.SessionKey)
}

// ゲストカートの明細をユーザーカートへ加算コピーし、ゲストカートを消す。
// トランザクション内から呼ぶこと。ゲストカートが無ければ false。
func mergeGuestCart(ctx context.Context, r repo.TxRepos, userID int64, sessionKey string) (bool, error) {
	guest, err := r.Carts().FindByOwner(ctx, model.SessionOwner(sessionKey))
	if err == repo.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	userCart, err := r.Carts().GetOrCreateByOwner(ctx, model.UserOwner(userID))
	if err != nil {
		return false, err
	}

	items, err := r.CartItems().ListByCartID(ctx, guest.ID)
	if err != nil {
		return false, err
	}

	for _, it := range items {
		if err := r.CartItems().AddQuantity(ctx, userCart.ID, it.ProductID, it.Quantity); err != nil {
			return false, err
		}
	}

	//ゲストカートは明細ごと消す
	if err := r.Carts().Delete(ctx, guest.ID); err != nil {
		return false, err
	}

	return true, nil
}

// cartIDの明細をまとめてCartResponseを作る。価格は常に現在の商品価格。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var totalItems int64 = 0
	total := decimal.Zero

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			//商品が消えた明細は表示しない
			continue
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(it.Quantity))

		respItems = append(respItems, CartItemResponse{
			ProductID:   it.ProductID,
			ProductName: p.Name,
			StoreID:     p.StoreID,
			Price:       p.Price,
			Quantity:    it.Quantity,
			Subtotal:    subtotal,
		})

		totalItems += it.Quantity
		total = total.Add(subtotal)
	}

	return CartResponse{
		CartID:      cartID,
		Items:       respItems,
		TotalItems:  totalItems,
		TotalAmount: total,
	}, nil
}
