package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
	repo "github.com/TuanDoan14112003/storebuilder-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// CheckoutUsecase はカートを注文に変換するパイプライン。
// 明細をストアごとに分割し、ストア1つにつき注文1つを
// 同じトランザクションの中でまとめて作る。
type CheckoutUsecase struct {
	tx           repo.TransactionManager
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:           tx,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
	}
}

type CheckoutInput struct {
	GuestEmail      string
	GuestName       string
	ShippingAddress string
	Phone           string
	Notes           string
}

type OrderItemInput struct {
	ProductID int64
	Quantity  int64
}

// カートを通さずに直接注文するときの入力
type CreateOrderInput struct {
	Items           []OrderItemInput
	GuestEmail      string
	GuestName       string
	ShippingAddress string
	Phone           string
	Notes           string
}

// ストアごとの注文グループ。明細は出会った順を保つ。
type storeGroup struct {
	storeID int64
	lines   []orderLine
	total   decimal.Decimal
}

type orderLine struct {
	productID int64
	quantity  int64
	price     decimal.Decimal // チェックアウト時点の商品価格
}

// Checkout はカートの中身から注文を作る。
//  1. カート解決。空なら400。
//  2. 配送情報のバリデーション。
//  3. 1トランザクションで：ストアごとに注文＋明細を作成（価格はこの時点で
//     スナップショット）、カートをクリア、ログイン済みなら残っている
//     ゲストカートをマージ。
//
// 途中で失敗したら全てロールバックして一律500を返す。
func (u *CheckoutUsecase) Checkout(ctx context.Context, req Requester, in CheckoutInput) ([]OrderResponse, error) {
	owner, err := cartOwnerOf(req)
	if err != nil {
		return nil, err
	}

	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) == 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	if err := validateShippingInfo(req.Authenticated(), in.ShippingAddress, in.Phone, in.GuestEmail, in.GuestName); err != nil {
		return nil, err
	}

	var outs []OrderResponse

	txErr := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//価格読み取りと注文作成を同じトランザクションに入れる
		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("cart %d emptied concurrently", cart.ID)
		}

		lines := make([]OrderItemInput, 0, len(items))
		for _, it := range items {
			lines = append(lines, OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
		}

		groups, err := partitionByStore(ctx, r, lines)
		if err != nil {
			return err
		}

		outs, err = createStoreOrders(ctx, r, groups, req, in)
		if err != nil {
			return err
		}

		//注文を作ってからカートを空にする
		if err := r.CartItems().DeleteByCartID(ctx, cart.ID); err != nil {
			return err
		}

		//ログイン前のゲストカートが残っていれば、クリアの後で取り込む。
		//順番を守らないと、今注文した分がカートに戻ってしまう。
		if req.Authenticated() && req.SessionKey != "" {
			if _, err := mergeGuestCart(ctx, r, req.UserID, req.SessionKey); err != nil {
				return err
			}
		}

		return nil
	})

	if txErr != nil {
		//部分的な注文は見せない。理由も漏らさない。
		return nil, NewHTTPError(http.StatusInternalServerError, "failed to create order")
	}

	return outs, nil
}

// CreateOrder は明示的な商品リストから注文を作る。カートには触らない。
// 分割と検証のルールはCheckoutと同じ。
func (u *CheckoutUsecase) CreateOrder(ctx context.Context, req Requester, in CreateOrderInput) ([]OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "order must contain at least one item")
	}

	if err := validateShippingInfo(req.Authenticated(), in.ShippingAddress, in.Phone, in.GuestEmail, in.GuestName); err != nil {
		return nil, err
	}

	var outs []OrderResponse

	txErr := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		groups, err := partitionByStore(ctx, r, in.Items)
		if err != nil {
			return err
		}

		outs, err = createStoreOrders(ctx, r, groups, req, CheckoutInput{
			GuestEmail:      in.GuestEmail,
			GuestName:       in.GuestName,
			ShippingAddress: in.ShippingAddress,
			Phone:           in.Phone,
			Notes:           in.Notes,
		})
		return err
	})

	if txErr != nil {
		//入力起因のエラーはそのまま返す
		if he, ok := AsHTTPError(txErr); ok {
			return nil, he
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "failed to create order")
	}

	return outs, nil
}

// 配送先と電話は必須。ゲストは guest_email か guest_name のどちらかが要る。
func validateShippingInfo(authenticated bool, shippingAddress, phone, guestEmail, guestName string) error {
	if strings.TrimSpace(shippingAddress) == "" {
		return NewHTTPError(http.StatusBadRequest, "shipping_address is required")
	}
	if strings.TrimSpace(phone) == "" {
		return NewHTTPError(http.StatusBadRequest, "phone is required")
	}
	if !authenticated &&
		strings.TrimSpace(guestEmail) == "" && strings.TrimSpace(guestName) == "" {
		return NewHTTPError(http.StatusBadRequest, "guest_email or guest_name is required")
	}
	return nil
}

// 明細をストアごとに分け、グループ合計を現在価格で計算する。
// グループの順番は明細で最初に出てきた順。
func partitionByStore(ctx context.Context, r repo.TxRepos, items []OrderItemInput) ([]*storeGroup, error) {
	ordered := make([]*storeGroup, 0)
	byStore := make(map[int64]*storeGroup)

	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("invalid quantity for product %d", it.ProductID))
		}

		p, err := r.Products().FindByID(ctx, it.ProductID)
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("product %d not found", it.ProductID))
		}
		if err != nil {
			return nil, err
		}

		g, ok := byStore[p.StoreID]
		if !ok {
			g = &storeGroup{storeID: p.StoreID, total: decimal.Zero}
			byStore[p.StoreID] = g
			ordered = append(ordered, g)
		}

		g.lines = append(g.lines, orderLine{
			productID: it.ProductID,
			quantity:  it.Quantity,
			price:     p.Price,
		})
		g.total = g.total.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}

	return ordered, nil
}

// グループごとに注文1つ＋明細を作る。価格はグループ計算時のスナップショット。
func createStoreOrders(ctx context.Context, r repo.TxRepos, groups []*storeGroup, req Requester, in CheckoutInput) ([]OrderResponse, error) {
	var customerID *int64
	if req.Authenticated() {
		id := req.UserID
		customerID = &id
	}

	outs := make([]OrderResponse, 0, len(groups))

	for _, g := range groups {
		order := model.Order{
			CustomerID:      customerID,
			GuestEmail:      strings.TrimSpace(in.GuestEmail),
			GuestName:       strings.TrimSpace(in.GuestName),
			StoreID:         g.storeID,
			Status:          model.OrderStatusPending,
			TotalAmount:     g.total,
			ShippingAddress: in.ShippingAddress,
			Phone:           in.Phone,
			Notes:           in.Notes,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return nil, err
		}

		orderItems := make([]model.OrderItem, 0, len(g.lines))
		for _, line := range g.lines {
			orderItems = append(orderItems, model.OrderItem{
				ProductID: line.productID,
				Quantity:  line.quantity,
				Price:     line.price,
			})
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return nil, err
		}

		order.ID = orderID
		created := make([]model.OrderItem, len(orderItems))
		copy(created, orderItems)
		for i := range created {
			created[i].OrderID = orderID
		}
		outs = append(outs, toOrderResponse(order, created))
	}

	return outs, nil
}
