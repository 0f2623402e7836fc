package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
	repo "github.com/TuanDoan14112003/storebuilder-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderUsecase は注文の閲覧とライフサイクル（approve/decline/ステータス更新）。
// 閲覧は本人かストアのオーナー、ライフサイクル変更はストアのオーナーだけ。
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderItemResponse struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	ID              int64               `json:"id"`
	CustomerID      *int64              `json:"customer_id,omitempty"`
	GuestEmail      string              `json:"guest_email,omitempty"`
	GuestName       string              `json:"guest_name,omitempty"`
	StoreID         int64               `json:"store_id"`
	Status          string              `json:"status"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	ShippingAddress string              `json:"shipping_address"`
	Phone           string              `json:"phone"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []OrderItemResponse `json:"items"`
}

func toOrderResponse(o model.Order, items []model.OrderItem) OrderResponse {
	outItems := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	return OrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		GuestEmail:      o.GuestEmail,
		GuestName:       o.GuestName,
		StoreID:         o.StoreID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		Phone:           o.Phone,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}

// GetOrder は注文詳細。未ログインは一律401（ゲスト注文の照会手段は持たない）。
func (u *OrderUsecase) GetOrder(ctx context.Context, req Requester, orderID int64) (OrderResponse, error) {
	if !req.Authenticated() {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if orderID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		store, err := r.Stores().FindByID(ctx, o.StoreID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//本人かストアのオーナーだけ
		if !canViewOrder(o, store, req.UserID) {
			return NewHTTPError(http.StatusForbidden, "permission denied")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderResponse(o, items)
		return nil
	})

	if err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

// ListUserOrders は自分の注文一覧。statusで絞り込みできる。
func (u *OrderUsecase) ListUserOrders(ctx context.Context, req Requester, status string) ([]OrderResponse, error) {
	if !req.Authenticated() {
		return []OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if status != "" && !model.OrderStatus(status).IsValid() {
		return []OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var outs []OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByCustomerID(ctx, req.UserID, model.OrderStatus(status))
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderResponse(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderResponse{}, err
	}
	return outs, nil
}

// ListStoreOrders はストアに入った注文一覧（オーナーだけ）。
func (u *OrderUsecase) ListStoreOrders(ctx context.Context, req Requester, storeID int64, status string) ([]OrderResponse, error) {
	if !req.Authenticated() {
		return []OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if status != "" && !model.OrderStatus(status).IsValid() {
		return []OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var outs []OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		store, err := r.Stores().FindByID(ctx, storeID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "store not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if store.OwnerID != req.UserID {
			return NewHTTPError(http.StatusForbidden, "permission denied")
		}

		orders, err := r.Orders().ListByStoreID(ctx, storeID, model.OrderStatus(status))
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderResponse(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderResponse{}, err
	}
	return outs, nil
}

// UpdateStatus は汎用のステータス更新（オーナーだけ）。
// 値が5種のどれかであることだけ確認する。遷移グラフはapprove/decline側で守る。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, req Requester, orderID int64, status string) (OrderResponse, error) {
	if !req.Authenticated() {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(status))
	if !newStatus.IsValid() {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := u.loadOwnedOrder(ctx, r, orderID, req.UserID)
		if err != nil {
			return err
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = newStatus
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderResponse(o, items)
		return nil
	})

	if err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

// Approve は pending の注文を confirmed にする（オーナーだけ）。
func (u *OrderUsecase) Approve(ctx context.Context, req Requester, orderID int64) (OrderResponse, error) {
	if !req.Authenticated() {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var out OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := u.loadOwnedOrder(ctx, r, orderID, req.UserID)
		if err != nil {
			return err
		}

		if !o.Status.CanApprove() {
			return NewHTTPError(http.StatusBadRequest,
				"cannot approve order with status: "+string(o.Status))
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusConfirmed); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = model.OrderStatusConfirmed
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderResponse(o, items)
		return nil
	})

	if err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

// Decline は終端以外の注文を cancelled にする（オーナーだけ）。
// 理由があればnotesに追記する（上書きしない）。
func (u *OrderUsecase) Decline(ctx context.Context, req Requester, orderID int64, reason string) (OrderResponse, error) {
	if !req.Authenticated() {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var out OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := u.loadOwnedOrder(ctx, r, orderID, req.UserID)
		if err != nil {
			return err
		}

		if !o.Status.CanDecline() {
			return NewHTTPError(http.StatusBadRequest,
				"cannot decline order with status: "+string(o.Status))
		}

		reason = strings.TrimSpace(reason)
		if reason != "" {
			notes := strings.TrimSpace(o.Notes + "\n\nDeclined: " + reason)
			if err := r.Orders().UpdateStatusAndNotes(ctx, orderID, model.OrderStatusCancelled, notes); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			o.Notes = notes
		} else {
			if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		o.Status = model.OrderStatusCancelled
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderResponse(o, items)
		return nil
	})

	if err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

// 注文を取得してストアのオーナーであることを確認する。
func (u *OrderUsecase) loadOwnedOrder(ctx context.Context, r repo.TxRepos, orderID int64, userID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := r.Orders().FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	store, err := r.Stores().FindByID(ctx, o.StoreID)
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if store.OwnerID != userID {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "permission denied")
	}

	return o, nil
}

// 閲覧は注文した本人かストアのオーナー
func canViewOrder(o model.Order, store model.Store, userID int64) bool {
	if o.CustomerID != nil && *o.CustomerID == userID {
		return true
	}
	return store.OwnerID == userID
}
