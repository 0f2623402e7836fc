package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 5つのステータスのどれか
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// delivered / cancelled からは遷移できない
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// approve は pending からだけ
func (s OrderStatus) CanApprove() bool {
	return s == OrderStatusPending
}

// decline は終端以外から
func (s OrderStatus) CanDecline() bool {
	return !s.IsTerminal()
}

// 注文。1注文1ストア。
// customer か guest_email / guest_name の少なくとも1つを持つ。
type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//ゲスト注文のときは nil
	CustomerID *int64 `gorm:"index" json:"customer_id,omitempty"`
	GuestEmail string `gorm:"type:varchar(255)" json:"guest_email,omitempty"`
	GuestName  string `gorm:"type:varchar(255)" json:"guest_name,omitempty"`

	StoreID int64       `gorm:"not null;index" json:"store_id"`
	Status  OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//作成時点の合計金額。以後再計算しない。
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`

	ShippingAddress string `gorm:"type:text;not null" json:"shipping_address"`
	Phone           string `gorm:"type:varchar(20);not null" json:"phone"`
	Notes           string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
