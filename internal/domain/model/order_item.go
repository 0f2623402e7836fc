package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文の明細。(order_id, product_id) で一意。
// price は注文作成時点の商品価格のスナップショット。作成後は変更しない。
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;uniqueIndex:uq_order_product" json:"order_id"`
	ProductID int64           `gorm:"not null;uniqueIndex:uq_order_product;index" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
