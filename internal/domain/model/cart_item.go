package model

import "time"

// カートの明細。
// (cart_id, product_id) で一意。同じ商品の再追加は数量加算になる。
// 価格は保存しない。小計は常に商品の現在価格から計算する。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;uniqueIndex:uq_cart_product" json:"cart_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:uq_cart_product;index" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
