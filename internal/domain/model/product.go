package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID int64  `gorm:"not null;index" json:"store_id"`
	Name    string `gorm:"type:varchar(200);not null" json:"name"`

	Description string `gorm:"type:text" json:"description"`

	//価格は小数2桁の固定小数
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	//表示用の在庫数。この層では減算しない。
	Stock int64 `gorm:"not null;default:0" json:"stock"`

	ImageURL    string    `gorm:"type:varchar(500)" json:"image_url"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
