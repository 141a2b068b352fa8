package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem: หนึ่งแถวต่อ (user, dish, combo, flavor) เพิ่มซ้ำ = บวก Number
type CartItem struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_cart_identity" json:"userId"`
	DishID  uint   `gorm:"not null;uniqueIndex:idx_cart_identity" json:"dishId"`
	ComboID uint   `gorm:"not null;uniqueIndex:idx_cart_identity" json:"setmealId"`
	Flavor  string `gorm:"size:255;not null;uniqueIndex:idx_cart_identity" json:"dishFlavor"`

	// snapshot จาก catalog ตอนเพิ่มครั้งแรก
	Name   string          `json:"name"`
	Image  string          `json:"image"`
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`

	Number    int       `gorm:"not null" json:"number"`
	CreatedAt time.Time `json:"createTime"`
}

func (CartItem) TableName() string { return "shopping_cart_items" }
