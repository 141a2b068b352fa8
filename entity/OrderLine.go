package entity

import "github.com/shopspring/decimal"

// OrderLine is an immutable copy of one cart item taken at submit time.
type OrderLine struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"index;not null" json:"orderId"`

	DishID  uint   `json:"dishId"`
	ComboID uint   `json:"setmealId"`
	Flavor  string `json:"dishFlavor"`

	Name   string          `json:"name"`
	Image  string          `json:"image"`
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Number int             `gorm:"not null" json:"number"`
}
