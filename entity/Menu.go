package entity

import "github.com/shopspring/decimal"

// Dish กับ Combo เป็นฝั่ง catalog ระบบ order อ่านอย่างเดียว
type Dish struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	Name   string          `gorm:"not null" json:"name"`
	Image  string          `json:"image"`
	Price  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	OnSale bool            `json:"onSale"`

	Audit
}

type Combo struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	Name   string          `gorm:"not null" json:"name"`
	Image  string          `json:"image"`
	Price  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	OnSale bool            `json:"onSale"`

	Audit
}
