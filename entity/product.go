package entity

import "github.com/shopspring/decimal"

type ProductKind string

const (
	ProductDish  ProductKind = "dish"
	ProductCombo ProductKind = "combo"
)

// ProductRef points at either a dish or a combo, never both.
type ProductRef struct {
	DishID  uint `json:"dishId"`
	ComboID uint `json:"setmealId"`
}

func (p ProductRef) Valid() bool {
	return (p.DishID == 0) != (p.ComboID == 0)
}

func (p ProductRef) Kind() ProductKind {
	if p.DishID != 0 {
		return ProductDish
	}
	return ProductCombo
}

func (p ProductRef) ID() uint {
	if p.DishID != 0 {
		return p.DishID
	}
	return p.ComboID
}

// Product is what the catalog hands to the cart at add time.
type Product struct {
	Name   string
	Image  string
	Price  decimal.Decimal
	OnSale bool
}
