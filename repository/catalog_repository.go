package repository

import (
	"context"
	"fmt"

	"takeout/entity"

	"gorm.io/gorm"
)

// CatalogRepository อ่านเมนู (dish/combo) เพื่อ snapshot ลงตะกร้า
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) GetProduct(ctx context.Context, ref entity.ProductRef) (*entity.Product, error) {
	switch ref.Kind() {
	case entity.ProductDish:
		var d entity.Dish
		if err := r.DB.WithContext(ctx).Select("id, name, image, price, on_sale").First(&d, ref.DishID).Error; err != nil {
			return nil, err
		}
		return &entity.Product{Name: d.Name, Image: d.Image, Price: d.Price, OnSale: d.OnSale}, nil
	case entity.ProductCombo:
		var c entity.Combo
		if err := r.DB.WithContext(ctx).Select("id, name, image, price, on_sale").First(&c, ref.ComboID).Error; err != nil {
			return nil, err
		}
		return &entity.Product{Name: c.Name, Image: c.Image, Price: c.Price, OnSale: c.OnSale}, nil
	default:
		return nil, fmt.Errorf("unknown product kind %q", ref.Kind())
	}
}
