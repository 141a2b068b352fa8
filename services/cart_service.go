package services

import (
	"context"
	"errors"
	"time"

	"takeout/entity"
	"takeout/repository"

	"gorm.io/gorm"
)

type Catalog interface {
	GetProduct(ctx context.Context, ref entity.ProductRef) (*entity.Product, error)
}

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	Catalog  Catalog
	Now      func() time.Time
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, catalog Catalog) *CartService {
	return &CartService{DB: db, CartRepo: cr, Catalog: catalog, Now: time.Now}
}

type CartIn struct {
	DishID  uint   `json:"dishId"`
	ComboID uint   `json:"setmealId"`
	Flavor  string `json:"dishFlavor"`
}

func (in CartIn) key(userID uint) repository.CartKey {
	return repository.CartKey{UserID: userID, DishID: in.DishID, ComboID: in.ComboID, Flavor: in.Flavor}
}

func (in CartIn) ref() entity.ProductRef {
	return entity.ProductRef{DishID: in.DishID, ComboID: in.ComboID}
}

// Add: มีอยู่แล้ว → +1, ยังไม่มี → snapshot ชื่อ/รูป/ราคาจาก catalog แล้ว insert
func (s *CartService) Add(ctx context.Context, actor Actor, in CartIn) error {
	if !in.ref().Valid() {
		return ErrInvalidProduct
	}
	db := s.DB.WithContext(ctx)
	key := in.key(actor.ID)

	exist, err := s.CartRepo.Find(db, key)
	if err == nil {
		return s.CartRepo.Increment(db, exist.ID, 1)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	p, err := s.Catalog.GetProduct(ctx, in.ref())
	if err != nil {
		return notFound(err, ErrProductNotFound)
	}
	if !p.OnSale {
		return ErrProductOffSale
	}

	it := entity.CartItem{
		UserID:    actor.ID,
		DishID:    in.DishID,
		ComboID:   in.ComboID,
		Flavor:    in.Flavor,
		Name:      p.Name,
		Image:     p.Image,
		Amount:    p.Price,
		Number:    1,
		CreatedAt: s.Now(),
	}
	err = s.CartRepo.Insert(db, &it)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// request อื่นเพิ่งสร้างแถวเดียวกันไป
		exist, ferr := s.CartRepo.Find(db, key)
		if ferr != nil {
			return ferr
		}
		return s.CartRepo.Increment(db, exist.ID, 1)
	}
	return err
}

func (s *CartService) List(ctx context.Context, actor Actor) ([]entity.CartItem, error) {
	items, err := s.CartRepo.List(s.DB.WithContext(ctx), actor.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.CartItem{}
	}
	return items, nil
}

// Sub ลดทีละ 1 ถ้าเหลือชิ้นเดียวก็ลบแถว
func (s *CartService) Sub(ctx context.Context, actor Actor, in CartIn) error {
	if !in.ref().Valid() {
		return ErrInvalidProduct
	}
	db := s.DB.WithContext(ctx)
	it, err := s.CartRepo.Find(db, in.key(actor.ID))
	if err != nil {
		return notFound(err, ErrCartItemNotFound)
	}
	return s.CartRepo.Decrement(db, it.ID)
}

func (s *CartService) Clear(ctx context.Context, actor Actor) error {
	_, err := s.CartRepo.DeleteByUser(s.DB.WithContext(ctx), actor.ID)
	return err
}
