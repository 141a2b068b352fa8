package repository

import (
	"errors"

	"takeout/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// CartKey คือ identity ของแถวในตะกร้า
type CartKey struct {
	UserID  uint
	DishID  uint
	ComboID uint
	Flavor  string
}

func KeyOf(it *entity.CartItem) CartKey {
	return CartKey{UserID: it.UserID, DishID: it.DishID, ComboID: it.ComboID, Flavor: it.Flavor}
}

// รายการในตะกร้าของ user เรียงตามลำดับที่เพิ่ม
func (r *CartRepository) List(tx *gorm.DB, userID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := tx.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error
	return items, err
}

// ListForUpdate อ่านตะกร้าพร้อม lock แถวไว้จนจบ transaction
// (sqlite ไม่มี row lock driver จะข้าม clause นี้)
func (r *CartRepository) ListForUpdate(tx *gorm.DB, userID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *CartRepository) Find(tx *gorm.DB, key CartKey) (*entity.CartItem, error) {
	var it entity.CartItem
	err := tx.Where("user_id = ? AND dish_id = ? AND combo_id = ? AND flavor = ?",
		key.UserID, key.DishID, key.ComboID, key.Flavor).
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepository) Insert(tx *gorm.DB, it *entity.CartItem) error {
	return tx.Create(it).Error
}

// Increment บวก number แบบ atomic ใน SQL ไม่อ่านค่าก่อน
func (r *CartRepository) Increment(tx *gorm.DB, id uint, delta int) error {
	return tx.Model(&entity.CartItem{}).
		Where("id = ?", id).
		Update("number", gorm.Expr("number + ?", delta)).Error
}

// AddOrIncrement เพิ่มแถวใหม่ หรือบวก number ถ้ามี identity เดียวกันอยู่แล้ว
func (r *CartRepository) AddOrIncrement(tx *gorm.DB, it *entity.CartItem) error {
	exist, err := r.Find(tx, KeyOf(it))
	if err == nil {
		return r.Increment(tx, exist.ID, it.Number)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.Insert(tx, it)
}

// Decrement ลด number ลง 1 ถ้าเหลือ 1 อยู่แล้วให้ลบแถวทิ้ง
func (r *CartRepository) Decrement(tx *gorm.DB, id uint) error {
	res := tx.Model(&entity.CartItem{}).
		Where("id = ? AND number > 1", id).
		Update("number", gorm.Expr("number - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return tx.Where("id = ? AND number <= 1", id).Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) DeleteByUser(tx *gorm.DB, userID uint) (int64, error) {
	res := tx.Where("user_id = ?", userID).Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}

// DeleteItems ลบเฉพาะแถวที่อ่านมา คืนจำนวนที่ลบได้จริง
func (r *CartRepository) DeleteItems(tx *gorm.DB, userID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := tx.Where("user_id = ? AND id IN ?", userID, ids).Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}
