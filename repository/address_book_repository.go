package repository

import (
	"context"

	"takeout/entity"

	"gorm.io/gorm"
)

type AddressBookRepository struct {
	DB *gorm.DB
}

func NewAddressBookRepository(db *gorm.DB) *AddressBookRepository {
	return &AddressBookRepository{DB: db}
}

// ที่อยู่ต้องเป็นของ user คนนั้น ไม่งั้นถือว่าไม่พบ
func (r *AddressBookRepository) GetForUser(ctx context.Context, userID, id uint) (*entity.AddressBook, error) {
	var a entity.AddressBook
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddressBookRepository) ListByUser(ctx context.Context, userID uint) ([]entity.AddressBook, error) {
	var out []entity.AddressBook
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *AddressBookRepository) Create(tx *gorm.DB, a *entity.AddressBook) error {
	return tx.Create(a).Error
}

// ClearDefault ยกเลิก default เดิมก่อนตั้งอันใหม่
func (r *AddressBookRepository) ClearDefault(tx *gorm.DB, userID uint) error {
	return tx.Model(&entity.AddressBook{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
