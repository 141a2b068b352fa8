package entity

type AddressBook struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"index;not null" json:"userId"`
	Consignee string `gorm:"not null" json:"consignee"`
	Phone     string `gorm:"not null" json:"phone"`
	Detail    string `gorm:"not null" json:"detail"`
	Label     string `json:"label"`
	IsDefault bool   `json:"isDefault"`

	Audit
}
