package entity

import (
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
)

type User struct {
	gorm.Model
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `gorm:"not null;default:customer" json:"role"`

	// Relations: preload เฉพาะตอนจำเป็น
	Orders    []Order       `json:"-"`
	Addresses []AddressBook `json:"-"`
}
