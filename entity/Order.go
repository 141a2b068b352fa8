package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Number        string      `gorm:"size:32;uniqueIndex;not null" json:"number"`
	UserID        uint        `gorm:"index;not null" json:"userId"`
	AddressBookID uint        `json:"addressBookId"`
	Status        OrderStatus `gorm:"index;not null" json:"status"`
	PayStatus     PayStatus   `gorm:"not null" json:"payStatus"`
	PayMethod     PayMethod   `json:"payMethod"`

	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`

	// snapshot จาก address book ตอน submit ห้ามแก้ภายหลัง
	Consignee string `json:"consignee"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Remark    string `json:"remark"`

	OrderTime             time.Time  `gorm:"index;not null" json:"orderTime"`
	CheckoutTime          *time.Time `json:"checkoutTime,omitempty"`
	CancelReason          string     `json:"cancelReason,omitempty"`
	RejectionReason       string     `json:"rejectionReason,omitempty"`
	CancelTime            *time.Time `json:"cancelTime,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	DeliveryTime          *time.Time `json:"deliveryTime,omitempty"`

	Audit

	// preload เฉพาะตอน detail
	Lines []OrderLine `gorm:"foreignKey:OrderID" json:"orderDetailList,omitempty"`
}
