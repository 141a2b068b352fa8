// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"takeout/configs"
	"takeout/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB เปิด sqlite ไฟล์ชั่วคราวต่อ test พร้อม migrate
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := configs.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, configs.SetupDatabase(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, role string) *entity.User {
	t.Helper()
	u := &entity.User{Name: role, Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateAddress(t *testing.T, db *gorm.DB, userID uint) *entity.AddressBook {
	t.Helper()
	a := &entity.AddressBook{UserID: userID, Consignee: "Somchai", Phone: "0812345678", Detail: "99 Sukhumvit Rd"}
	entity.StampAudit(a, userID, entity.OpInsert, time.Now())
	require.NoError(t, db.Create(a).Error)
	return a
}

func CreateDish(t *testing.T, db *gorm.DB, name, price string, onSale bool) *entity.Dish {
	t.Helper()
	d := &entity.Dish{Name: name, Price: decimal.RequireFromString(price), OnSale: onSale}
	entity.StampAudit(d, 0, entity.OpInsert, time.Now())
	require.NoError(t, db.Create(d).Error)
	return d
}

func CreateCombo(t *testing.T, db *gorm.DB, name, price string) *entity.Combo {
	t.Helper()
	c := &entity.Combo{Name: name, Price: decimal.RequireFromString(price), OnSale: true}
	entity.StampAudit(c, 0, entity.OpInsert, time.Now())
	require.NoError(t, db.Create(c).Error)
	return c
}

// CreateOrder inserts an order directly, bypassing the cart, for transition tests.
func CreateOrder(t *testing.T, db *gorm.DB, userID uint, status entity.OrderStatus, pay entity.PayStatus, orderTime time.Time) *entity.Order {
	t.Helper()
	o := &entity.Order{
		Number:    "T" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20],
		UserID:    userID,
		Status:    status,
		PayStatus: pay,
		PayMethod: entity.PayMethodWallet,
		Amount:    decimal.RequireFromString("20.00"),
		Consignee: "Somchai",
		Phone:     "0812345678",
		Address:   "99 Sukhumvit Rd",
		OrderTime: orderTime,
	}
	entity.StampAudit(o, userID, entity.OpInsert, orderTime)
	require.NoError(t, db.Create(o).Error)
	return o
}

func ReloadOrder(t *testing.T, db *gorm.DB, id uint) *entity.Order {
	t.Helper()
	var o entity.Order
	require.NoError(t, db.First(&o, id).Error)
	return &o
}

// Env is a migrated database with one customer (plus address) and one staff user.
type Env struct {
	DB       *gorm.DB
	Customer *entity.User
	Staff    *entity.User
	Address  *entity.AddressBook
}

func NewEnv(t *testing.T) *Env {
	t.Helper()
	db := NewDB(t)
	cust := CreateUser(t, db, entity.RoleCustomer)
	return &Env{
		DB:       db,
		Customer: cust,
		Staff:    CreateUser(t, db, entity.RoleStaff),
		Address:  CreateAddress(t, db, cust.ID),
	}
}
