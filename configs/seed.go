package configs

import (
	"log"
	"time"

	"takeout/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedDemo สร้างข้อมูลตัวอย่าง (staff, customer, เมนู) ถ้ายังไม่มี
func SeedDemo(database *gorm.DB) error {
	return database.Transaction(func(tx *gorm.DB) error {
		staff := entity.User{Name: "Staff", Role: entity.RoleStaff}
		if err := tx.Where(entity.User{Name: staff.Name, Role: staff.Role}).FirstOrCreate(&staff).Error; err != nil {
			return err
		}
		customer := entity.User{Name: "Customer", PhoneNumber: "0800000000", Role: entity.RoleCustomer}
		if err := tx.Where(entity.User{Name: customer.Name, Role: customer.Role}).FirstOrCreate(&customer).Error; err != nil {
			return err
		}

		now := time.Now()
		dishes := []entity.Dish{
			{Name: "Pad Thai", Image: "/img/pad-thai.png", Price: decimal.RequireFromString("60.00"), OnSale: true},
			{Name: "Green Curry", Image: "/img/green-curry.png", Price: decimal.RequireFromString("75.00"), OnSale: true},
		}
		for i := range dishes {
			var cnt int64
			if err := tx.Model(&entity.Dish{}).Where("name = ?", dishes[i].Name).Count(&cnt).Error; err != nil {
				return err
			}
			if cnt > 0 {
				continue
			}
			entity.StampAudit(&dishes[i], staff.ID, entity.OpInsert, now)
			if err := tx.Create(&dishes[i]).Error; err != nil {
				return err
			}
		}

		combo := entity.Combo{Name: "Lunch Set", Image: "/img/lunch-set.png", Price: decimal.RequireFromString("120.00"), OnSale: true}
		var cnt int64
		if err := tx.Model(&entity.Combo{}).Where("name = ?", combo.Name).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			entity.StampAudit(&combo, staff.ID, entity.OpInsert, now)
			if err := tx.Create(&combo).Error; err != nil {
				return err
			}
		}

		log.Printf("✅ demo data seeded (staff=%d customer=%d)", staff.ID, customer.ID)
		return nil
	})
}
