package configs

import (
	"fmt"

	"takeout/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// ConnectionDB เปิด connection ตาม DB_DRIVER (sqlite เป็นค่า default สำหรับ dev)
func ConnectionDB(cfg *Config) error {
	database, err := Open(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return err
	}
	db = database
	return nil
}

func Open(driver, source string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(source)
	case "postgres":
		dialector = postgres.Open(source)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if driver == "sqlite" {
		// sqlite เขียนได้ทีละ connection
		sqlDB, err := database.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return database, nil
}

func SetupDatabase(database *gorm.DB) error {
	// Migrate the schema
	return database.AutoMigrate(
		&entity.User{},
		&entity.AddressBook{},
		&entity.Dish{}, &entity.Combo{},
		&entity.CartItem{},
		&entity.Order{}, &entity.OrderLine{},
	)
}
