package storage

import (
	"fmt"
	"log"
	"os"

	"backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var gormDB *gorm.DB

// InitGormDB opens the GORM connection used for the append-only tables
// (acceptance events, activity logs, device tokens). The raw lib/pq pool
// stays the workhorse for the planner queries.
func InitGormDB() *gorm.DB {
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port)

	var err error
	gormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect GORM to database:", err)
	}

	if err := gormDB.AutoMigrate(
		&models.AcceptanceEventGorm{},
		&models.ActivityLogGorm{},
		&models.DeviceTokenGorm{},
	); err != nil {
		log.Fatal("Failed to run GORM migrations:", err)
	}

	return gormDB
}

func GetGormDB() *gorm.DB {
	return gormDB
}
