package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectTestDatabase opens a named in-memory SQLite database and runs the
// migrations against it. Each distinct name gets an isolated database, so
// tests don't see each other's rows.
func ConnectTestDatabase(name string) error {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	var err error

	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		return err
	}

	// cache=shared keeps the database alive only while a connection is open.
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)

	return MigrateDatabase()
}
