package database

import (
	"fmt"
	"log"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDbSeq uint64

// ConnectTestDb opens a fresh in-memory SQLite database, runs the
// migrations and installs it as the global instance. Each call gets its
// own database; cache=shared keeps the whole connection pool on the
// same in-memory store.
func ConnectTestDb() {
	name := fmt.Sprintf("testdb%d", atomic.AddUint64(&testDbSeq, 1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to open test database: %v", err)
	}

	runMigrations(db)

	Database = DbInstance{Db: db}
}
