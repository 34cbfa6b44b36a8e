package database

import (
	"fmt"
	"log"

	"rkzs/config"
	"rkzs/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	// Build the PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.AppConfig.DBHost,
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBName,
		config.AppConfig.DBPort,
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	// Run database migrations
	runMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// CloseDb releases the connection pool. Called on shutdown.
func CloseDb() {
	if Database.Db == nil {
		return
	}
	sqlDB, err := Database.Db.DB()
	if err != nil {
		log.Printf("Error fetching database instance on shutdown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Student{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seedCourses(db)

	log.Println("Migrations completed successfully.")
}

// seedCourses fills the course catalog on an empty database. The API
// surface has no course create endpoint, so a fresh deployment needs
// these rows to enroll students against.
func seedCourses(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Course{}).Count(&count).Error; err != nil {
		log.Printf("Error counting courses during seed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	courses := []models.Course{
		{CourseName: "DCA - Diploma in Computer Applications"},
		{CourseName: "PGDCA - PG Diploma in Computer Applications"},
		{CourseName: "CCC - Course on Computer Concepts"},
		{CourseName: "Tally Prime with GST"},
		{CourseName: "Web Designing"},
	}
	if err := db.Create(&courses).Error; err != nil {
		log.Printf("Error seeding courses: %v", err)
		return
	}
	log.Printf("Seeded %d courses.", len(courses))
}
