package migration

import (
	entities2 "Macho-AI-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities2.MealScan{}); err != nil {
		log.Fatalf("Error migrating meal scan database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.SnapshotExport{}); err != nil {
		log.Fatalf("Error migrating snapshot export database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
