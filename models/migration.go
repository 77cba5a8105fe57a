package models

import (
	"log"

	"gorm.io/gorm"
)

func MigrateTable(db *gorm.DB) {
	err := db.AutoMigrate(
		&School{}, &Student{},
		&Invoice{}, &Payment{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
