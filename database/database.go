package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SchemaVersion is bumped whenever the table layout changes.
const SchemaVersion = 1

func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}

	if err := db.AutoMigrate(&User{}, &Order{}, &Inquiry{}, &SchemaMeta{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := writeSchemaVersion(db); err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

func writeSchemaVersion(db *gorm.DB) error {
	var meta SchemaMeta
	err := db.First(&meta).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(&SchemaMeta{Version: SchemaVersion}).Error
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	}
	if meta.Version != SchemaVersion {
		meta.Version = SchemaVersion
		return db.Save(&meta).Error
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
