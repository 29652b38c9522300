package database

import (
	"time"
)

// StatusPending is the status every new order and inquiry starts with.
const StatusPending = "pending"

type User struct {
	ID         uint   `gorm:"primaryKey"`
	TelegramID int64  `gorm:"uniqueIndex"`
	Phone      string `gorm:"size:20"`
	FullName   string `gorm:"size:255"`
	CreatedAt  time.Time
}

type Order struct {
	ID         uint   `gorm:"primaryKey"`
	TelegramID int64  `gorm:"index"`
	Product    string `gorm:"size:255"`
	Quantity   string `gorm:"size:32"`
	Address    string `gorm:"size:512"`
	Status     string `gorm:"size:20"`
	CreatedAt  time.Time
}

type Inquiry struct {
	ID         uint   `gorm:"primaryKey"`
	TelegramID int64  `gorm:"index"`
	Topic      string `gorm:"size:255"`
	Message    string `gorm:"type:text"`
	Status     string `gorm:"size:20"`
	CreatedAt  time.Time
}

// SchemaMeta holds a single row with the current schema version.
type SchemaMeta struct {
	ID      uint `gorm:"primaryKey"`
	Version int
}

func (SchemaMeta) TableName() string {
	return "schema_meta"
}
