package models

import (
	"time"
)

// Category groups cars (SUV, MPV, sedan, ...).
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Relationships
	Cars []Car `gorm:"foreignKey:CategoryID" json:"cars,omitempty"`
}

// TableName overrides the table name
func (Category) TableName() string {
	return "categories"
}
