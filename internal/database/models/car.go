package models

import (
	"time"
)

// Car is an inventory listing. Price is whole Rupiah (no minor unit).
// Features is stored as a JSON column so the ordering of the list survives.
type Car struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UserID       uint           `gorm:"not null" json:"user_id"`
	CategoryID   uint           `gorm:"not null" json:"category_id"`
	Brand        string         `gorm:"not null" json:"brand"`
	Type         string         `gorm:"not null" json:"type"`
	Fuel         string         `gorm:"not null" json:"fuel"`
	Features     []string       `gorm:"serializer:json;not null" json:"features"`
	Price        int64          `gorm:"not null" json:"price"`
	ImageURL     string         `json:"image_url"`
	ReleasedYear string         `gorm:"not null" json:"released_year"`
	Condition    string         `gorm:"not null" json:"condition"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName overrides the table name
func (Car) TableName() string {
	return "cars"
}

// DisplayName is the human-facing "Toyota Avanza" form used in checkout
// line items and recommendation text.
func (c *Car) DisplayName() string {
	return c.Brand + " " + c.Type
}
