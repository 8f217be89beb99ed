package models

import (
	"time"
)

// WishlistItem links a user to a saved car. The composite unique index is
// the source of truth for the one-entry-per-(user,car) rule; inserts racing
// past any existence check still come back as a duplicate-key error.
type WishlistItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_wishlist_user_car" json:"user_id"`
	CarID     uint           `gorm:"not null;uniqueIndex:idx_wishlist_user_car" json:"car_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Car  Car  `gorm:"foreignKey:CarID" json:"car,omitempty"`
}

// TableName overrides the table name
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
