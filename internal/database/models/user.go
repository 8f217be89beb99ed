package models

import (
	"strings"
	"time"
)

// Role is the closed set of account roles. Free-text role strings from
// legacy data are normalized through ParseRole before any comparison.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole maps any case variant onto the closed role set.
// Unknown values degrade to customer.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleSuperAdmin):
		return RoleSuperAdmin
	default:
		return RoleCustomer
	}
}

// CanManageInventory reports whether the role may write cars and categories.
func (r Role) CanManageInventory() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User represents an account. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Username  string         `gorm:"not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      Role           `gorm:"type:varchar(20);not null;default:customer" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Relationships
	Cars          []Car          `gorm:"foreignKey:UserID" json:"cars,omitempty"`
	WishlistItems []WishlistItem `gorm:"foreignKey:UserID" json:"wishlist_items,omitempty"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}
