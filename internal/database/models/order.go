package models

import "time"

// Order is the durable record written when Stripe reports a completed
// checkout session. Amount is in sen (Rupiah minor unit), matching what was
// charged.
type Order struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	CarID           uint      `gorm:"not null;index" json:"car_id"`
	StripeSessionID string    `gorm:"uniqueIndex;not null" json:"stripe_session_id"`
	Amount          int64     `gorm:"not null" json:"amount"`
	Status          string    `gorm:"type:varchar(20);not null;default:paid" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}
