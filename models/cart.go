package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is one pending line in a shopper's cart. UserID is either a
// profile ID or a guest ID; both own lines the same way, which is what lets
// a guest cart merge into a user cart at login. One row per (owner, product)
// pair: adding an already-carted product bumps Quantity instead.
type CartItem struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index:idx_cart_owner_product,unique;not null" json:"user_id"`
	ProductID string    `gorm:"index:idx_cart_owner_product,unique;not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	return nil
}
