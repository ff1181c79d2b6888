package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID             string   `gorm:"primaryKey" json:"id"`
	Name           string   `gorm:"not null" json:"name"`
	Slug           string   `gorm:"uniqueIndex;not null" json:"slug"`
	Description    string   `json:"description"`
	Category       string   `gorm:"index;not null" json:"category"` // category slug
	Price          float64  `gorm:"not null" json:"price"`
	B2BPrice       *float64 `gorm:"column:b2b_price" json:"b2b_price"` // wholesale price, nil = no B2B pricing
	MOQ            int      `gorm:"default:1" json:"moq"`
	Unit           string   `gorm:"default:kg" json:"unit"`
	ImageURL       string   `json:"image_url"`
	Certifications []string `gorm:"serializer:json" json:"certifications"`
	// No default tag: GORM would skip a zero-valued tagged field on insert,
	// silently flipping an out-of-stock create back to in-stock.
	InStock   bool      `json:"in_stock"`
	Featured  bool      `gorm:"default:false" json:"featured"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.MOQ < 1 {
		p.MOQ = 1
	}
	return nil
}

// DisplayPrice returns the unit price a customer of the given type pays:
// B2B customers get the wholesale price when one is set, everyone else
// pays the standard price.
func (p *Product) DisplayPrice(userType UserType) float64 {
	if userType == UserTypeB2B && p.B2BPrice != nil {
		return *p.B2BPrice
	}
	return p.Price
}
