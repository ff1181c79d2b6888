package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (cat *Category) BeforeCreate(tx *gorm.DB) error {
	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	if cat.Slug == "" {
		cat.Slug = Slugify(cat.Name)
	}
	return nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a display name.
func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// DefaultCategories is the hardcoded catalog structure served when the
// categories table has not been provisioned yet. Storefront and admin both
// fall back to it instead of failing the request.
func DefaultCategories() []Category {
	return []Category{
		{ID: "dairy", Name: "A2 Dairy", Slug: "dairy", Description: "A2 Gir Cow dairy products", SortOrder: 1},
		{ID: "grains", Name: "Grains & Staples", Slug: "grains", Description: "Organic grains and staples", SortOrder: 2},
		{ID: "oils", Name: "Oils & Sweeteners", Slug: "oils", Description: "Cold-pressed oils and natural sweeteners", SortOrder: 3},
	}
}
