package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is the aggregate root for a recipe and its ingredient rows.
// Only the owner may update or delete it.
type Recipe struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string         `gorm:"size:255" json:"image_url,omitempty"`
	OwnerID     uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"owner_id"`
	Ingredients []Ingredient   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
}

// Ingredient belongs to exactly one recipe. Rows are replaced wholesale on
// recipe update and removed with the recipe; Position preserves list order.
type Ingredient struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Position int       `gorm:"not null" json:"-"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate assigns a UUID primary key when none is set
func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IngredientNames returns the ingredient names in list order.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = ing.Name
	}
	return names
}

// HasIngredient reports whether the recipe contains the given ingredient,
// compared case-insensitively.
func (r *Recipe) HasIngredient(name string) bool {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, ing := range r.Ingredients {
		if strings.ToLower(ing.Name) == want {
			return true
		}
	}
	return false
}
