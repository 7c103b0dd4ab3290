package models

import "time"

// Recipe is the relational recipe record. Child rows (ingredients and
// steps) are owned by the recipe and cascade-deleted with it; tags go
// through a shared dictionary joined via recipe_tags.
type Recipe struct {
	ID          uint         `gorm:"primaryKey"`
	UserID      string       `gorm:"size:64;not null;index"`
	Title       string       `gorm:"size:255;not null"`
	Description string       `gorm:"type:text"`
	PrepTime    int          `gorm:"not null;default:0"`
	CookTime    int          `gorm:"not null;default:0"`
	Servings    int          `gorm:"not null;default:1"`
	ImageURL    string       `gorm:"size:500"`
	Ingredients []Ingredient `gorm:"constraint:OnDelete:CASCADE"`
	Steps       []Step       `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Ingredient is a child row of a recipe.
type Ingredient struct {
	ID       uint   `gorm:"primaryKey"`
	RecipeID uint   `gorm:"not null;index"`
	Name     string `gorm:"size:255;not null"`
	Amount   string `gorm:"size:100"`
	Unit     string `gorm:"size:100"`
}

// Step is a child row of a recipe. Position is 1-indexed and
// re-derived from the payload order on every full replace.
// Ingredients lists the recipe ingredients used in this step.
type Step struct {
	ID           uint         `gorm:"primaryKey"`
	RecipeID     uint         `gorm:"not null;index"`
	Instructions string       `gorm:"type:text;not null"`
	Position     int          `gorm:"not null"`
	Ingredients  []Ingredient `gorm:"many2many:step_ingredients;constraint:OnDelete:CASCADE"`
}

// Tag is the globally shared tag dictionary, deduplicated by name.
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null;uniqueIndex"`
}

// RecipeTag links a recipe to a dictionary tag. Position is 1-indexed
// and preserves the payload's first-occurrence order, so a recipe's
// tags display in the order they were written rather than dictionary
// creation order.
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey"`
	TagID    uint `gorm:"primaryKey"`
	Position int  `gorm:"not null"`
}
