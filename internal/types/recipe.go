package types

import "time"

// Ingredient is a single ingredient line on a recipe. Amount is
// free-form ("2", "1/2", "to taste") and unit may be empty.
type Ingredient struct {
	ID     string `json:"id"`
	Name   string `json:"name" binding:"required"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// Step is one instruction in a recipe. Ingredients holds ids of the
// recipe's ingredients used in this step; the step's position is
// implied by its index in the recipe's step list.
type Step struct {
	ID           string   `json:"id"`
	Instructions string   `json:"instructions" binding:"required"`
	Ingredients  []string `json:"ingredients"`
}

// Recipe is the wire representation of a recipe. Field names follow
// the public API's camelCase contract.
type Recipe struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	PrepTime    int          `json:"prepTime" binding:"min=0"`
	CookTime    int          `json:"cookTime" binding:"min=0"`
	Servings    int          `json:"servings" binding:"required,min=1"`
	ImageURL    string       `json:"imageUrl"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	Tags        []string     `json:"tags"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Clone returns a deep copy of the recipe. Repositories hand copies
// across their boundary so callers can never alias stored state.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = make([]Ingredient, len(r.Ingredients))
		copy(out.Ingredients, r.Ingredients)
	}
	if r.Steps != nil {
		out.Steps = make([]Step, len(r.Steps))
		for i, st := range r.Steps {
			cp := st
			if st.Ingredients != nil {
				cp.Ingredients = make([]string, len(st.Ingredients))
				copy(cp.Ingredients, st.Ingredients)
			}
			out.Steps[i] = cp
		}
	}
	if r.Tags != nil {
		out.Tags = make([]string, len(r.Tags))
		copy(out.Tags, r.Tags)
	}
	return out
}

// RecipeUpdate carries a partial update. Nil pointer scalars and nil
// slices mean "leave unchanged"; a present (possibly empty) slice
// replaces the stored collection wholesale.
type RecipeUpdate struct {
	UserID      *string      `json:"userId"`
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	PrepTime    *int         `json:"prepTime"`
	CookTime    *int         `json:"cookTime"`
	Servings    *int         `json:"servings"`
	ImageURL    *string      `json:"imageUrl"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	Tags        []string     `json:"tags"`
	UpdatedAt   *time.Time   `json:"updatedAt"`
}
