package types

import "time"

// Detail levels for recipe projection.
const (
	DetailSimple   = "simple"
	DetailDetailed = "detailed"
)

// RecipeView is a projected recipe. The simple projection carries only
// the always-present fields; the detailed projection fills in every
// pointer, so empty collections still encode as [] rather than being
// dropped from the JSON.
type RecipeView struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ImageURL    string        `json:"imageUrl"`
	Tags        []string      `json:"tags"`
	PrepTime    *int          `json:"prepTime,omitempty"`
	CookTime    *int          `json:"cookTime,omitempty"`
	Servings    *int          `json:"servings,omitempty"`
	Ingredients *[]Ingredient `json:"ingredients,omitempty"`
	Steps       *[]Step       `json:"steps,omitempty"`
	CreatedAt   *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty"`
}

// Pagination is the metadata block returned verbatim alongside every
// recipe list.
type Pagination struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPagination derives the full metadata block from the filtered
// total. TotalPages is ceil(total/pageSize), zero when the filtered
// set is empty.
func NewPagination(page, pageSize, total int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Pagination{
		Page:        page,
		PageSize:    pageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// RecipeList is the response body of the list operation.
type RecipeList struct {
	Recipes    []RecipeView `json:"recipes"`
	Pagination Pagination   `json:"pagination"`
}
