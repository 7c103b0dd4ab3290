package service

import (
	"context"
	"fmt"

	"github.com/TheOneTrueGod/lomithBackend/internal/repository"
	"github.com/TheOneTrueGod/lomithBackend/internal/types"
)

// ValidationError reports malformed caller input with the offending
// field. It is surfaced to the HTTP layer as a client error and never
// reaches the repository.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ListOptions are the arguments of the list operation.
type ListOptions struct {
	Page        int
	PageSize    int
	Search      string
	UserID      string
	DetailLevel string
}

// RecipeService orchestrates recipe operations: it validates input,
// delegates filtering and pagination to the repository in a single
// call, and projects results at the requested detail level. It holds
// no recipe state between calls.
type RecipeService struct {
	repo repository.RecipeRepository
}

// NewRecipeService creates a service on top of any repository
// implementation.
func NewRecipeService(repo repository.RecipeRepository) *RecipeService {
	return &RecipeService{repo: repo}
}

// List returns one page of recipes plus pagination metadata.
func (s *RecipeService) List(ctx context.Context, opts ListOptions) (*types.RecipeList, error) {
	if opts.Page < 1 {
		return nil, &ValidationError{Field: "page", Message: "page must be greater than 0"}
	}
	if opts.PageSize < 1 {
		return nil, &ValidationError{Field: "page_size", Message: "page_size must be greater than 0"}
	}
	if opts.DetailLevel != types.DetailSimple && opts.DetailLevel != types.DetailDetailed {
		return nil, &ValidationError{Field: "detail_level", Message: "detail_level must be 'simple' or 'detailed'"}
	}

	recipes, total, err := s.repo.GetList(ctx, repository.ListParams{
		UserID:   opts.UserID,
		Search:   opts.Search,
		Page:     opts.Page,
		PageSize: opts.PageSize,
	})
	if err != nil {
		return nil, err
	}

	views := make([]types.RecipeView, len(recipes))
	for i, recipe := range recipes {
		views[i] = formatRecipe(recipe, opts.DetailLevel)
	}

	return &types.RecipeList{
		Recipes:    views,
		Pagination: types.NewPagination(opts.Page, opts.PageSize, total),
	}, nil
}

// GetByID returns the recipe projected at the given detail level, or
// (nil, nil) when the id is unknown.
func (s *RecipeService) GetByID(ctx context.Context, id, detailLevel string) (*types.RecipeView, error) {
	if detailLevel != types.DetailSimple && detailLevel != types.DetailDetailed {
		return nil, &ValidationError{Field: "detail_level", Message: "detail_level must be 'simple' or 'detailed'"}
	}

	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, nil
	}
	view := formatRecipe(*recipe, detailLevel)
	return &view, nil
}

// Create stores the recipe and returns the detailed view with the
// final, store-assigned or validated id.
func (s *RecipeService) Create(ctx context.Context, recipe types.Recipe) (*types.RecipeView, error) {
	created, err := s.repo.Create(ctx, recipe)
	if err != nil {
		return nil, err
	}
	view := formatRecipe(*created, types.DetailDetailed)
	return &view, nil
}

// Update applies a partial update and returns the detailed view, or
// (nil, nil) when the id is unknown.
func (s *RecipeService) Update(ctx context.Context, id string, update types.RecipeUpdate) (*types.RecipeView, error) {
	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}
	view := formatRecipe(*updated, types.DetailDetailed)
	return &view, nil
}

// Delete removes the recipe and reports whether a record existed.
func (s *RecipeService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// formatRecipe projects a recipe at the given detail level. The view
// owns fresh copies of every collection, so formatting never mutates
// the source and views produced from the same recipe cannot interfere.
func formatRecipe(recipe types.Recipe, detailLevel string) types.RecipeView {
	src := recipe.Clone()

	tags := src.Tags
	if tags == nil {
		tags = []string{}
	}
	view := types.RecipeView{
		ID:          src.ID,
		UserID:      src.UserID,
		Title:       src.Title,
		Description: src.Description,
		ImageURL:    src.ImageURL,
		Tags:        tags,
	}
	if detailLevel == types.DetailSimple {
		return view
	}

	prep, cook, servings := src.PrepTime, src.CookTime, src.Servings
	created, updated := src.CreatedAt, src.UpdatedAt
	ingredients := src.Ingredients
	if ingredients == nil {
		ingredients = []types.Ingredient{}
	}
	steps := src.Steps
	if steps == nil {
		steps = []types.Step{}
	}

	view.PrepTime = &prep
	view.CookTime = &cook
	view.Servings = &servings
	view.Ingredients = &ingredients
	view.Steps = &steps
	view.CreatedAt = &created
	view.UpdatedAt = &updated
	return view
}
