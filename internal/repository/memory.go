package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TheOneTrueGod/lomithBackend/internal/types"
)

// MemoryRecipeRepository is the in-memory demo backend. It keeps
// recipes in insertion order and deep-copies every value that crosses
// the repository boundary so callers can never alias stored state.
// A single mutex guards the list; without it, concurrent handlers in
// the HTTP host would race on list mutation.
type MemoryRecipeRepository struct {
	mu      sync.RWMutex
	recipes []types.Recipe
}

// NewMemoryRecipeRepository creates an empty in-memory store.
func NewMemoryRecipeRepository() *MemoryRecipeRepository {
	return &MemoryRecipeRepository{}
}

// NewSeededMemoryRecipeRepository creates an in-memory store holding
// the demo recipe set.
func NewSeededMemoryRecipeRepository() *MemoryRecipeRepository {
	return &MemoryRecipeRepository{recipes: SeedRecipes()}
}

// GetList filters, counts, and pages in one pass. The total reflects
// the filtered set before pagination, so a page past the end returns
// an empty slice with an unchanged total.
func (r *MemoryRecipeRepository) GetList(ctx context.Context, params ListParams) ([]types.Recipe, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]types.Recipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		if params.UserID != "" && recipe.UserID != params.UserID {
			continue
		}
		if params.Search != "" && !matchesSearch(recipe, params.Search) {
			continue
		}
		filtered = append(filtered, recipe)
	}

	total := len(filtered)

	page := paginate(filtered, params.Page, params.PageSize)
	out := make([]types.Recipe, len(page))
	for i, recipe := range page {
		out[i] = recipe.Clone()
	}
	return out, total, nil
}

// GetByID returns a copy of the recipe, or (nil, nil) if the id is
// unknown.
func (r *MemoryRecipeRepository) GetByID(ctx context.Context, id string) (*types.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, recipe := range r.recipes {
		if recipe.ID == id {
			cp := recipe.Clone()
			return &cp, nil
		}
	}
	return nil, nil
}

// Create stores a copy of the recipe. The caller-supplied id is kept
// when present; otherwise a fresh uuid is assigned. Missing
// timestamps default to now.
func (r *MemoryRecipeRepository) Create(ctx context.Context, recipe types.Recipe) (*types.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := recipe.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	for _, existing := range r.recipes {
		if existing.ID == stored.ID {
			return nil, fmt.Errorf("recipe %q already exists", stored.ID)
		}
	}

	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = now
	}
	stored.Tags = dedupeTags(stored.Tags)

	r.recipes = append(r.recipes, stored)
	cp := stored.Clone()
	return &cp, nil
}

// Update applies a partial update: present fields replace stored
// values, ingredient/step/tag slices are replaced wholesale when
// present. Returns (nil, nil) for an unknown id.
func (r *MemoryRecipeRepository) Update(ctx context.Context, id string, update types.RecipeUpdate) (*types.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, recipe := range r.recipes {
		if recipe.ID != id {
			continue
		}

		stored := recipe.Clone()
		if update.UserID != nil {
			stored.UserID = *update.UserID
		}
		if update.Title != nil {
			stored.Title = *update.Title
		}
		if update.Description != nil {
			stored.Description = *update.Description
		}
		if update.PrepTime != nil {
			stored.PrepTime = *update.PrepTime
		}
		if update.CookTime != nil {
			stored.CookTime = *update.CookTime
		}
		if update.Servings != nil {
			stored.Servings = *update.Servings
		}
		if update.ImageURL != nil {
			stored.ImageURL = *update.ImageURL
		}
		if update.Ingredients != nil {
			stored.Ingredients = make([]types.Ingredient, len(update.Ingredients))
			copy(stored.Ingredients, update.Ingredients)
		}
		if update.Steps != nil {
			stored.Steps = make([]types.Step, len(update.Steps))
			for j, st := range update.Steps {
				cp := st
				cp.Ingredients = append([]string(nil), st.Ingredients...)
				stored.Steps[j] = cp
			}
		}
		if update.Tags != nil {
			stored.Tags = dedupeTags(update.Tags)
		}
		if update.UpdatedAt != nil {
			stored.UpdatedAt = *update.UpdatedAt
		} else {
			stored.UpdatedAt = time.Now().UTC()
		}

		r.recipes[i] = stored
		cp := stored.Clone()
		return &cp, nil
	}
	return nil, nil
}

// Delete removes the recipe and reports whether a record was removed.
func (r *MemoryRecipeRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, recipe := range r.recipes {
		if recipe.ID == id {
			r.recipes = append(r.recipes[:i], r.recipes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
