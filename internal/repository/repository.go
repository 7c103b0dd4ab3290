package repository

import (
	"context"
	"strings"

	"github.com/TheOneTrueGod/lomithBackend/internal/types"
)

// ListParams narrows and pages a recipe listing. UserID and Search are
// optional (empty means no filter); Page is 1-indexed.
type ListParams struct {
	UserID   string
	Search   string
	Page     int
	PageSize int
}

// RecipeRepository is the storage-agnostic contract for recipe data.
// GetList applies filtering and pagination in a single round-trip and
// reports the filtered total as counted before the page slice.
// Absent records are a normal outcome: GetByID and Update return
// (nil, nil) for an unknown id, Delete returns false. Every value
// crossing this boundary, in either direction, is an independent copy
// of stored state.
type RecipeRepository interface {
	GetList(ctx context.Context, params ListParams) ([]types.Recipe, int, error)
	GetByID(ctx context.Context, id string) (*types.Recipe, error)
	Create(ctx context.Context, recipe types.Recipe) (*types.Recipe, error)
	Update(ctx context.Context, id string, update types.RecipeUpdate) (*types.Recipe, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// matchesSearch reports whether the query appears, case-insensitively,
// in the recipe's title, description, or any tag.
func matchesSearch(r types.Recipe, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// paginate clips [start, end) to the slice bounds. Pages past the end
// of the data yield an empty slice, never an error.
func paginate(recipes []types.Recipe, page, pageSize int) []types.Recipe {
	start := (page - 1) * pageSize
	if start >= len(recipes) {
		return nil
	}
	end := start + pageSize
	if end > len(recipes) {
		end = len(recipes)
	}
	return recipes[start:end]
}

// dedupeTags drops repeated tag values, keeping first-occurrence
// order. Both backends apply this so duplicate tags in a create or
// update payload produce identical stored state everywhere.
func dedupeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
