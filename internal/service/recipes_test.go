package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheOneTrueGod/lomithBackend/internal/repository"
	"github.com/TheOneTrueGod/lomithBackend/internal/service"
	"github.com/TheOneTrueGod/lomithBackend/internal/types"
)

func newRecipeService(t *testing.T, recipes ...types.Recipe) *service.RecipeService {
	t.Helper()
	repo := repository.NewMemoryRecipeRepository()
	for _, r := range recipes {
		_, err := repo.Create(context.Background(), r)
		require.NoError(t, err)
	}
	return service.NewRecipeService(repo)
}

func sampleRecipe(id string) types.Recipe {
	return types.Recipe{
		ID:          id,
		UserID:      "1",
		Title:       "Recipe " + id,
		Description: "something tasty",
		PrepTime:    5,
		CookTime:    10,
		Servings:    2,
		Tags:        []string{"tag-" + id},
	}
}

func TestListValidation(t *testing.T) {
	svc := newRecipeService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		opts    service.ListOptions
		message string
	}{
		{
			name:    "zero page",
			opts:    service.ListOptions{Page: 0, PageSize: 10, DetailLevel: types.DetailDetailed},
			message: "page must be greater than 0",
		},
		{
			name:    "negative page",
			opts:    service.ListOptions{Page: -3, PageSize: 10, DetailLevel: types.DetailDetailed},
			message: "page must be greater than 0",
		},
		{
			name:    "zero page size",
			opts:    service.ListOptions{Page: 1, PageSize: 0, DetailLevel: types.DetailDetailed},
			message: "page_size must be greater than 0",
		},
		{
			name:    "bad detail level",
			opts:    service.ListOptions{Page: 1, PageSize: 10, DetailLevel: "full"},
			message: "detail_level must be 'simple' or 'detailed'",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.List(ctx, tc.opts)
			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.message, verr.Message)
		})
	}
}

func TestListPaginationMetadata(t *testing.T) {
	svc := newRecipeService(t,
		sampleRecipe("1"), sampleRecipe("2"), sampleRecipe("3"),
		sampleRecipe("4"), sampleRecipe("5"),
	)
	ctx := context.Background()

	result, err := svc.List(ctx, service.ListOptions{Page: 2, PageSize: 2, DetailLevel: types.DetailSimple})
	require.NoError(t, err)
	assert.Len(t, result.Recipes, 2)
	assert.Equal(t, types.Pagination{
		Page:        2,
		PageSize:    2,
		Total:       5,
		TotalPages:  3,
		HasNext:     true,
		HasPrevious: true,
	}, result.Pagination)

	// Beyond the last page: empty recipes, metadata intact.
	result, err = svc.List(ctx, service.ListOptions{Page: 9, PageSize: 2, DetailLevel: types.DetailSimple})
	require.NoError(t, err)
	assert.Empty(t, result.Recipes)
	assert.Equal(t, 5, result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.False(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrevious)

	// Empty result set has zero pages and no neighbors.
	result, err = svc.List(ctx, service.ListOptions{Page: 1, PageSize: 10, Search: "no-such-recipe", DetailLevel: types.DetailSimple})
	require.NoError(t, err)
	assert.Empty(t, result.Recipes)
	assert.Zero(t, result.Pagination.TotalPages)
	assert.False(t, result.Pagination.HasNext)
	assert.False(t, result.Pagination.HasPrevious)
}

func viewKeys(t *testing.T, view types.RecipeView) map[string]json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(view)
	require.NoError(t, err)
	keys := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(raw, &keys))
	return keys
}

func TestSimpleProjectionOmitsDetailKeys(t *testing.T) {
	svc := newRecipeService(t, sampleRecipe("1"))

	view, err := svc.GetByID(context.Background(), "1", types.DetailSimple)
	require.NoError(t, err)
	require.NotNil(t, view)

	keys := viewKeys(t, *view)
	for _, key := range []string{"id", "userId", "title", "description", "imageUrl", "tags"} {
		assert.Contains(t, keys, key)
	}
	for _, key := range []string{"prepTime", "cookTime", "servings", "ingredients", "steps", "createdAt", "updatedAt"} {
		assert.NotContains(t, keys, key)
	}
}

func TestDetailedProjectionAlwaysCarriesCollections(t *testing.T) {
	// No ingredients, steps, or tags on the stored recipe.
	svc := newRecipeService(t, types.Recipe{ID: "1", UserID: "1", Title: "Bare", Servings: 1})

	view, err := svc.GetByID(context.Background(), "1", types.DetailDetailed)
	require.NoError(t, err)
	require.NotNil(t, view)

	keys := viewKeys(t, *view)
	assert.Equal(t, "[]", string(keys["ingredients"]))
	assert.Equal(t, "[]", string(keys["steps"]))
	assert.Equal(t, "[]", string(keys["tags"]))
	assert.Contains(t, keys, "prepTime")
	assert.Contains(t, keys, "cookTime")
	assert.Contains(t, keys, "servings")
	assert.Contains(t, keys, "createdAt")
	assert.Contains(t, keys, "updatedAt")
}

func TestGetByIDUnknown(t *testing.T) {
	svc := newRecipeService(t)

	view, err := svc.GetByID(context.Background(), "missing", types.DetailDetailed)
	require.NoError(t, err)
	assert.Nil(t, view)

	_, err = svc.GetByID(context.Background(), "missing", "bogus")
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "detail_level", verr.Field)
}

func TestFormattingDoesNotMutateStoredState(t *testing.T) {
	recipe := sampleRecipe("1")
	recipe.Ingredients = []types.Ingredient{{ID: "i1", Name: "Salt", Amount: "1", Unit: "tsp"}}
	recipe.Steps = []types.Step{{ID: "s1", Instructions: "Season.", Ingredients: []string{"i1"}}}
	svc := newRecipeService(t, recipe)
	ctx := context.Background()

	first, err := svc.GetByID(ctx, "1", types.DetailDetailed)
	require.NoError(t, err)
	(*first.Ingredients)[0].Name = "Pepper"
	first.Tags[0] = "changed"

	second, err := svc.GetByID(ctx, "1", types.DetailDetailed)
	require.NoError(t, err)
	assert.Equal(t, "Salt", (*second.Ingredients)[0].Name)
	assert.Equal(t, "tag-1", second.Tags[0])
}

func TestCreateUpdateDelete(t *testing.T) {
	svc := newRecipeService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, types.Recipe{UserID: "1", Title: "New", Servings: 3})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.Servings)
	assert.Equal(t, 3, *created.Servings)

	title := "Renamed"
	updated, err := svc.Update(ctx, created.ID, types.RecipeUpdate{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Renamed", updated.Title)

	missing, err := svc.Update(ctx, "nope", types.RecipeUpdate{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, missing)

	removed, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
