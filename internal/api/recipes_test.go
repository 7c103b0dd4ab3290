package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheOneTrueGod/lomithBackend/internal/api"
	"github.com/TheOneTrueGod/lomithBackend/internal/repository"
	"github.com/TheOneTrueGod/lomithBackend/internal/router"
	"github.com/TheOneTrueGod/lomithBackend/internal/service"
	"github.com/TheOneTrueGod/lomithBackend/internal/testhelpers"
	"github.com/TheOneTrueGod/lomithBackend/internal/types"
)

// setupAPI wires the full router against a seeded in-memory recipe
// store and returns it with a valid bearer token.
func setupAPI(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	authService := service.NewAuthService(db, "test-secret")
	integrationService := service.NewAIIntegrationService(db, "test-secret")
	recipeService := service.NewRecipeService(repository.NewSeededMemoryRecipeRepository())

	token, err := authService.Register(context.Background(), "tester", "tester@example.com", "hunter2hunter2")
	require.NoError(t, err)

	engine := router.SetupRouter(router.Handlers{
		Auth:        api.NewAuthHandler(authService),
		Recipes:     api.NewRecipeHandler(recipeService),
		Integration: api.NewAIIntegrationHandler(integrationService),
		Extract:     api.NewExtractHandler(service.NewExtractService(integrationService)),
	}, authService, []string{"http://localhost:5173"})

	return engine, token
}

func doRequest(engine *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestListRecipes(t *testing.T) {
	engine, token := setupAPI(t)

	w := doRequest(engine, http.MethodGet, "/api/v1/recipes", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes    []map[string]json.RawMessage `json:"recipes"`
		Pagination types.Pagination             `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Recipes, 3)
	assert.Equal(t, 3, resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
	assert.False(t, resp.Pagination.HasNext)

	// Default detail level is detailed.
	assert.Contains(t, resp.Recipes[0], "ingredients")
	assert.Contains(t, resp.Recipes[0], "steps")
}

func TestListRecipesSimple(t *testing.T) {
	engine, token := setupAPI(t)

	w := doRequest(engine, http.MethodGet, "/api/v1/recipes?detail_level=simple&page_size=1&page=2", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes    []map[string]json.RawMessage `json:"recipes"`
		Pagination types.Pagination             `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.NotContains(t, resp.Recipes[0], "ingredients")
	assert.NotContains(t, resp.Recipes[0], "steps")
	assert.NotContains(t, resp.Recipes[0], "prepTime")
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrevious)
}

func TestListRecipesValidation(t *testing.T) {
	engine, token := setupAPI(t)

	cases := []struct {
		query   string
		message string
	}{
		{"page=0", "page must be greater than 0"},
		{"page=-1", "page must be greater than 0"},
		{"page_size=0", "page_size must be greater than 0"},
		{"detail_level=everything", "detail_level must be 'simple' or 'detailed'"},
		{"page=abc", "Invalid parameter: page must be an integer"},
		{"page_size=xyz", "Invalid parameter: page_size must be an integer"},
	}
	for _, tc := range cases {
		w := doRequest(engine, http.MethodGet, "/api/v1/recipes?"+tc.query, token, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", tc.query)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.message, resp["error"], "query %q", tc.query)
	}
}

func TestListRecipesSearchAndUserFilter(t *testing.T) {
	engine, token := setupAPI(t)

	w := doRequest(engine, http.MethodGet, "/api/v1/recipes?user_id=1&search=Classic&page_size=1", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.RecipeList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Classic Spaghetti Carbonara", resp.Recipes[0].Title)
	assert.Equal(t, "1", resp.Recipes[0].UserID)
	assert.Equal(t, 2, resp.Pagination.Total)
}

func TestGetRecipe(t *testing.T) {
	engine, token := setupAPI(t)

	w := doRequest(engine, http.MethodGet, "/api/v1/recipes/1", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var view types.RecipeView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "1", view.ID)
	assert.Equal(t, "Classic Spaghetti Carbonara", view.Title)
	require.NotNil(t, view.Ingredients)
	assert.NotEmpty(t, *view.Ingredients)

	w = doRequest(engine, http.MethodGet, "/api/v1/recipes/999", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe not found")
}

func TestCreateRecipe(t *testing.T) {
	engine, token := setupAPI(t)

	body := `{
		"title": "Test Soup",
		"description": "Warm.",
		"servings": 4,
		"prepTime": 5,
		"cookTime": 30,
		"ingredients": [{"id": "x", "name": "Water", "amount": "1", "unit": "l"}],
		"steps": [{"instructions": "Simmer.", "ingredients": ["x"]}],
		"tags": ["soup", "soup"]
	}`
	w := doRequest(engine, http.MethodPost, "/api/v1/recipes", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var view types.RecipeView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Test Soup", view.Title)
	// The owner defaults to the authenticated user.
	assert.NotEmpty(t, view.UserID)
	assert.Equal(t, []string{"soup"}, view.Tags)

	// Missing required fields are rejected by binding.
	w = doRequest(engine, http.MethodPost, "/api/v1/recipes", token, `{"description": "no title"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRecipe(t *testing.T) {
	engine, token := setupAPI(t)

	w := doRequest(engine, http.MethodPut, "/api/v1/recipes/2", token, `{"title": "Fancy Avocado Toast"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var view types.RecipeView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Fancy Avocado Toast", view.Title)
	// Fields not named in the payload survive.
	require.NotNil(t, view.Ingredients)
	assert.NotEmpty(t, *view.Ingredients)

	w = doRequest(engine, http.MethodPut, "/api/v1/recipes/999", token, `{"title": "Ghost"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRecipe(t *testing.T) {
	engine, token := setupAPI(t)

	w := doRequest(engine, http.MethodDelete, "/api/v1/recipes/3", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe deleted successfully")

	w = doRequest(engine, http.MethodDelete, "/api/v1/recipes/3", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(engine, http.MethodGet, "/api/v1/recipes/3", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipesRequireAuth(t *testing.T) {
	engine, _ := setupAPI(t)

	w := doRequest(engine, http.MethodGet, "/api/v1/recipes", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(engine, http.MethodGet, "/api/v1/recipes", "garbage-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthEndpointIsPublic(t *testing.T) {
	engine, _ := setupAPI(t)

	w := doRequest(engine, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
