package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrationLifecycle(t *testing.T) {
	engine, token := setupAPI(t)

	// Provider detected from the key prefix.
	w := doRequest(engine, http.MethodPost, "/api/v1/ai/integrations", token,
		`{"api_key": "sk-ant-api03-secret-tail"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "anthropic", created["provider"])
	assert.Equal(t, "****tail", created["api_key_masked"])
	// The raw key never appears in a response.
	assert.NotContains(t, w.Body.String(), "sk-ant-api03-secret-tail")

	// Unknown provider and undetectable key.
	w = doRequest(engine, http.MethodPost, "/api/v1/ai/integrations", token,
		`{"api_key": "mystery-key"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Posting the same provider again replaces instead of creating.
	w = doRequest(engine, http.MethodPost, "/api/v1/ai/integrations", token,
		`{"api_key": "sk-ant-api03-other-key1", "provider": "anthropic"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	// List shows exactly one integration.
	w = doRequest(engine, http.MethodGet, "/api/v1/ai/integrations", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Integrations []map[string]interface{} `json:"integrations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Integrations, 1)

	// Partial update flips the active flag only.
	w = doRequest(engine, http.MethodPut, "/api/v1/ai/integrations/anthropic", token,
		`{"is_active": false}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, false, updated["is_active"])
	assert.Equal(t, "****key1", updated["api_key_masked"])

	// Delete, then the provider is gone.
	w = doRequest(engine, http.MethodDelete, "/api/v1/ai/integrations/anthropic", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(engine, http.MethodGet, "/api/v1/ai/integrations/anthropic", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doRequest(engine, http.MethodDelete, "/api/v1/ai/integrations/anthropic", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExtractEndpointErrors(t *testing.T) {
	engine, token := setupAPI(t)

	// No integration configured yet.
	w := doRequest(engine, http.MethodPost, "/api/v1/ai/extract-recipe", token,
		`{"url": "https://example.com/recipe"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no active AI integration")

	// Malformed URL.
	w = doRequest(engine, http.MethodPost, "/api/v1/ai/extract-recipe", token,
		`{"url": "not a url"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing URL fails binding.
	w = doRequest(engine, http.MethodPost, "/api/v1/ai/extract-recipe", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
