package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	engine, _ := setupAPI(t)

	body := `{"username": "newuser", "email": "new@example.com", "password": "longenough1"}`
	w := doRequest(engine, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 86400, resp.ExpiresIn)

	// The fresh token works against protected routes.
	list := doRequest(engine, http.MethodGet, "/api/v1/recipes", resp.AccessToken, "")
	assert.Equal(t, http.StatusOK, list.Code)

	// Duplicate registration conflicts.
	w = doRequest(engine, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	engine, _ := setupAPI(t)

	cases := []string{
		`{"username": "u", "email": "not-an-email", "password": "longenough1"}`,
		`{"username": "u", "email": "u@example.com", "password": "short"}`,
		`{"email": "u@example.com", "password": "longenough1"}`,
	}
	for _, body := range cases {
		w := doRequest(engine, http.MethodPost, "/api/v1/auth/register", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestLoginEndpoint(t *testing.T) {
	engine, _ := setupAPI(t)

	register := `{"username": "loginuser", "email": "login@example.com", "password": "longenough1"}`
	w := doRequest(engine, http.MethodPost, "/api/v1/auth/register", "", register)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(engine, http.MethodPost, "/api/v1/auth/login", "", `{"email": "login@example.com", "password": "longenough1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)

	w = doRequest(engine, http.MethodPost, "/api/v1/auth/login", "", `{"email": "login@example.com", "password": "wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(engine, http.MethodPost, "/api/v1/auth/login", "", `{"email": "nobody@example.com", "password": "longenough1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
