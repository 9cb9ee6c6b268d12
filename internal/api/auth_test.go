package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	env := setupTestRouter(t)

	w := performRequest(env.Router, "POST", "/signup", map[string]string{
		"username": "alice",
		"password": "password123",
	}, "")

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["access_token"])
	assert.Equal(t, "bearer", resp["token_type"])
}

func TestSignupDuplicateUsername(t *testing.T) {
	env := setupTestRouter(t)
	signupUser(t, env, "alice", "password123")

	w := performRequest(env.Router, "POST", "/signup", map[string]string{
		"username": "alice",
		"password": "different",
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "taken")
}

func TestSignupMissingFields(t *testing.T) {
	env := setupTestRouter(t)

	for _, body := range []map[string]string{
		{"username": "alice"},
		{"password": "password123"},
		{},
	} {
		w := performRequest(env.Router, "POST", "/signup", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestLogin(t *testing.T) {
	env := setupTestRouter(t)
	signupUser(t, env, "bob", "hunter22")

	w := performRequest(env.Router, "POST", "/login", map[string]string{
		"username": "bob",
		"password": "hunter22",
	}, "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["access_token"])
}

func TestLoginBadCredentials(t *testing.T) {
	env := setupTestRouter(t)
	signupUser(t, env, "bob", "hunter22")

	w := performRequest(env.Router, "POST", "/login", map[string]string{
		"username": "bob",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(env.Router, "POST", "/login", map[string]string{
		"username": "nobody",
		"password": "hunter22",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
