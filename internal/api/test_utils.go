package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/testhelpers"
)

// testEnv bundles everything a handler test needs
type testEnv struct {
	Router      *gin.Engine
	DB          *gorm.DB
	AuthService *service.AuthService
}

// setupTestRouter builds a router backed by an in-memory database with all
// routes registered the way the server does it.
func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	authService := service.NewAuthService(db, "test-secret", time.Hour)
	recipeService := service.NewRecipeService(db)

	router := gin.New()
	router.Use(gin.Recovery())

	NewAuthHandler(authService).RegisterRoutes(router)
	NewRecipeHandler(recipeService, nil, authService).RegisterRoutes(router)

	return &testEnv{
		Router:      router,
		DB:          db,
		AuthService: authService,
	}
}

// performRequest makes an HTTP request against the test router. A non-empty
// token is sent as a bearer credential.
func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// signupUser registers a user through the API and returns the access token
func signupUser(t *testing.T, env *testEnv, username, password string) string {
	t.Helper()

	w := performRequest(env.Router, "POST", "/signup", map[string]string{
		"username": username,
		"password": password,
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("signup failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode signup response: %v", err)
	}
	return resp.AccessToken
}
