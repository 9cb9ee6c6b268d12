package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/testhelpers"
)

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDB(t)

	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "8080",
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
	}

	server := New(cfg, db, nil, nil)
	assert.NotNil(t, server)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	server.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDB(t)

	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "8080",
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
	}
	server := New(cfg, db, nil, nil)

	// Public list endpoint works without a token.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/recipes", nil)
	server.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Mutations require authentication.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/recipes", nil)
	server.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
