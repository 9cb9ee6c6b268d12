package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// AuthHandler exposes signup and login
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes wires the auth endpoints. The optional middlewares (rate
// limiting) run before each handler.
func (h *AuthHandler) RegisterRoutes(router gin.IRouter, mw ...gin.HandlerFunc) {
	router.POST("/signup", append(mw, h.Signup)...)
	router.POST("/login", append(mw, h.Login)...)
}

// Signup creates an account and returns an access token
func (h *AuthHandler) Signup(c *gin.Context) {
	var req types.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	_, token, err := h.authService.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Login verifies credentials and returns an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	_, token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
