package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// RecipeHandler exposes recipe CRUD, ingredient search and image upload
type RecipeHandler struct {
	recipeService *service.RecipeService
	imageService  *service.ImageService
	validator     middleware.TokenValidator
}

// NewRecipeHandler creates a new RecipeHandler instance. imageService may be
// nil when no S3 bucket is configured; the upload endpoint then reports the
// feature unavailable.
func NewRecipeHandler(recipeService *service.RecipeService, imageService *service.ImageService, validator middleware.TokenValidator) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		imageService:  imageService,
		validator:     validator,
	}
}

// RegisterRoutes wires the recipe endpoints. Reads are public; mutations
// require a valid bearer token.
func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	auth := middleware.AuthMiddleware(h.validator)

	router.GET("/recipes", h.ListRecipes)
	router.GET("/recipes/:id", h.GetRecipe)
	router.GET("/search", h.SearchRecipes)
	router.POST("/recipes", auth, h.CreateRecipe)
	router.PUT("/recipes/:id", auth, h.UpdateRecipe)
	router.DELETE("/recipes/:id", auth, h.DeleteRecipe)
	router.POST("/recipes/:id/image", auth, h.UploadRecipeImage)
}

// currentUserID returns the authenticated subject set by the auth middleware
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}

func recipeID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// ListRecipes returns a page of recipes in creation order
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns a single recipe with its ingredients
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// SearchRecipes returns recipes containing all comma-separated ingredients
// in the q parameter
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	recipes, err := h.recipeService.SearchRecipes(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// CreateRecipe creates a recipe owned by the authenticated user
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe replaces an owned recipe wholesale
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := recipeID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe deletes an owned recipe and its ingredients
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := recipeID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadRecipeImage stores an uploaded image in S3 and records its URL on
// the recipe
func (h *RecipeHandler) UploadRecipeImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := recipeID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	// Check ownership before paying for the upload.
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := service.AuthorizeOwner(userID, recipe); err != nil {
		respondError(c, err)
		return
	}

	url, err := h.imageService.UploadRecipeImage(c.Request.Context(), id, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.recipeService.SetRecipeImage(c.Request.Context(), userID, id, url)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
