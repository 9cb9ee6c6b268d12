package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

const (
	// DefaultListLimit is applied when no limit query parameter is given
	DefaultListLimit = 100
	// MaxListLimit caps the page size a client may request
	MaxListLimit = 100
)

// RecipeService handles recipe CRUD and ingredient search
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// AuthorizeOwner authorizes a mutation: only the recipe's owner may proceed.
func AuthorizeOwner(subject uuid.UUID, recipe *models.Recipe) error {
	if recipe.OwnerID != subject {
		return ErrPermissionDenied
	}
	return nil
}

// normalizeIngredients trims and filters the submitted ingredient names.
// The trimmed form is what gets stored; comparison happens lowercased at
// search time.
func normalizeIngredients(names []string) ([]string, error) {
	var out []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, &ValidationError{Field: "ingredients", Message: "at least one ingredient is required"}
	}
	return out, nil
}

func ingredientRows(recipeID uuid.UUID, names []string) []models.Ingredient {
	rows := make([]models.Ingredient, len(names))
	for i, name := range names {
		rows[i] = models.Ingredient{RecipeID: recipeID, Name: name, Position: i}
	}
	return rows
}

func preloadIngredients(db *gorm.DB) *gorm.DB {
	return db.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// CreateRecipe persists a recipe and its ingredient rows in one transaction.
// A recipe without ingredients is rejected before anything is written.
func (s *RecipeService) CreateRecipe(ctx context.Context, ownerID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title", Message: "must not be empty"}
	}
	names, err := normalizeIngredients(req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		OwnerID:     ownerID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Ingredients").Create(&recipe).Error; err != nil {
			return err
		}
		rows := ingredientRows(recipe.ID, names)
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		recipe.Ingredients = rows
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating recipe: %w", err)
	}

	logrus.WithFields(logrus.Fields{"recipe_id": recipe.ID, "owner_id": ownerID}).Info("recipe created")
	return &recipe, nil
}

// GetRecipe returns a fully populated recipe aggregate
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := preloadIngredients(s.db.WithContext(ctx)).First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching recipe: %w", err)
	}
	return &recipe, nil
}

// ListRecipes pages through recipes in creation order. skip below zero is
// treated as zero; limit outside (0, MaxListLimit] falls back to the bounds.
func (s *RecipeService) ListRecipes(ctx context.Context, skip, limit int) ([]models.Recipe, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var recipes []models.Recipe
	err := preloadIngredients(s.db.WithContext(ctx)).
		Order("created_at ASC, id ASC").
		Offset(skip).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	return recipes, nil
}

// UpdateRecipe replaces a recipe wholesale: title, description, image URL and
// the entire ingredient list, all in one transaction. Only the owner may
// update; a failed guard leaves the recipe untouched.
func (s *RecipeService) UpdateRecipe(ctx context.Context, subject uuid.UUID, id uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title", Message: "must not be empty"}
	}
	names, err := normalizeIngredients(req.Ingredients)
	if err != nil {
		return nil, err
	}

	var recipe models.Recipe
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := AuthorizeOwner(subject, &recipe); err != nil {
			return err
		}

		recipe.Title = strings.TrimSpace(req.Title)
		recipe.Description = req.Description
		recipe.ImageURL = req.ImageURL
		if err := tx.Omit("Ingredients").Save(&recipe).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		rows := ingredientRows(recipe.ID, names)
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		recipe.Ingredients = rows
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPermissionDenied) {
			return nil, err
		}
		return nil, fmt.Errorf("updating recipe: %w", err)
	}

	return &recipe, nil
}

// DeleteRecipe removes a recipe and all its ingredient rows in one
// transaction. Only the owner may delete.
func (s *RecipeService) DeleteRecipe(ctx context.Context, subject uuid.UUID, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := AuthorizeOwner(subject, &recipe); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPermissionDenied) {
			return err
		}
		return fmt.Errorf("deleting recipe: %w", err)
	}

	logrus.WithField("recipe_id", id).Info("recipe deleted")
	return nil
}

// SearchRecipes returns recipes whose ingredient set contains every term in
// the comma-separated query, compared case-insensitively. An empty query
// matches nothing. Results come back in creation order.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string) ([]models.Recipe, error) {
	terms := ParseSearchTerms(query)
	if len(terms) == 0 {
		return []models.Recipe{}, nil
	}

	var recipes []models.Recipe
	err := preloadIngredients(s.db.WithContext(ctx)).
		Order("created_at ASC, id ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("searching recipes: %w", err)
	}

	matched := make([]models.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		if MatchesIngredients(terms, recipe.IngredientNames()) {
			matched = append(matched, recipe)
		}
	}
	return matched, nil
}

// SetRecipeImage stores an image URL on an owned recipe
func (s *RecipeService) SetRecipeImage(ctx context.Context, subject uuid.UUID, id uuid.UUID, imageURL string) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwner(subject, recipe); err != nil {
		return nil, err
	}

	recipe.ImageURL = imageURL
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Update("image_url", imageURL).Error; err != nil {
		return nil, fmt.Errorf("updating recipe image: %w", err)
	}
	return recipe, nil
}
