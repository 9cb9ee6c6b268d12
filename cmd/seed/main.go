// Command seed populates the database with demo users and recipes.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

type seedRecipe struct {
	Title       string
	Description string
	Ingredients []string
	Owner       string
}

var seedUsers = []string{"alice", "bob"}

var seedRecipes = []seedRecipe{
	{
		Title:       "Tomato Pasta",
		Description: "Quick tomato pasta with garlic and basil.",
		Ingredients: []string{"tomato", "pasta", "garlic", "basil", "olive oil"},
		Owner:       "alice",
	},
	{
		Title:       "Avocado Toast",
		Description: "Simple avocado toast with lemon and pepper.",
		Ingredients: []string{"avocado", "bread", "lemon", "salt", "pepper"},
		Owner:       "bob",
	},
	{
		Title:       "Chicken Stir Fry",
		Description: "Vegetables and chicken stir-fried with soy sauce.",
		Ingredients: []string{"chicken", "soy sauce", "broccoli", "carrot", "garlic"},
		Owner:       "alice",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	ctx := context.Background()
	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	recipeService := service.NewRecipeService(db)

	users := make(map[string]*models.User)
	for _, username := range seedUsers {
		var existing models.User
		err := db.Where("username = ?", username).First(&existing).Error
		if err == nil {
			users[username] = &existing
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).Fatal("failed to look up seed user")
		}

		user, _, err := authService.Signup(ctx, username, "password123")
		if err != nil {
			logrus.WithError(err).WithField("username", username).Fatal("failed to seed user")
		}
		users[username] = user
	}

	for _, r := range seedRecipes {
		var count int64
		if err := db.Model(&models.Recipe{}).Where("title = ?", r.Title).Count(&count).Error; err != nil {
			logrus.WithError(err).Fatal("failed to check existing recipe")
		}
		if count > 0 {
			continue
		}

		owner := users[r.Owner]
		_, err := recipeService.CreateRecipe(ctx, owner.ID, &types.RecipeRequest{
			Title:       r.Title,
			Description: r.Description,
			Ingredients: r.Ingredients,
		})
		if err != nil {
			logrus.WithError(err).WithField("title", r.Title).Fatal("failed to seed recipe")
		}
		// Spread creation times so listings page predictably.
		time.Sleep(10 * time.Millisecond)
	}

	logrus.Info("seeded sample data")
}
