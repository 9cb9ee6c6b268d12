package types

// CredentialsRequest is the body of both signup and login
type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by signup and login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RecipeRequest is the body of recipe create and update. Update replaces the
// whole recipe, ingredients included; there is no partial patch.
type RecipeRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Ingredients []string `json:"ingredients"`
}
