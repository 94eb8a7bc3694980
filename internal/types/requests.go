package types

// RetrieveRequest represents the request body for direct recipe retrieval
type RetrieveRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
	TopK        int      `json:"top_k"`
}

// RetrieveResponse represents the response body for direct recipe retrieval
type RetrieveResponse struct {
	Recipes []RankedRecipe `json:"recipes"`
}

// ChatRequest represents the request body for a follow-up chat turn
type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse represents the response body for a chat turn
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// SuggestResponse represents the response body of the predict endpoint
type SuggestResponse struct {
	SessionID           string         `json:"session_id"`
	DetectedIngredients []string       `json:"detected_ingredients"`
	Recipes             []RankedRecipe `json:"recipes"`
	Suggestion          string         `json:"suggestion"`
}

// UpsertRecipeRequest represents the request body for a full-record recipe upsert
type UpsertRecipeRequest struct {
	Name                string   `json:"name" binding:"required"`
	Description         string   `json:"description"`
	SearchIngredients   []string `json:"search_ingredients" binding:"required"`
	DetailedIngredients []string `json:"detailed_ingredients"`
	Seasonings          []string `json:"seasonings"`
	Steps               []string `json:"steps"`
	CookTime            string   `json:"cook_time"`
}
