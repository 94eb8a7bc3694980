package types

// RankedRecipe is one entry of a retrieval result: the compact payload from
// the vector index, both ranking signals, and the detail fields joined from
// the recipe store. Detail fields stay empty when the store has no record
// for the id.
type RankedRecipe struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	MatchScore          float64  `json:"match_score"`
	SemanticScore       float64  `json:"semantic_score"`
	DetailedIngredients []string `json:"detailed_ingredients"`
	Seasonings          []string `json:"seasonings"`
	Steps               []string `json:"steps"`
	CookTime            string   `json:"cook_time"`
}

// SearchHit is one nearest neighbor returned by the vector index, best
// match first. Score is cosine similarity between query and point.
type SearchHit struct {
	RecipeID          string
	Name              string
	SearchIngredients string
	Score             float64
}

// Detection is a single raw object detection from the vision model.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}
