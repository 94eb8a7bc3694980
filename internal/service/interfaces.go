package service

import (
	"context"

	"github.com/smartchef/ai-service/internal/model"
	"github.com/smartchef/ai-service/internal/types"
)

// IEmbedder maps text to a fixed-dimension vector. Query and document sides
// use the same model with different input prefixes ("query: " / "passage: ").
type IEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// IVectorIndex performs nearest-neighbor search over recipe embeddings by
// cosine similarity, best match first. An empty index yields an empty slice,
// not an error.
type IVectorIndex interface {
	Search(ctx context.Context, vector []float32, limit int) ([]types.SearchHit, error)
}

// IRecipeStore is the durable detail store keyed by recipe id.
type IRecipeStore interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*model.Recipe, error)
}

// IDetector extracts normalized ingredient names from an image.
type IDetector interface {
	Detect(ctx context.Context, image []byte) ([]string, error)
}

// IRetrievalService is the ranking engine contract exposed to callers.
type IRetrievalService interface {
	Retrieve(ctx context.Context, ingredients []string, topK int) ([]types.RankedRecipe, error)
}

// ISessionStore keeps per-session conversation history.
type ISessionStore interface {
	History(ctx context.Context, sessionID string) ([]Message, error)
	Append(ctx context.Context, sessionID string, messages ...Message) error
}

// ILLMService generates cooking advice and handles follow-up conversation.
type ILLMService interface {
	GenerateSuggestion(ctx context.Context, sessionID string, ingredients []string, recipes []types.RankedRecipe) (string, error)
	Chat(ctx context.Context, sessionID, message string) (string, error)
}

// IChefService orchestrates the full detect -> retrieve -> advise pipeline.
type IChefService interface {
	Suggest(ctx context.Context, image []byte, sessionID string) (*types.SuggestResponse, error)
	Chat(ctx context.Context, sessionID, message string) (string, error)
}

// IRecipeService manages the recipe corpus (detail rows plus vector points).
type IRecipeService interface {
	Get(ctx context.Context, id string) (*model.Recipe, error)
	List(ctx context.Context) ([]*model.Recipe, error)
	Upsert(ctx context.Context, recipe *model.Recipe) error
	Delete(ctx context.Context, id string) error
}
