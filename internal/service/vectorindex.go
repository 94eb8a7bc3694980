package service

import (
	"context"
	"fmt"

	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/smartchef/ai-service/internal/types"
)

// VectorIndexService runs nearest-neighbor queries over the recipe_points
// table using the pgvector cosine-distance operator.
type VectorIndexService struct {
	db *gorm.DB
}

// NewVectorIndexService creates a new VectorIndexService instance
func NewVectorIndexService(db *gorm.DB) *VectorIndexService {
	return &VectorIndexService{db: db}
}

// Search returns up to limit nearest neighbors by cosine similarity, best
// match first. An empty index yields an empty slice.
func (s *VectorIndexService) Search(ctx context.Context, vector []float32, limit int) ([]types.SearchHit, error) {
	if limit <= 0 {
		return []types.SearchHit{}, nil
	}

	vec := pgvector.NewVector(vector)
	rows := []struct {
		RecipeID          string
		Name              string
		SearchIngredients string
		Score             float64
	}{}

	// <=> is cosine distance; similarity = 1 - distance.
	err := s.db.WithContext(ctx).Raw(
		`SELECT recipe_id, name, search_ingredients, 1 - (embedding <=> ?) AS score
		 FROM recipe_points
		 ORDER BY embedding <=> ?
		 LIMIT ?`,
		vec, vec, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	hits := make([]types.SearchHit, len(rows))
	for i, row := range rows {
		hits[i] = types.SearchHit{
			RecipeID:          row.RecipeID,
			Name:              row.Name,
			SearchIngredients: row.SearchIngredients,
			Score:             row.Score,
		}
	}
	return hits, nil
}
