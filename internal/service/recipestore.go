package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/smartchef/ai-service/internal/model"
)

// RecipeService handles recipe corpus operations: the durable detail store
// consumed by ranking plus the upsert path that keeps the vector index in
// step with it.
type RecipeService struct {
	db       *gorm.DB
	embedder IEmbedder
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, embedder IEmbedder) *RecipeService {
	return &RecipeService{
		db:       db,
		embedder: embedder,
	}
}

// GetByIDs fetches detail records for the given ids in a single batched
// lookup. Ids without a record are simply absent from the result map.
func (s *RecipeService) GetByIDs(ctx context.Context, ids []string) (map[string]*model.Recipe, error) {
	result := make(map[string]*model.Recipe, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recipes by ids: %w", err)
	}

	for i := range recipes {
		result[recipes[i].ID] = &recipes[i]
	}
	return result, nil
}

// Get retrieves a recipe by id
func (s *RecipeService) Get(ctx context.Context, id string) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns all recipes in the corpus
func (s *RecipeService) List(ctx context.Context) ([]*model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Order("id").Find(&recipes).Error; err != nil {
		return nil, err
	}
	result := make([]*model.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// Upsert writes the full detail record and replaces the recipe's vector
// point with a freshly embedded one, in a single transaction. The
// search-ingredients column is normalized to the CSV contract before it is
// written anywhere.
func (s *RecipeService) Upsert(ctx context.Context, recipe *model.Recipe) error {
	if recipe.ID == "" {
		return fmt.Errorf("recipe id is required")
	}
	recipe.SearchIngredients = NormalizeIngredientCSV(recipe.SearchIngredients)

	vec, err := s.embedder.Embed(ctx, PassagePrefix+buildPassageText(recipe))
	if err != nil {
		return fmt.Errorf("failed to embed recipe %s: %w", recipe.ID, err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return fmt.Errorf("failed to save recipe %s: %w", recipe.ID, err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipePoint{}).Error; err != nil {
			return fmt.Errorf("failed to clear vector point for %s: %w", recipe.ID, err)
		}
		point := model.RecipePoint{
			ID:                uuid.New(),
			RecipeID:          recipe.ID,
			Name:              recipe.Name,
			SearchIngredients: recipe.SearchIngredients,
			Embedding:         pgvector.NewVector(vec),
		}
		if err := tx.Create(&point).Error; err != nil {
			return fmt.Errorf("failed to create vector point for %s: %w", recipe.ID, err)
		}
		return nil
	})
}

// Delete removes a recipe's detail record and vector point
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Recipe{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("recipe_id = ?", id).Delete(&model.RecipePoint{}).Error
	})
}

// NormalizeIngredientCSV rewrites a comma-separated ingredient string to the
// contract shared by ingestion and ranking: lowercase tokens, single-space
// trimmed, joined by ", ". Empty tokens are dropped.
func NormalizeIngredientCSV(csv string) string {
	tokens := strings.Split(csv, ",")
	normalized := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			normalized = append(normalized, token)
		}
	}
	return strings.Join(normalized, ", ")
}

// buildPassageText assembles the document-side embedding input for a recipe.
func buildPassageText(recipe *model.Recipe) string {
	var b strings.Builder
	b.WriteString("Recipe: " + recipe.Name + ".")
	if recipe.Description != "" {
		b.WriteString(" Description: " + recipe.Description + ".")
	}
	b.WriteString(" Ingredients: " + recipe.SearchIngredients + ".")
	if len(recipe.Seasonings) > 0 {
		b.WriteString(" Seasonings: " + strings.Join(recipe.Seasonings, ", ") + ".")
	}
	return b.String()
}
