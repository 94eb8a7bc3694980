package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/smartchef/ai-service/internal/model"
)

// RunMigrations prepares the schema: the pgvector extension, both recipe
// tables and the cosine-distance index over recipe points.
func RunMigrations(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to create vector extension: %w", err)
		}
	}

	if err := db.AutoMigrate(&model.Recipe{}, &model.RecipePoint{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(
			`CREATE INDEX IF NOT EXISTS idx_recipe_points_embedding
			 ON recipe_points USING hnsw (embedding vector_cosine_ops)`,
		).Error; err != nil {
			return fmt.Errorf("failed to create embedding index: %w", err)
		}
	}

	log.Printf("Migrations applied")
	return nil
}
