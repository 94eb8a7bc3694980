package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/smartchef/ai-service/config"
	"github.com/smartchef/ai-service/internal/database"
	"github.com/smartchef/ai-service/internal/model"
	"github.com/smartchef/ai-service/internal/service"
)

// seedRecipe mirrors the dataset file layout, which uses snake_case keys and
// a plain string list for every ingredient field.
type seedRecipe struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	SearchIngredients   string   `json:"search_ingredients"`
	DetailedIngredients []string `json:"detailed_ingredients"`
	Seasonings          []string `json:"seasonings"`
	Steps               []string `json:"steps"`
	CookTime            string   `json:"cook_time"`
}

func main() {
	datasetPath := flag.String("dataset", "data/recipes.json", "path to the recipe dataset JSON file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	data, err := os.ReadFile(*datasetPath)
	if err != nil {
		log.Fatalf("Failed to read dataset %s: %v", *datasetPath, err)
	}

	var seeds []seedRecipe
	if err := json.Unmarshal(data, &seeds); err != nil {
		log.Fatalf("Failed to parse dataset %s: %v", *datasetPath, err)
	}

	recipeService := service.NewRecipeService(db, service.NewEmbeddingService())

	ctx := context.Background()
	seeded := 0
	for _, seed := range seeds {
		recipe := &model.Recipe{
			ID:                  seed.ID,
			Name:                seed.Name,
			Description:         seed.Description,
			SearchIngredients:   seed.SearchIngredients,
			DetailedIngredients: seed.DetailedIngredients,
			Seasonings:          seed.Seasonings,
			Steps:               seed.Steps,
			CookTime:            seed.CookTime,
		}
		if err := recipeService.Upsert(ctx, recipe); err != nil {
			log.Printf("Failed to seed recipe %s: %v", seed.ID, err)
			continue
		}
		seeded++
		log.Printf("Seeded recipe %s (%s)", recipe.ID, recipe.Name)
	}

	log.Printf("Seeding complete: %d/%d recipes", seeded, len(seeds))
}
