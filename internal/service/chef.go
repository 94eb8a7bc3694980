package service

import (
	"context"
	"fmt"
	"log"

	"github.com/smartchef/ai-service/internal/types"
)

const noIngredientsMessage = "No ingredients were found in the image."
const suggestionUnavailableMessage = "Recipe suggestions are ready, but the cooking assistant is unavailable right now."

// ChefService orchestrates the full pipeline: detect ingredients in an
// image, retrieve matching recipes and generate cooking advice. Detection
// failure fails the request; retrieval and advice degrade independently so
// the caller still gets whatever stages succeeded.
type ChefService struct {
	detector  IDetector
	retrieval IRetrievalService
	llm       ILLMService
	images    *ImageService
}

// NewChefService creates a new ChefService instance
func NewChefService(detector IDetector, retrieval IRetrievalService, llm ILLMService, images *ImageService) *ChefService {
	return &ChefService{
		detector:  detector,
		retrieval: retrieval,
		llm:       llm,
		images:    images,
	}
}

// Suggest runs detect -> retrieve -> advise for one uploaded image.
func (s *ChefService) Suggest(ctx context.Context, image []byte, sessionID string) (*types.SuggestResponse, error) {
	result := &types.SuggestResponse{
		SessionID:           sessionID,
		DetectedIngredients: []string{},
		Recipes:             []types.RankedRecipe{},
	}

	ingredients, err := s.detector.Detect(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("ingredient detection failed: %w", err)
	}
	result.DetectedIngredients = ingredients
	log.Printf("[ChefService] Detected ingredients: %v", ingredients)

	if s.images != nil {
		if _, err := s.images.ArchiveUpload(ctx, image, sessionID); err != nil {
			log.Printf("[ChefService] Image archive failed: %v", err)
		}
	}

	if len(ingredients) == 0 {
		result.Suggestion = noIngredientsMessage
		return result, nil
	}

	recipes, err := s.retrieval.Retrieve(ctx, ingredients, DefaultTopK)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		log.Printf("[ChefService] Recipe retrieval failed: %v", err)
	} else {
		result.Recipes = recipes
		log.Printf("[ChefService] Retrieved %d recipes", len(recipes))
	}

	suggestion, err := s.llm.GenerateSuggestion(ctx, sessionID, ingredients, result.Recipes)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		log.Printf("[ChefService] Suggestion generation failed: %v", err)
		result.Suggestion = suggestionUnavailableMessage
		return result, nil
	}
	result.Suggestion = suggestion

	return result, nil
}

// Chat continues the conversation for an existing session.
func (s *ChefService) Chat(ctx context.Context, sessionID, message string) (string, error) {
	return s.llm.Chat(ctx, sessionID, message)
}
