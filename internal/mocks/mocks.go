package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/smartchef/ai-service/internal/model"
	"github.com/smartchef/ai-service/internal/types"
)

// MockRecipeService is a mock implementation of the recipe corpus service
type MockRecipeService struct {
	mock.Mock
}

// Get mocks the Get method
func (m *MockRecipeService) Get(ctx context.Context, id string) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// List mocks the List method
func (m *MockRecipeService) List(ctx context.Context) ([]*model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

// Upsert mocks the Upsert method
func (m *MockRecipeService) Upsert(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

// Delete mocks the Delete method
func (m *MockRecipeService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRetrievalService is a mock implementation of the ranking engine
type MockRetrievalService struct {
	mock.Mock
}

// Retrieve mocks the Retrieve method
func (m *MockRetrievalService) Retrieve(ctx context.Context, ingredients []string, topK int) ([]types.RankedRecipe, error) {
	args := m.Called(ctx, ingredients, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RankedRecipe), args.Error(1)
}

// MockChefService is a mock implementation of the suggestion pipeline
type MockChefService struct {
	mock.Mock
}

// Suggest mocks the Suggest method
func (m *MockChefService) Suggest(ctx context.Context, image []byte, sessionID string) (*types.SuggestResponse, error) {
	args := m.Called(ctx, image, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SuggestResponse), args.Error(1)
}

// Chat mocks the Chat method
func (m *MockChefService) Chat(ctx context.Context, sessionID, message string) (string, error) {
	args := m.Called(ctx, sessionID, message)
	return args.String(0), args.Error(1)
}
