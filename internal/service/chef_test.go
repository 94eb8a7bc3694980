package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartchef/ai-service/internal/types"
)

type mockDetector struct {
	mock.Mock
}

func (m *mockDetector) Detect(ctx context.Context, image []byte) ([]string, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockRetrieval struct {
	mock.Mock
}

func (m *mockRetrieval) Retrieve(ctx context.Context, ingredients []string, topK int) ([]types.RankedRecipe, error) {
	args := m.Called(ctx, ingredients, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RankedRecipe), args.Error(1)
}

type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) GenerateSuggestion(ctx context.Context, sessionID string, ingredients []string, recipes []types.RankedRecipe) (string, error) {
	args := m.Called(ctx, sessionID, ingredients, recipes)
	return args.String(0), args.Error(1)
}

func (m *mockLLM) Chat(ctx context.Context, sessionID, message string) (string, error) {
	args := m.Called(ctx, sessionID, message)
	return args.String(0), args.Error(1)
}

func TestChefService_Suggest(t *testing.T) {
	detector := new(mockDetector)
	retrieval := new(mockRetrieval)
	llm := new(mockLLM)
	svc := NewChefService(detector, retrieval, llm, nil)

	image := []byte("jpeg-bytes")
	recipes := []types.RankedRecipe{{ID: "ga-kho-gung", Name: "Gà kho gừng", MatchScore: 0.67}}

	detector.On("Detect", mock.Anything, image).Return([]string{"gà", "gừng"}, nil)
	retrieval.On("Retrieve", mock.Anything, []string{"gà", "gừng"}, DefaultTopK).Return(recipes, nil)
	llm.On("GenerateSuggestion", mock.Anything, "s1", []string{"gà", "gừng"}, recipes).Return("Nấu gà kho gừng.", nil)

	result, err := svc.Suggest(context.Background(), image, "s1")

	require.NoError(t, err)
	assert.Equal(t, []string{"gà", "gừng"}, result.DetectedIngredients)
	assert.Equal(t, recipes, result.Recipes)
	assert.Equal(t, "Nấu gà kho gừng.", result.Suggestion)
	assert.Equal(t, "s1", result.SessionID)
}

func TestChefService_Suggest_DetectionFails(t *testing.T) {
	detector := new(mockDetector)
	retrieval := new(mockRetrieval)
	llm := new(mockLLM)
	svc := NewChefService(detector, retrieval, llm, nil)

	detector.On("Detect", mock.Anything, mock.Anything).Return(nil, errors.New("model offline"))

	_, err := svc.Suggest(context.Background(), []byte("jpeg-bytes"), "s1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingredient detection failed")
	retrieval.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything, mock.Anything)
}

func TestChefService_Suggest_NoIngredients(t *testing.T) {
	detector := new(mockDetector)
	retrieval := new(mockRetrieval)
	llm := new(mockLLM)
	svc := NewChefService(detector, retrieval, llm, nil)

	detector.On("Detect", mock.Anything, mock.Anything).Return([]string{}, nil)

	result, err := svc.Suggest(context.Background(), []byte("jpeg-bytes"), "s1")

	require.NoError(t, err)
	assert.Empty(t, result.Recipes)
	assert.Equal(t, noIngredientsMessage, result.Suggestion)
	retrieval.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything, mock.Anything)
	llm.AssertNotCalled(t, "GenerateSuggestion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChefService_Suggest_RetrievalFailureDegrades(t *testing.T) {
	detector := new(mockDetector)
	retrieval := new(mockRetrieval)
	llm := new(mockLLM)
	svc := NewChefService(detector, retrieval, llm, nil)

	detector.On("Detect", mock.Anything, mock.Anything).Return([]string{"gà"}, nil)
	retrieval.On("Retrieve", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &RetrievalError{Stage: "vector search", Err: errors.New("index down")})
	llm.On("GenerateSuggestion", mock.Anything, "s1", []string{"gà"}, []types.RankedRecipe{}).
		Return("Thử món gà luộc.", nil)

	result, err := svc.Suggest(context.Background(), []byte("jpeg-bytes"), "s1")

	require.NoError(t, err)
	assert.Empty(t, result.Recipes)
	assert.Equal(t, "Thử món gà luộc.", result.Suggestion)
}

func TestChefService_Suggest_LLMFailureDegrades(t *testing.T) {
	detector := new(mockDetector)
	retrieval := new(mockRetrieval)
	llm := new(mockLLM)
	svc := NewChefService(detector, retrieval, llm, nil)

	recipes := []types.RankedRecipe{{ID: "ga-kho-gung", Name: "Gà kho gừng", MatchScore: 0.67}}
	detector.On("Detect", mock.Anything, mock.Anything).Return([]string{"gà"}, nil)
	retrieval.On("Retrieve", mock.Anything, mock.Anything, mock.Anything).Return(recipes, nil)
	llm.On("GenerateSuggestion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("rate limited"))

	result, err := svc.Suggest(context.Background(), []byte("jpeg-bytes"), "s1")

	require.NoError(t, err)
	assert.Equal(t, recipes, result.Recipes)
	assert.Equal(t, suggestionUnavailableMessage, result.Suggestion)
}

func TestChefService_Chat(t *testing.T) {
	detector := new(mockDetector)
	retrieval := new(mockRetrieval)
	llm := new(mockLLM)
	svc := NewChefService(detector, retrieval, llm, nil)

	llm.On("Chat", mock.Anything, "s1", "Nấu mất bao lâu?").Return("Khoảng 45 phút.", nil)

	reply, err := svc.Chat(context.Background(), "s1", "Nấu mất bao lâu?")

	require.NoError(t, err)
	assert.Equal(t, "Khoảng 45 phút.", reply)
}
