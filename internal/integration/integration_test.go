package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/smartchef/ai-service/internal/api"
	"github.com/smartchef/ai-service/internal/middleware"
	"github.com/smartchef/ai-service/internal/model"
	"github.com/smartchef/ai-service/internal/service"
	"github.com/smartchef/ai-service/internal/testhelpers"
	"github.com/smartchef/ai-service/internal/types"
)

// keywordDims maps ingredient keywords to embedding dimensions so the stub
// embedding server produces vectors whose cosine similarity tracks shared
// ingredients.
var keywordDims = map[string]int{
	"gà":       0,
	"gừng":     1,
	"nước mắm": 2,
	"bò":       3,
	"hành tây": 4,
	"nấm":      5,
	"cà rốt":   6,
}

func stubEmbeddingServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Inputs string `json:"inputs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		vec := make([]float32, service.EmbeddingDim)
		for keyword, dim := range keywordDims {
			if strings.Contains(req.Inputs, keyword) {
				vec[dim] = 1
			}
		}
		// keep vectors non-zero so cosine distance stays defined
		vec[service.EmbeddingDim-1] = 0.1
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([][]float32{vec}); err != nil {
			t.Errorf("failed to encode stub embedding: %v", err)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func setupRouter(recipeSvc *service.RecipeService, retrieval *service.RetrievalService, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := api.NewRecipeHandler(recipeSvc, retrieval)
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1, middleware.ServiceAuth(secret))
	return router
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	signed, err := jwt.New(jwt.SigningMethodHS256).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestIntegrationUpsertRetrieveDelete(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	ts := stubEmbeddingServer(t)
	t.Setenv("EMBEDDING_API_URL", ts.URL)

	embedder := service.NewEmbeddingService()
	recipeSvc := service.NewRecipeService(db, embedder)
	vectorIndex := service.NewVectorIndexService(db)
	retrieval := service.NewRetrievalService(embedder, vectorIndex, recipeSvc)

	const secret = "integration-secret"
	router := setupRouter(recipeSvc, retrieval, secret)
	token := signToken(t, secret)

	seed := []struct {
		id          string
		name        string
		ingredients []string
	}{
		{"ga-kho-gung", "Gà kho gừng", []string{"gà", "gừng", "nước mắm"}},
		{"canh-ga-nam", "Canh gà nấm", []string{"gà", "nấm", "cà rốt"}},
		{"bo-xao-hanh", "Bò xào hành tây", []string{"bò", "hành tây"}},
	}
	for _, s := range seed {
		body := map[string]interface{}{
			"name":               s.name,
			"search_ingredients": s.ingredients,
			"steps":              []string{"Sơ chế nguyên liệu", "Nấu chín"},
		}
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal upsert body: %v", err)
		}
		req := httptest.NewRequest(http.MethodPut, "/api/v1/recipes/"+s.id, bytes.NewBuffer(buf))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("upsert %s failed: %d %s", s.id, w.Code, w.Body.String())
		}
	}

	retrieve := func(ingredients []string, topK int) types.RetrieveResponse {
		body := fmt.Sprintf(`{"ingredients":["%s"],"top_k":%d}`, strings.Join(ingredients, `","`), topK)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/retrieve", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("retrieve failed: %d %s", w.Code, w.Body.String())
		}
		var resp types.RetrieveResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode retrieve response: %v", err)
		}
		return resp
	}

	resp := retrieve([]string{"gà", "gừng"}, 5)
	if len(resp.Recipes) != 2 {
		t.Fatalf("expected 2 ranked recipes, got %d", len(resp.Recipes))
	}
	if resp.Recipes[0].ID != "ga-kho-gung" || resp.Recipes[1].ID != "canh-ga-nam" {
		t.Fatalf("unexpected ranking order: %s, %s", resp.Recipes[0].ID, resp.Recipes[1].ID)
	}
	if resp.Recipes[0].MatchScore <= resp.Recipes[1].MatchScore {
		t.Fatalf("expected descending match scores: %f, %f", resp.Recipes[0].MatchScore, resp.Recipes[1].MatchScore)
	}
	if len(resp.Recipes[0].Steps) == 0 {
		t.Fatalf("expected detail steps to be joined into the ranked result")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/ga-kho-gung", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get recipe failed: %d", w.Code)
	}
	var rec model.Recipe
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("failed to decode recipe: %v", err)
	}
	if rec.SearchIngredients != "gà, gừng, nước mắm" {
		t.Fatalf("unexpected normalized ingredients: %q", rec.SearchIngredients)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/recipes/ga-kho-gung", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete failed: %d", w.Code)
	}

	resp = retrieve([]string{"gà", "gừng"}, 5)
	if len(resp.Recipes) != 1 {
		t.Fatalf("expected 1 ranked recipe after delete, got %d", len(resp.Recipes))
	}
	if resp.Recipes[0].ID != "canh-ga-nam" {
		t.Fatalf("unexpected top recipe after delete: %s", resp.Recipes[0].ID)
	}
}
