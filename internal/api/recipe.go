package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smartchef/ai-service/internal/model"
	"github.com/smartchef/ai-service/internal/service"
	"github.com/smartchef/ai-service/internal/types"
)

// RecipeHandler serves the recipe corpus and the direct retrieval endpoint.
type RecipeHandler struct {
	recipes   service.IRecipeService
	retrieval service.IRetrievalService
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes service.IRecipeService, retrieval service.IRetrievalService) *RecipeHandler {
	return &RecipeHandler{
		recipes:   recipes,
		retrieval: retrieval,
	}
}

// RegisterRoutes registers recipe routes; authMW guards the mutating ones.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("/retrieve", h.RetrieveRecipes)
		recipes.PUT("/:id", authMW, h.UpsertRecipe)
		recipes.DELETE("/:id", authMW, h.DeleteRecipe)
	}
}

// RetrieveRecipes ranks the corpus against a query ingredient list.
func (h *RecipeHandler) RetrieveRecipes(c *gin.Context) {
	var req types.RetrieveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = service.DefaultTopK
	}

	results, err := h.retrieval.Retrieve(c.Request.Context(), req.Ingredients, topK)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Retrieval failed"})
		return
	}

	c.JSON(http.StatusOK, types.RetrieveResponse{Recipes: results})
}

// GetRecipe returns one recipe's full detail
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// ListRecipes returns the full corpus
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// UpsertRecipe writes a full recipe record and refreshes its vector point
func (h *RecipeHandler) UpsertRecipe(c *gin.Context) {
	var req types.UpsertRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := &model.Recipe{
		ID:                  c.Param("id"),
		Name:                req.Name,
		Description:         req.Description,
		SearchIngredients:   strings.Join(req.SearchIngredients, ", "),
		DetailedIngredients: req.DetailedIngredients,
		Seasonings:          req.Seasonings,
		Steps:               req.Steps,
		CookTime:            req.CookTime,
	}

	if err := h.recipes.Upsert(c.Request.Context(), recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe removes a recipe and its vector point
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id := c.Param("id")
	if err := h.recipes.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      id,
	})
}
