package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/smartchef/ai-service/internal/model"
	"github.com/smartchef/ai-service/internal/types"
)

const (
	// QueryPrefix marks query-side embedding input for the asymmetric
	// e5 retrieval model; documents are embedded with PassagePrefix.
	QueryPrefix = "query: "

	// MatchThreshold is the minimum ingredient coverage a candidate needs
	// to stay in the result set. Tunable policy constant.
	MatchThreshold = 0.2

	// DefaultTopK is the result size used when callers don't specify one.
	DefaultTopK = 5
)

// RetrievalError reports a hard failure in one of the retrieval stages.
// Callers distinguish it from an empty-but-successful result.
type RetrievalError struct {
	Stage string
	Err   error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval: %s: %v", e.Stage, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// RetrievalService ranks recipes against a query ingredient set by blending
// vector similarity with an exact ingredient-coverage score. It holds no
// mutable state; concurrent Retrieve calls are independent.
type RetrievalService struct {
	embedder IEmbedder
	index    IVectorIndex
	store    IRecipeStore
}

// NewRetrievalService creates a new RetrievalService instance
func NewRetrievalService(embedder IEmbedder, index IVectorIndex, store IRecipeStore) *RetrievalService {
	return &RetrievalService{
		embedder: embedder,
		index:    index,
		store:    store,
	}
}

// Retrieve returns up to topK recipes ranked by (matchScore, semanticScore)
// descending. An empty ingredient list yields an empty result without
// touching the embedding model. topK <= 0 yields an empty result.
func (s *RetrievalService) Retrieve(ctx context.Context, ingredients []string, topK int) ([]types.RankedRecipe, error) {
	query := normalizeIngredientSet(ingredients)
	if len(query) == 0 || topK <= 0 {
		return []types.RankedRecipe{}, nil
	}

	vec, err := s.embedder.Embed(ctx, QueryPrefix+joinIngredients(ingredients))
	if err != nil {
		return nil, &RetrievalError{Stage: "embed query", Err: err}
	}

	// Oversample: some neighbors will fail the coverage filter.
	hits, err := s.index.Search(ctx, vec, 2*topK)
	if err != nil {
		return nil, &RetrievalError{Stage: "vector search", Err: err}
	}

	type candidate struct {
		hit        types.SearchHit
		matchScore float64
	}
	candidates := make([]candidate, 0, len(hits))
	for _, hit := range hits {
		score := MatchScore(ParseIngredientCSV(hit.SearchIngredients), query)
		if score >= MatchThreshold {
			candidates = append(candidates, candidate{hit: hit, matchScore: score})
		}
	}
	if len(candidates) == 0 {
		return []types.RankedRecipe{}, nil
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.hit.RecipeID
	}
	details, err := s.store.GetByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &RetrievalError{Stage: "detail lookup", Err: err}
		}
		// Ranking is still valid without detail; degrade instead of failing.
		log.Printf("[RetrievalService] detail lookup failed, returning ranking without detail: %v", err)
		details = map[string]*model.Recipe{}
	}

	results := make([]types.RankedRecipe, 0, len(candidates))
	for _, c := range candidates {
		ranked := types.RankedRecipe{
			ID:            c.hit.RecipeID,
			Name:          c.hit.Name,
			MatchScore:    c.matchScore,
			SemanticScore: c.hit.Score,
		}
		if detail, ok := details[c.hit.RecipeID]; ok {
			ranked.Description = detail.Description
			ranked.DetailedIngredients = detail.DetailedIngredients
			ranked.Seasonings = detail.Seasonings
			ranked.Steps = detail.Steps
			ranked.CookTime = detail.CookTime
		}
		results = append(results, ranked)
	}

	// Exact ingredient fit outranks embedding proximity; the stable sort
	// keeps index order on full ties so results stay deterministic.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		return results[i].SemanticScore > results[j].SemanticScore
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// MatchScore returns the fraction of the candidate's ingredients covered by
// the query set: |candidate ∩ query| / |candidate|. A candidate whose
// ingredients are a subset of what the user has scores 1.0; extra query
// ingredients cost nothing. Not symmetric. Either side empty scores 0.
func MatchScore(candidate, query map[string]struct{}) float64 {
	if len(candidate) == 0 || len(query) == 0 {
		return 0
	}
	var intersection int
	for ingredient := range candidate {
		if _, ok := query[ingredient]; ok {
			intersection++
		}
	}
	return float64(intersection) / float64(len(candidate))
}

// ParseIngredientCSV splits a comma-separated ingredient payload into a set
// of trimmed, lowercase tokens. Empty tokens are dropped.
func ParseIngredientCSV(csv string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Split(csv, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			set[token] = struct{}{}
		}
	}
	return set
}

func normalizeIngredientSet(ingredients []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ingredients))
	for _, ingredient := range ingredients {
		ingredient = strings.ToLower(strings.TrimSpace(ingredient))
		if ingredient != "" {
			set[ingredient] = struct{}{}
		}
	}
	return set
}

func joinIngredients(ingredients []string) string {
	trimmed := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		ingredient = strings.ToLower(strings.TrimSpace(ingredient))
		if ingredient != "" {
			trimmed = append(trimmed, ingredient)
		}
	}
	return strings.Join(trimmed, ", ")
}
