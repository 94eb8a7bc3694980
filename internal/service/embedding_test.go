package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embedServer(t *testing.T, handler http.HandlerFunc) *EmbeddingService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("EMBEDDING_API_URL", srv.URL)
	return NewEmbeddingService()
}

func TestEmbeddingService_Embed(t *testing.T) {
	vector := make([]float32, EmbeddingDim)
	vector[0] = 0.5

	var gotInput string
	svc := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotInput = req.Inputs

		require.NoError(t, json.NewEncoder(w).Encode([][]float32{vector}))
	})

	got, err := svc.Embed(context.Background(), "query: gà, gừng")

	require.NoError(t, err)
	assert.Equal(t, "query: gà, gừng", gotInput)
	assert.Len(t, got, EmbeddingDim)
	assert.Equal(t, float32(0.5), got[0])
}

func TestEmbeddingService_Embed_DimensionMismatch(t *testing.T) {
	svc := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode([][]float32{{1, 2, 3}}))
	})

	_, err := svc.Embed(context.Background(), "query: gà")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 768")
}

func TestEmbeddingService_Embed_ServerError(t *testing.T) {
	svc := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	})

	_, err := svc.Embed(context.Background(), "query: gà")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestEmbeddingService_Embed_Cancelled(t *testing.T) {
	svc := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Embed(ctx, "query: gà")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
