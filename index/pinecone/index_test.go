package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/stockist/index"
)

func TestQuerySendsCanonicalRequest(t *testing.T) {
	var got searchRequest
	var gotPath string
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("Api-Key")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(searchEnvelope{
			Result: searchResult{
				Hits: []searchHit{
					{Id: "prod-001", Score: 0.87, Fields: map[string]any{"product_name": "Indigo Dream"}},
					{Id: "prod-002", Score: 0.64, Fields: map[string]any{"product_name": "Crimson Tide"}},
				},
			},
		})
	}))
	defer srv.Close()

	idx := NewIndex(
		index.WithLocation(srv.URL),
		index.WithApiKey("test-key"),
		index.WithNamespace("products"),
	)

	maxPrice := 3000.0
	inStock := true

	hits, err := idx.Query(context.Background(), "indigo saree",
		index.WithTopK(5),
		index.WithFilter(index.Filter{
			"color":    {Equals: "Indigo"},
			"price":    {Max: &maxPrice},
			"in_stock": {Flag: &inStock},
		}),
	)

	require.NoError(t, err)

	assert.Equal(t, "/records/namespaces/products/search", gotPath)
	assert.Equal(t, "test-key", gotKey)

	assert.Equal(t, "indigo saree", got.Query.Inputs["text"])
	assert.Equal(t, 5, got.Query.TopK)
	assert.Equal(t, []string{"*"}, got.Fields)

	// operators survive the JSON round trip as generic maps
	assert.Equal(t, map[string]any{"$eq": "Indigo"}, got.Query.Filter["color"])
	assert.Equal(t, map[string]any{"$lte": 3000.0}, got.Query.Filter["price"])
	assert.Equal(t, map[string]any{"$eq": true}, got.Query.Filter["in_stock"])

	require.Len(t, hits, 2)
	assert.Equal(t, "prod-001", hits[0].Id)
	assert.Equal(t, 0.87, hits[0].Score)
	assert.Equal(t, "Indigo Dream", hits[0].Fields["product_name"])
}

func TestQueryOmitsEmptyFilter(t *testing.T) {
	var raw map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.Write([]byte(`{"result": {"hits": []}}`))
	}))
	defer srv.Close()

	idx := NewIndex(index.WithLocation(srv.URL))

	hits, err := idx.Query(context.Background(), "saree")

	require.NoError(t, err)
	assert.Empty(t, hits)

	query := raw["query"].(map[string]any)
	_, ok := query["filter"]
	assert.False(t, ok)
}

func TestQueryPropagatesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	idx := NewIndex(index.WithLocation(srv.URL))

	_, err := idx.Query(context.Background(), "saree")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestTranslateFilterMergesRangeBounds(t *testing.T) {
	minPrice := 1000.0
	maxPrice := 4000.0

	translated := translateFilter(index.Filter{
		"price": {Min: &minPrice, Max: &maxPrice},
	})

	assert.Equal(t, map[string]any{"$gte": 1000.0, "$lte": 4000.0}, translated["price"])
}

func TestTranslateFilterEmpty(t *testing.T) {
	assert.Nil(t, translateFilter(nil))
	assert.Nil(t, translateFilter(index.Filter{}))
	assert.Nil(t, translateFilter(index.Filter{"color": {}}))
}

func TestNewIndexRequiresLocation(t *testing.T) {
	assert.Panics(t, func() {
		NewIndex()
	})
}
