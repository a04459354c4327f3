// ABOUTME: Tests for the food database client against a stub server.
// ABOUTME: Covers filtering, locale numbers, errors, and cache hits.
package nutrition

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obycajnypes/logly/internal/validate"
)

func TestSearchFiltersAndLimits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/autocomplete/foodstuff-activity-meal", r.URL.Path)
		assert.Equal(t, "chicken", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"clazz":"foodstuff","id":101,"title":"Chicken Breast"},
			{"clazz":"meal","id":102,"title":"Chicken Soup"},
			{"clazz":"foodstuff","id":null,"title":"Broken"},
			{"clazz":"foodstuff","id":"103","title":"Chicken Thigh"},
			{"clazz":"foodstuff","id":104,"title":"Chicken Wing"},
			{"clazz":"foodstuff","id":105,"title":"Whole Chicken"},
			{"clazz":"foodstuff","id":106,"title":"Chicken Liver"},
			{"clazz":"foodstuff","id":107,"title":"Chicken Heart"},
			{"clazz":"foodstuff","id":108,"title":"One Too Many"}
		]`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	hits, err := client.Search(context.Background(), " chicken ")
	require.NoError(t, err)

	require.Len(t, hits, 5)
	assert.Equal(t, "101", hits[0].ID)
	assert.Equal(t, "Chicken Breast", hits[0].Title)
	assert.Contains(t, hits[0].ImageURL, "/file/image/thumb/foodstuff/101")
	// Non-foodstuff and id-less rows are dropped before the limit.
	assert.Equal(t, "103", hits[1].ID)
}

func TestSearchRequiresQuery(t *testing.T) {
	client := NewClient()
	_, err := client.Search(context.Background(), "   ")
	assert.True(t, validate.IsValidation(err))
}

func TestFetchParsesLocaleNumbers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/foodstuff/detail/101/150/0000000000000001", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"foodstuff":{"title":" Chicken Breast ","energy":"1 234,5","protein":46.5}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	detail, err := client.Fetch(context.Background(), "101", 150)
	require.NoError(t, err)

	assert.Equal(t, "Chicken Breast", detail.Title)
	assert.Equal(t, 150.0, detail.Grams)
	assert.Equal(t, 1234.5, detail.Kcal)
	assert.Equal(t, 46.5, detail.Protein)
}

func TestFetchDetailUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"foodstuff":null}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Fetch(context.Background(), "101", 150)
	assert.ErrorIs(t, err, ErrDetailUnavailable)
}

func TestFetchRejectsBadInput(t *testing.T) {
	client := NewClient()

	_, err := client.Fetch(context.Background(), "", 150)
	assert.True(t, validate.IsValidation(err))

	_, err = client.Fetch(context.Background(), "101", 0)
	assert.True(t, validate.IsValidation(err))
}

func TestGetJSONStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Search(context.Background(), "chicken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestUnitOptionsDeduplicates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/foodstuff/detail/form/101", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"unitOptions":[
			{"title":"g"},{"title":"piece"},{"title":" Piece "},{"title":""}
		]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	options, err := client.UnitOptions(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, []string{"g", "piece"}, options)
}

func TestFetchUsesCache(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"foodstuff":{"title":"Oats","energy":389,"protein":16.9}}`))
	}))
	defer server.Close()

	cache, err := OpenCache(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	client := NewClient(WithBaseURL(server.URL), WithCache(cache))

	first, err := client.Fetch(context.Background(), "55", 100)
	require.NoError(t, err)
	second, err := client.Fetch(context.Background(), "55", 100)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), calls.Load(), "second lookup should come from cache")

	// A different portion is a distinct cache entry.
	_, err = client.Fetch(context.Background(), "55", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}
