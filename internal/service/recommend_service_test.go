package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"glacier_storefront/internal/model"
	"glacier_storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T) *repository.MemoryProductRepository {
	t.Helper()
	productRepo := repository.NewMemoryProductRepository()
	p := model.Product{ID: "p1", Name: "Midnight Charcoal", Price: 8.50, Category: model.CategorySignature}
	require.NoError(t, productRepo.Upsert(context.Background(), &p))
	return productRepo
}

func TestRecommendService_UpstreamSuccess(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "something bold", body["prompt"])
		assert.Contains(t, body["flavors"], "Midnight Charcoal")

		json.NewEncoder(w).Encode(Recommendation{
			Flavor:     "Midnight Charcoal",
			Reason:     "Bold and deep.",
			Adjectives: []string{"Bold"},
		})
	}))
	defer srv.Close()

	svc := NewRecommendService(srv.URL, "test-key", 2*time.Second, seedCatalog(t))

	rec, err := svc.Recommend(context.Background(), "something bold")
	require.NoError(t, err)
	assert.Equal(t, "Midnight Charcoal", rec.Flavor)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestRecommendService_FallbackWhenUnconfigured(t *testing.T) {
	svc := NewRecommendService("", "", 0, seedCatalog(t))

	rec, err := svc.Recommend(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "Classic Vanilla", rec.Flavor)
}

func TestRecommendService_FallbackOnTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // endpoint configured but unreachable

	svc := NewRecommendService(srv.URL, "", time.Second, seedCatalog(t))

	rec, err := svc.Recommend(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "Classic Vanilla", rec.Flavor)
}

func TestRecommendService_FallbackOnBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": true}`))
	}))
	defer srv.Close()

	svc := NewRecommendService(srv.URL, "", time.Second, seedCatalog(t))

	rec, err := svc.Recommend(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "Classic Vanilla", rec.Flavor)
}

func TestRecommendService_FallbackOnUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewRecommendService(srv.URL, "", time.Second, seedCatalog(t))

	rec, err := svc.Recommend(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "Classic Vanilla", rec.Flavor)
}
