package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"glacier_storefront/internal/repository"
)

// Recommendation is the flavor suggestion returned by the AI concierge
type Recommendation struct {
	Flavor     string   `json:"flavor"`
	Reason     string   `json:"reason"`
	Adjectives []string `json:"adjectives"`
}

// RecommendRequest is the body of ai /recommend
type RecommendRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// fallbackRecommendation is served whenever the upstream AI call fails.
// The recommend operation itself never fails.
var fallbackRecommendation = Recommendation{
	Flavor:     "Classic Vanilla",
	Reason:     "Something went wrong, but you can never go wrong with a classic.",
	Adjectives: []string{"Simple"},
}

// RecommendService asks an external generative AI endpoint for a flavor
// suggestion grounded on the current catalog
type RecommendService interface {
	Recommend(ctx context.Context, prompt string) (*Recommendation, error)
}

type recommendService struct {
	endpoint    string
	apiKey      string
	httpClient  *http.Client
	productRepo repository.ProductRepository
}

// NewRecommendService creates a new RecommendService. An empty endpoint
// disables upstream calls; every prompt then gets the fallback.
func NewRecommendService(endpoint, apiKey string, timeout time.Duration, productRepo repository.ProductRepository) RecommendService {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &recommendService{
		endpoint:    endpoint,
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: timeout},
		productRepo: productRepo,
	}
}

// Recommend returns a flavor suggestion for the prompt. Upstream
// failures degrade to the fixed fallback rather than erroring.
func (s *recommendService) Recommend(ctx context.Context, prompt string) (*Recommendation, error) {
	rec, err := s.ask(ctx, prompt)
	if err != nil {
		log.Printf("AI recommendation failed, serving fallback: %v", err)
		fallback := fallbackRecommendation
		return &fallback, nil
	}
	return rec, nil
}

func (s *recommendService) ask(ctx context.Context, prompt string) (*Recommendation, error) {
	if s.endpoint == "" {
		return nil, fmt.Errorf("no AI endpoint configured")
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog for prompt: %w", err)
	}
	flavors := make([]string, 0, len(products))
	for _, p := range products {
		flavors = append(flavors, p.Name)
	}

	payload, err := json.Marshal(map[string]any{
		"prompt":  prompt,
		"flavors": flavors,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode prompt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build AI request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("AI endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI endpoint returned status %d", resp.StatusCode)
	}

	var rec Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode AI response: %w", err)
	}
	if rec.Flavor == "" {
		return nil, fmt.Errorf("AI response missing flavor")
	}
	return &rec, nil
}
