package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Y4SHVINE/smart-product-assistant/internal/model"
)

// CatalogReader is the catalog access the search pipeline needs: the full
// product list, each joined with its category.
type CatalogReader interface {
	List(ctx context.Context) ([]model.Product, error)
}

// Completer produces a JSON chat completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SearchService turns a free-text shopping query into a ranked, explained
// subset of the catalog. Each call is an independent single-attempt pipeline:
// snapshot the catalog, prompt the model, parse, join. Nothing is cached or
// retried.
type SearchService struct {
	catalog CatalogReader
	llm     Completer
}

func NewSearchService(catalog CatalogReader, llm Completer) *SearchService {
	return &SearchService{catalog: catalog, llm: llm}
}

// Search runs the pipeline for one query. An empty query fails with
// ErrInvalidRequest before anything downstream is touched. Results keep the
// order the model returned them in; recommendations whose productId does not
// resolve against the snapshot are skipped.
func (s *SearchService) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query is required: %w", model.ErrInvalidRequest)
	}

	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog snapshot: %w", err)
	}

	prompt, err := buildPrompt(query, products)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	content, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed model.RecommendationResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", model.ErrUpstream)
	}

	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	results := []model.SearchResult{}
	for _, rec := range parsed.Recommendations {
		id, err := strconv.ParseInt(rec.ProductID, 10, 64)
		if err != nil {
			continue
		}
		product, ok := byID[id]
		if !ok {
			continue
		}
		results = append(results, model.SearchResult{
			Product:        product,
			RelevanceScore: rec.RelevanceScore,
			Explanation:    rec.Explanation,
		})
	}

	return results, nil
}

// buildPrompt embeds the catalog snapshot and the literal query into the
// instruction, including the exact JSON shape the model must return.
func buildPrompt(query string, products []model.Product) (string, error) {
	catalog, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Based on the following user query: %q
And the following product catalog:
%s

Please recommend the most relevant products and explain why they match the user's needs.
Return the response in the following JSON format:
{
  "recommendations": [
    {
      "productId": "string",
      "relevanceScore": number (0-1),
      "explanation": "string"
    }
  ]
}`, query, catalog), nil
}
