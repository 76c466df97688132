package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/trendora/recommendation-service/internal/catalog"
	"github.com/trendora/recommendation-service/internal/domain"
)

// Semantic ranks catalog products by embedding-space cosine similarity
// between the query text and each product name. Unlike the lexical engine it
// never declines: the query does not have to be a catalog member, so there is
// no self-exclusion either. Embeddings are recomputed on every call; nothing
// is cached across requests.
type Semantic struct {
	catalog  *catalog.Catalog
	embedder Embedder
}

func NewSemantic(c *catalog.Catalog, e Embedder) *Semantic {
	return &Semantic{catalog: c, embedder: e}
}

// Recommend returns up to topN products whose names embed closest to the
// query text, best first. Ties keep catalog order. An embedding failure
// surfaces as an error wrapping domain.ErrModelUnavailable; it is never
// silently degraded to another strategy.
func (s *Semantic) Recommend(ctx context.Context, query string, topN int) ([]domain.RankedProduct, error) {
	products := s.catalog.All()
	if topN <= 0 || len(products) == 0 {
		return nil, nil
	}

	// One round trip: query first, then every catalog name.
	texts := make([]string, 0, len(products)+1)
	texts = append(texts, query)
	for _, p := range products {
		texts = append(texts, p.Name)
	}
	embeddings, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed query and catalog: %w", err)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts: %w",
			len(embeddings), len(texts), domain.ErrModelUnavailable)
	}

	queryVec := embeddings[0]
	scores := make([]float64, len(products))
	order := make([]int, len(products))
	for i := range products {
		scores[i] = cosine(queryVec, embeddings[i+1])
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topN < len(order) {
		order = order[:topN]
	}
	ranked := make([]domain.RankedProduct, 0, len(order))
	for _, i := range order {
		ranked = append(ranked, products[i].Ranked(scores[i]))
	}
	return ranked, nil
}
