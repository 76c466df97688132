package recommend

import (
	"context"

	"github.com/trendora/recommendation-service/internal/domain"
)

// Strategy ranks catalog products against a query and returns at most topN of
// them, best first. Both engines implement it; the dispatcher picks which one
// to call per request.
type Strategy interface {
	Recommend(ctx context.Context, query string, topN int) ([]domain.RankedProduct, error)
}

// Embedder encodes texts into fixed-dimension dense vectors in a shared
// embedding space. Implementations must be safe for concurrent use: the
// semantic engine issues Embed calls from multiple simultaneous requests.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}
