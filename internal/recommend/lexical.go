package recommend

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/trendora/recommendation-service/internal/catalog"
	"github.com/trendora/recommendation-service/internal/domain"
)

// tokens are lowercase runs of letters/digits, two characters or longer.
var tokenPattern = regexp.MustCompile(`[a-z0-9]{2,}`)

// Lexical ranks catalog products by TF-IDF cosine similarity over their tag
// text. It only applies when the query name is an exact catalog member; the
// dispatcher probes Applicable before delegating.
type Lexical struct {
	catalog *catalog.Catalog
}

func NewLexical(c *catalog.Catalog) *Lexical {
	return &Lexical{catalog: c}
}

// Applicable reports whether the query has an exact catalog match.
func (l *Lexical) Applicable(query string) bool {
	_, _, ok := l.catalog.FindExact(query)
	return ok
}

// Recommend returns up to topN products most similar to the query product,
// best first, excluding the query product itself. Ties keep catalog order.
// Returns domain.ErrQueryNotInCatalog when the query has no exact match.
func (l *Lexical) Recommend(ctx context.Context, query string, topN int) ([]domain.RankedProduct, error) {
	_, queryIdx, ok := l.catalog.FindExact(query)
	if !ok {
		return nil, domain.ErrQueryNotInCatalog
	}
	if topN <= 0 {
		return nil, nil
	}

	products := l.catalog.All()
	vectors := tagVectors(products)

	// Full pairwise matrix, recomputed on every request; nothing is cached
	// across calls.
	// TODO: only the query row is ever read; computing just sims[queryIdx]
	// would drop this from O(n^2) to O(n) vector dot products.
	sims := pairwiseSimilarities(vectors)
	row := sims[queryIdx]

	candidates := make([]int, 0, len(products)-1)
	for i := range products {
		if i == queryIdx {
			continue
		}
		candidates = append(candidates, i)
	}
	// Stable sort so equal scores keep catalog order, including the
	// degenerate all-zero case (empty tags everywhere).
	sort.SliceStable(candidates, func(a, b int) bool {
		return row[candidates[a]] > row[candidates[b]]
	})

	if topN < len(candidates) {
		candidates = candidates[:topN]
	}
	ranked := make([]domain.RankedProduct, 0, len(candidates))
	for _, i := range candidates {
		ranked = append(ranked, products[i].Ranked(row[i]))
	}
	return ranked, nil
}

// tagVectors builds one L2-normalized TF-IDF vector per product from its Tags
// field. Term frequency is the raw in-document count; idf uses the smoothed
// form ln((1+n)/(1+df)) + 1 so terms present in every document still carry
// weight.
func tagVectors(products []domain.Product) []termVector {
	counts := make([]map[string]float64, len(products))
	df := make(map[string]int)

	for i, p := range products {
		terms := make(map[string]float64)
		for _, tok := range tokenize(p.Tags) {
			terms[tok]++
		}
		for tok := range terms {
			df[tok]++
		}
		counts[i] = terms
	}

	n := float64(len(products))
	idf := make(map[string]float64, len(df))
	for tok, docs := range df {
		idf[tok] = math.Log((1.0+n)/(1.0+float64(docs))) + 1.0
	}

	vectors := make([]termVector, len(products))
	for i, terms := range counts {
		v := make(termVector, len(terms))
		for tok, tf := range terms {
			v[tok] = tf * idf[tok]
		}
		vectors[i] = v.normalize()
	}
	return vectors
}

func tokenize(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// pairwiseSimilarities computes the full symmetric cosine-similarity matrix
// over normalized vectors.
func pairwiseSimilarities(vectors []termVector) [][]float64 {
	n := len(vectors)
	sims := make([][]float64, n)
	for i := range sims {
		sims[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		sims[i][i] = 1.0
		for j := i + 1; j < n; j++ {
			s := vectors[i].dot(vectors[j])
			sims[i][j] = s
			sims[j][i] = s
		}
	}
	return sims
}
