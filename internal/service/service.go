package service

import (
	"context"
	"log"
	"strconv"

	"github.com/trendora/recommendation-service/internal/catalog"
	"github.com/trendora/recommendation-service/internal/decor"
	"github.com/trendora/recommendation-service/internal/domain"
	"github.com/trendora/recommendation-service/internal/recommend"
	"github.com/trendora/recommendation-service/internal/repository"
)

const (
	defaultTopN      = 10
	trendingPageSize = 8

	noResultsMessage = "No recommendations available for this product."
)

// Service is the recommendation dispatcher plus the user operations the web
// layer needs. Stateless per request: the only cross-request state is the
// immutable catalog and the read-only engine wiring.
type Service struct {
	catalog  *catalog.Catalog
	lexical  *recommend.Lexical
	semantic *recommend.Semantic
	repo     *repository.Repository
	decor    decor.Provider
}

func NewService(c *catalog.Catalog, lexical *recommend.Lexical, semantic *recommend.Semantic,
	repo *repository.Repository, decorProvider decor.Provider) *Service {
	return &Service{
		catalog:  c,
		lexical:  lexical,
		semantic: semantic,
		repo:     repo,
		decor:    decorProvider,
	}
}

// ParseTopN interprets the raw count field from the request form. Absent or
// non-numeric or negative input falls back to the default; this is recovered
// locally and never surfaced as an error.
func ParseTopN(raw string) int {
	if raw == "" {
		return defaultTopN
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return defaultTopN
	}
	return n
}

// Recommend routes one request to an engine and shapes the result for
// presentation. Exact catalog members go to the lexical engine; everything
// else goes to the semantic engine. Only genuine engine failures (the
// embedding model being down) come back as errors.
func (s *Service) Recommend(ctx context.Context, query string, topNRaw string) (*domain.RecommendationPage, error) {
	topN := ParseTopN(topNRaw)

	var engine recommend.Strategy
	if s.lexical.Applicable(query) {
		log.Printf("[service] product %q found in catalog, using lexical engine", query)
		engine = s.lexical
	} else {
		log.Printf("[service] product %q not in catalog, using semantic engine", query)
		engine = s.semantic
	}

	ranked, err := engine.Recommend(ctx, query, topN)
	if err != nil {
		return nil, err
	}

	if len(ranked) == 0 {
		return &domain.RecommendationPage{Message: noResultsMessage}, nil
	}
	return s.decorate(ranked), nil
}

// Trending returns the decorated landing-page subset.
func (s *Service) Trending() *domain.RecommendationPage {
	trending := s.catalog.Trending(trendingPageSize)
	ranked := make([]domain.RankedProduct, 0, len(trending))
	for _, p := range trending {
		ranked = append(ranked, p.Ranked(0))
	}
	return s.decorate(ranked)
}

// decorate attaches one placeholder image and price per product, keeping the
// three slices parallel.
func (s *Service) decorate(ranked []domain.RankedProduct) *domain.RecommendationPage {
	page := &domain.RecommendationPage{
		Products: ranked,
		Images:   make([]string, len(ranked)),
		Prices:   make([]int, len(ranked)),
	}
	for i := range ranked {
		page.Images[i] = s.decor.Image()
		page.Prices[i] = s.decor.Price()
	}
	return page
}

// SignUp registers a new account. Returns domain.ErrUserExists when the
// username or email is already taken.
func (s *Service) SignUp(ctx context.Context, username, email, password string) error {
	return s.repo.CreateUser(ctx, username, email, password)
}

// SignIn checks the credential pair and records the sign-in when it matches.
func (s *Service) SignIn(ctx context.Context, username, password string) (bool, error) {
	return s.repo.Authenticate(ctx, username, password)
}

// Profile fetches the signed-in user's account record.
func (s *Service) Profile(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}
