package handler

import "github.com/trendora/recommendation-service/internal/domain"

// indexView feeds the landing page template.
type indexView struct {
	Trending *domain.RecommendationPage
	Message  string
}

// mainView feeds the recommendations page template.
type mainView struct {
	Page     *domain.RecommendationPage
	Message  string
	Username string
	Email    string
}
