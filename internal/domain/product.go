package domain

// Product is one row of the catalog. Name is the human-facing identifier and is
// not guaranteed unique; Tags is the free-text keyword bag the lexical engine
// vectorizes.
type Product struct {
	Name        string  `json:"name"`
	Tags        string  `json:"tags"`
	ReviewCount int     `json:"review_count"`
	Brand       string  `json:"brand"`
	ImageURL    string  `json:"image_url"`
	Rating      float64 `json:"rating"`
}

// RankedProduct is the presentation projection of a Product with the
// similarity score attached for one ranking pass. Scores are transient and
// never persisted.
type RankedProduct struct {
	Name        string  `json:"name"`
	ReviewCount int     `json:"review_count"`
	Brand       string  `json:"brand"`
	ImageURL    string  `json:"image_url"`
	Rating      float64 `json:"rating"`
	Score       float64 `json:"score"`
}

// Ranked projects a catalog product for presentation.
func (p Product) Ranked(score float64) RankedProduct {
	return RankedProduct{
		Name:        p.Name,
		ReviewCount: p.ReviewCount,
		Brand:       p.Brand,
		ImageURL:    p.ImageURL,
		Rating:      p.Rating,
		Score:       score,
	}
}

// RecommendationPage is what the dispatcher hands to the presentation layer:
// either a ranked list with parallel decoration slices of equal length, or an
// informational message when there is nothing to show.
type RecommendationPage struct {
	Products []RankedProduct `json:"products"`
	Images   []string        `json:"images"`
	Prices   []int           `json:"prices"`
	Message  string          `json:"message,omitempty"`
}

// Empty reports whether the page carries no recommendations.
func (p *RecommendationPage) Empty() bool {
	return len(p.Products) == 0
}
