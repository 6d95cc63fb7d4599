package entity

// SortMode selects the ordering applied by the filter/sort pipeline.
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortRating    SortMode = "rating"
	SortDistance  SortMode = "distance"
	SortReviews   SortMode = "reviews"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
)

// ViewConfig is the ephemeral filter/sort configuration. It is held only in
// session state and never persisted.
type ViewConfig struct {
	// Category filters to a single category; empty means no category filter.
	Category Category `json:"category,omitempty"`

	// FavoritesOnly keeps only records whose id is in the favorites set.
	FavoritesOnly bool `json:"favoritesOnly,omitempty"`

	// MinRating keeps records with Rating >= MinRating (inclusive).
	MinRating float64 `json:"minRating,omitempty"`

	// OpenOnly keeps records known to be open right now.
	OpenOnly bool `json:"openOnly,omitempty"`

	Sort SortMode `json:"sort,omitempty"`
}
