// Package entity contains the core business objects of the project.
package entity

// Category is the fixed classification a bar is displayed under.
// It is always derived from upstream category labels, never taken verbatim.
type Category string

const (
	CategoryCocktail  Category = "Cocktail"
	CategoryPub       Category = "Pub"
	CategorySports    Category = "Sports"
	CategoryWine      Category = "Wine"
	CategoryCraftBeer Category = "Craft-beer"
	CategoryNightclub Category = "Nightclub"
)

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryCocktail,
		CategoryPub,
		CategorySports,
		CategoryWine,
		CategoryCraftBeer,
		CategoryNightclub,
	}
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCocktail, CategoryPub, CategorySports,
		CategoryWine, CategoryCraftBeer, CategoryNightclub:
		return true
	}

	return false
}

// OpenInterval is one weekly opening interval of a bar.
// Start and End are local times in "HHMM" form; Overnight marks intervals
// that close past midnight on the following day.
type OpenInterval struct {
	Day       int    `json:"day"` // 0 = Monday, matching the upstream convention
	Start     string `json:"start"`
	End       string `json:"end"`
	Overnight bool   `json:"overnight"`
}

// Bar is the normalized unit of display data, independent of the upstream
// provider. Records are recreated wholesale on every fetch and never mutated
// in place.
type Bar struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Coordinates LonLat   `json:"coordinates"`
	Address     string   `json:"address"`
	Rating      float64  `json:"rating"` // 0-5 scale
	Image       string   `json:"image"`  // never empty; falls back to a stock image
	Description string   `json:"description"`
	PriceLevel  int      `json:"priceLevel"` // tier 1-4

	// Optional enrichments, present only when upstream supplies them.
	Phone        string         `json:"phone,omitempty"`
	DisplayPhone string         `json:"displayPhone,omitempty"`
	Distance     *float64       `json:"distance,omitempty"` // meters from the query coordinate
	Labels       []string       `json:"categories,omitempty"`
	IsOpenNow    *bool          `json:"isOpenNow,omitempty"`
	Hours        []OpenInterval `json:"businessHours,omitempty"`
}
