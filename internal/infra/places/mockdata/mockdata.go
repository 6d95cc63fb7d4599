// Package mockdata holds the built-in fallback dataset served whenever live
// place data is unavailable, so the record list is never empty on error.
package mockdata

import "barhop/internal/domain/entity"

func boolPtr(b bool) *bool { return &b }

// Bars returns a fresh copy of the fallback dataset. Callers may mutate the
// returned slice freely.
func Bars() []*entity.Bar {
	open := boolPtr(true)
	closed := boolPtr(false)

	return []*entity.Bar{
		{
			ID:          "mock-vinyl-vest",
			Name:        "Vinyl Vest",
			Category:    entity.CategoryCocktail,
			Coordinates: entity.NewLonLat(5.3221, 60.3934),
			Address:     "Vestre Torggaten 9, Bergen",
			Rating:      4.6,
			Image:       "https://images.unsplash.com/photo-1514362545857-3bc16c4c7d1b",
			Description: "Cocktail · 212 reviews",
			PriceLevel:  3,
			IsOpenNow:   open,
		},
		{
			ID:          "mock-bryggen-tap",
			Name:        "Bryggen Taproom",
			Category:    entity.CategoryCraftBeer,
			Coordinates: entity.NewLonLat(5.3242, 60.3975),
			Address:     "Bryggen 11, Bergen",
			Rating:      4.4,
			Image:       "https://images.unsplash.com/photo-1518176258769-f227c798150e",
			Description: "Craft-beer · 167 reviews",
			PriceLevel:  2,
			IsOpenNow:   open,
		},
		{
			ID:          "mock-fjord-cellar",
			Name:        "Fjord Cellar",
			Category:    entity.CategoryWine,
			Coordinates: entity.NewLonLat(5.3198, 60.3921),
			Address:     "Engen 18, Bergen",
			Rating:      4.7,
			Image:       "https://images.unsplash.com/photo-1510812431401-41d2bd2722f3",
			Description: "Wine · 98 reviews",
			PriceLevel:  3,
			IsOpenNow:   closed,
		},
		{
			ID:          "mock-old-anchor",
			Name:        "The Old Anchor",
			Category:    entity.CategoryPub,
			Coordinates: entity.NewLonLat(5.3289, 60.3951),
			Address:     "Kong Oscars gate 44, Bergen",
			Rating:      4.1,
			Image:       "https://images.unsplash.com/photo-1538488881038-e252a119ace7",
			Description: "Pub · 301 reviews",
			PriceLevel:  2,
			IsOpenNow:   open,
		},
		{
			ID:          "mock-full-time",
			Name:        "Full Time Sports Bar",
			Category:    entity.CategorySports,
			Coordinates: entity.NewLonLat(5.3305, 60.3898),
			Address:     "Nygårdsgaten 2a, Bergen",
			Rating:      3.9,
			Image:       "https://images.unsplash.com/photo-1574096079513-d8259312b785",
			Description: "Sports · 74 reviews",
			PriceLevel:  1,
		},
		{
			ID:          "mock-nattlys",
			Name:        "Nattlys",
			Category:    entity.CategoryNightclub,
			Coordinates: entity.NewLonLat(5.3230, 60.3907),
			Address:     "Christies gate 14, Bergen",
			Rating:      4.0,
			Image:       "https://images.unsplash.com/photo-1566417713940-fe7c737a9ef2",
			Description: "Nightclub · 129 reviews",
			PriceLevel:  4,
			IsOpenNow:   closed,
		},
	}
}
