// Package classify derives display attributes from heterogeneous upstream
// category data. Both place adapters share these rules so a bar classifies
// identically regardless of provider.
package classify

import (
	"strings"

	"barhop/internal/domain/entity"
)

// categoryRule matches one upstream label against a category. Rules are
// ordered; the first match across the whole label list wins, so rule order
// governs ties within one record's label set.
type categoryRule struct {
	substring string
	exact     string
	category  entity.Category
}

var categoryRules = []categoryRule{
	{substring: "cocktail", category: entity.CategoryCocktail},
	{substring: "wine", category: entity.CategoryWine},
	{substring: "sports", category: entity.CategorySports},
	{substring: "nightclub", exact: "nightlife", category: entity.CategoryNightclub},
	{substring: "brew", category: entity.CategoryCraftBeer},
	{substring: "beer", category: entity.CategoryCraftBeer},
	{substring: "pub", category: entity.CategoryPub},
}

// Category scans the upstream labels with the ordered substring rules and
// returns the first match. No match at all defaults to Pub.
func Category(labels []string) entity.Category {
	for _, rule := range categoryRules {
		for _, label := range labels {
			lower := strings.ToLower(label)
			if strings.Contains(lower, rule.substring) {
				return rule.category
			}
			if rule.exact != "" && lower == rule.exact {
				return rule.category
			}
		}
	}

	return entity.CategoryPub
}

// Category-keyed stock images, picked by the same substring technique when
// upstream provides no photo.
var stockImages = map[entity.Category]string{
	entity.CategoryCocktail:  "https://images.unsplash.com/photo-1514362545857-3bc16c4c7d1b",
	entity.CategoryWine:      "https://images.unsplash.com/photo-1510812431401-41d2bd2722f3",
	entity.CategorySports:    "https://images.unsplash.com/photo-1574096079513-d8259312b785",
	entity.CategoryNightclub: "https://images.unsplash.com/photo-1566417713940-fe7c737a9ef2",
	entity.CategoryCraftBeer: "https://images.unsplash.com/photo-1518176258769-f227c798150e",
}

// genericBarImage is the final fallback for labels no stock rule covers.
const genericBarImage = "https://images.unsplash.com/photo-1538488881038-e252a119ace7"

// Image returns the upstream photo when present and non-blank, otherwise a
// category-appropriate stock image. The result is never empty.
func Image(upstream string, labels []string) string {
	if strings.TrimSpace(upstream) != "" {
		return upstream
	}

	if img, ok := stockImages[Category(labels)]; ok {
		return img
	}

	return genericBarImage
}

// PriceLevel maps upstream price symbols ("$$$", "€€") to their character
// count, clamped to [1,4]. An absent price means moderate (tier 2), never
// tier 0 and never an error.
func PriceLevel(symbols string) int {
	count := len([]rune(strings.TrimSpace(symbols)))
	if count == 0 {
		return 2
	}
	if count > 4 {
		return 4
	}

	return count
}
