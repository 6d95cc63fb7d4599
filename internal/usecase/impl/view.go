package impl

import (
	"regexp"
	"sort"
	"strconv"

	"barhop/internal/domain/entity"
)

// reviewCountPattern extracts a review count from the free-text description
// ("Cocktail · 212 reviews"). Parsing display text instead of a dedicated
// field is a known data-quality wart kept for compatibility.
var reviewCountPattern = regexp.MustCompile(`(\d+)\s+reviews?`)

// ApplyView filters and orders bars by cfg. Pure and deterministic: the same
// inputs always yield the same output, the input slice is never mutated, and
// all sorts are stable.
func ApplyView(bars []*entity.Bar, cfg entity.ViewConfig, favorites map[string]struct{}) []*entity.Bar {
	out := make([]*entity.Bar, 0, len(bars))
	for _, bar := range bars {
		if !matches(bar, cfg, favorites) {
			continue
		}
		out = append(out, bar)
	}

	sortBars(out, cfg.Sort)

	return out
}

// matches composes the enabled predicates with logical AND.
func matches(bar *entity.Bar, cfg entity.ViewConfig, favorites map[string]struct{}) bool {
	if cfg.Category != "" && bar.Category != cfg.Category {
		return false
	}
	if cfg.FavoritesOnly {
		if _, ok := favorites[bar.ID]; !ok {
			return false
		}
	}
	if cfg.MinRating > 0 && bar.Rating < cfg.MinRating {
		return false
	}
	if cfg.OpenOnly && (bar.IsOpenNow == nil || !*bar.IsOpenNow) {
		return false
	}

	return true
}

func sortBars(bars []*entity.Bar, mode entity.SortMode) {
	switch mode {
	case entity.SortRating:
		sort.SliceStable(bars, func(i, j int) bool {
			return bars[i].Rating > bars[j].Rating
		})
	case entity.SortDistance:
		// Records without a distance keep their relative order. Safe because
		// distance is present on every record once a coordinate-based fetch
		// has succeeded.
		sort.SliceStable(bars, func(i, j int) bool {
			if bars[i].Distance == nil || bars[j].Distance == nil {
				return false
			}

			return *bars[i].Distance < *bars[j].Distance
		})
	case entity.SortReviews:
		sort.SliceStable(bars, func(i, j int) bool {
			return reviewCount(bars[i].Description) > reviewCount(bars[j].Description)
		})
	case entity.SortPriceLow:
		sort.SliceStable(bars, func(i, j int) bool {
			return bars[i].PriceLevel < bars[j].PriceLevel
		})
	case entity.SortPriceHigh:
		sort.SliceStable(bars, func(i, j int) bool {
			return bars[i].PriceLevel > bars[j].PriceLevel
		})
	default:
		sort.SliceStable(bars, defaultLess(bars))
	}
}

// defaultLess orders by three levels: records carrying an open/closed flag
// before records without one, open before closed among flagged records, then
// ascending distance when both sides have one, else descending rating.
func defaultLess(bars []*entity.Bar) func(i, j int) bool {
	return func(i, j int) bool {
		a, b := bars[i], bars[j]

		aFlagged := a.IsOpenNow != nil
		bFlagged := b.IsOpenNow != nil
		if aFlagged != bFlagged {
			return aFlagged
		}
		if aFlagged && bFlagged && *a.IsOpenNow != *b.IsOpenNow {
			return *a.IsOpenNow
		}

		if a.Distance != nil && b.Distance != nil && *a.Distance != *b.Distance {
			return *a.Distance < *b.Distance
		}

		return a.Rating > b.Rating
	}
}

// reviewCount parses the review count out of a description.
// Absent or unmatched counts are treated as zero.
func reviewCount(description string) int {
	match := reviewCountPattern.FindStringSubmatch(description)
	if match == nil {
		return 0
	}

	count, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}

	return count
}
