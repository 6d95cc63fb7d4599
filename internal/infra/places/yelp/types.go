package yelp

import (
	"fmt"
	"strings"

	"barhop/internal/domain/entity"
	"barhop/internal/infra/places/classify"
)

// searchResponse is the payload of GET /businesses/search.
type searchResponse struct {
	Businesses []business `json:"businesses"`
	Total      int        `json:"total"`
}

// business is one Yelp Fusion business object, shared by search and detail
// responses. Optional fields stay pointers or zero values; normalization is
// total and never fails on missing optional data.
type business struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ImageURL    string  `json:"image_url"`
	ReviewCount int     `json:"review_count"`
	Rating      float64 `json:"rating"`
	Price       string  `json:"price"`

	Categories []struct {
		Alias string `json:"alias"`
		Title string `json:"title"`
	} `json:"categories"`

	Coordinates struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`

	Location struct {
		DisplayAddress []string `json:"display_address"`
	} `json:"location"`

	Phone        string   `json:"phone"`
	DisplayPhone string   `json:"display_phone"`
	Distance     *float64 `json:"distance"`

	// Search responses carry business_hours, detail responses carry hours.
	BusinessHours []hoursBlock `json:"business_hours"`
	Hours         []hoursBlock `json:"hours"`
}

type hoursBlock struct {
	HoursType string `json:"hours_type"`
	IsOpenNow bool   `json:"is_open_now"`
	Open      []struct {
		IsOvernight bool   `json:"is_overnight"`
		Start       string `json:"start"`
		End         string `json:"end"`
		Day         int    `json:"day"`
	} `json:"open"`
}

// normalize maps a Yelp business into the provider-independent Bar record.
// The upstream (latitude, longitude) pair is written in GeoJSON axis order,
// longitude first.
func normalize(b business) *entity.Bar {
	labels := make([]string, 0, len(b.Categories))
	for _, c := range b.Categories {
		labels = append(labels, c.Title)
	}

	category := classify.Category(labels)

	bar := &entity.Bar{
		ID:           b.ID,
		Name:         b.Name,
		Category:     category,
		Coordinates:  entity.NewLonLat(b.Coordinates.Longitude, b.Coordinates.Latitude),
		Address:      strings.Join(b.Location.DisplayAddress, ", "),
		Rating:       b.Rating,
		Image:        classify.Image(b.ImageURL, labels),
		Description:  fmt.Sprintf("%s · %d reviews", category, b.ReviewCount),
		PriceLevel:   classify.PriceLevel(b.Price),
		Phone:        b.Phone,
		DisplayPhone: b.DisplayPhone,
		Distance:     b.Distance,
		Labels:       labels,
	}

	blocks := b.BusinessHours
	if len(blocks) == 0 {
		blocks = b.Hours
	}
	if len(blocks) > 0 {
		block := blocks[0]
		isOpen := block.IsOpenNow
		bar.IsOpenNow = &isOpen
		for _, interval := range block.Open {
			bar.Hours = append(bar.Hours, entity.OpenInterval{
				Day:       interval.Day,
				Start:     interval.Start,
				End:       interval.End,
				Overnight: interval.IsOvernight,
			})
		}
	}

	return bar
}
