// Package foursquare implements the place provider against the Foursquare
// Places API, as a drop-in variant of the Yelp adapter.
package foursquare

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"barhop/config"
	"barhop/internal/domain/entity"
	"barhop/internal/domain/service"
	"barhop/internal/errors"
	"barhop/internal/infra/places/classify"
)

const (
	defaultBaseURL = "https://api.foursquare.com/v3"

	// Documented Foursquare maxima; requests are clamped, never rejected.
	maxRadiusMeters = 100000
	maxLimit        = 50

	// barCategoryID is the Foursquare taxonomy id for "Bar".
	barCategoryID = "13003"

	errorBodyLimit = 2048
)

var placeholderKeys = map[string]struct{}{
	"YOUR_FOURSQUARE_API_KEY": {},
	"YOUR_API_KEY":            {},
	"CHANGE_ME":               {},
}

// Client is a Foursquare place provider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// New validates the credential before anything else, like the Yelp adapter.
func New(cfg *config.FoursquareConfig, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("foursquare config missing")
	}

	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, errors.New("foursquare api key is missing")
	}
	if _, isPlaceholder := placeholderKeys[key]; isPlaceholder {
		return nil, errors.Errorf("foursquare api key is a placeholder value: %s", key)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  key,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

var _ service.PlaceProvider = (*Client)(nil)

type searchResponse struct {
	Results []place `json:"results"`
}

// place is one Foursquare place object. Rating is on a 0-10 scale upstream
// and halved during normalization; price is already a 1-4 tier.
type place struct {
	FsqID      string `json:"fsq_id"`
	Name       string `json:"name"`
	Categories []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
		Icon struct {
			Prefix string `json:"prefix"`
			Suffix string `json:"suffix"`
		} `json:"icon"`
	} `json:"categories"`
	Distance *float64 `json:"distance"`
	Geocodes struct {
		Main struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"main"`
	} `json:"geocodes"`
	Location struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"location"`
	Price  int     `json:"price"`
	Rating float64 `json:"rating"`
	Stats  struct {
		TotalRatings int `json:"total_ratings"`
	} `json:"stats"`
	Hours *struct {
		OpenNow bool `json:"open_now"`
		Regular []struct {
			Day   int    `json:"day"`
			Open  string `json:"open"`
			Close string `json:"close"`
		} `json:"regular"`
	} `json:"hours"`
	Tel string `json:"tel"`
}

// Search returns nearby bars around center, nearest first.
func (c *Client) Search(ctx context.Context, center entity.Coordinates, radiusMeters, limit int) ([]*entity.Bar, error) {
	query := url.Values{}
	query.Set("ll", fmt.Sprintf("%f,%f", center.Latitude, center.Longitude))
	query.Set("radius", strconv.Itoa(clamp(radiusMeters, maxRadiusMeters)))
	query.Set("limit", strconv.Itoa(clamp(limit, maxLimit)))
	query.Set("categories", barCategoryID)
	query.Set("sort", "DISTANCE")

	var parsed searchResponse
	if err := c.get(ctx, c.baseURL+"/places/search?"+query.Encode(), &parsed); err != nil {
		return nil, err
	}

	bars := make([]*entity.Bar, 0, len(parsed.Results))
	for _, p := range parsed.Results {
		bars = append(bars, normalize(p))
	}

	c.logger.Debug("foursquare search completed", slog.Int("returned", len(bars)))

	return bars, nil
}

// FetchOne returns a single bar by upstream id.
func (c *Client) FetchOne(ctx context.Context, id string) (*entity.Bar, error) {
	var parsed place
	if err := c.get(ctx, c.baseURL+"/places/"+url.PathEscape(id), &parsed); err != nil {
		if isNotFound(err) {
			return nil, service.ErrBarNotFound
		}

		return nil, err
	}

	return normalize(parsed), nil
}

func normalize(p place) *entity.Bar {
	labels := make([]string, 0, len(p.Categories))
	for _, cat := range p.Categories {
		labels = append(labels, cat.Name)
	}

	category := classify.Category(labels)

	var icon string
	if len(p.Categories) > 0 && p.Categories[0].Icon.Prefix != "" {
		icon = p.Categories[0].Icon.Prefix + "88" + p.Categories[0].Icon.Suffix
	}

	price := p.Price
	if price < 1 || price > 4 {
		price = 2
	}

	bar := &entity.Bar{
		ID:          p.FsqID,
		Name:        p.Name,
		Category:    category,
		Coordinates: entity.NewLonLat(p.Geocodes.Main.Longitude, p.Geocodes.Main.Latitude),
		Address:     p.Location.FormattedAddress,
		Rating:      p.Rating / 2, // Foursquare rates 0-10, records use 0-5
		Image:       classify.Image(icon, labels),
		Description: fmt.Sprintf("%s · %d reviews", category, p.Stats.TotalRatings),
		PriceLevel:  price,
		Phone:       p.Tel,
		Distance:    p.Distance,
		Labels:      labels,
	}

	if p.Hours != nil {
		openNow := p.Hours.OpenNow
		bar.IsOpenNow = &openNow
		for _, interval := range p.Hours.Regular {
			bar.Hours = append(bar.Hours, entity.OpenInterval{
				// Foursquare counts days from 1=Monday; records use 0=Monday.
				Day:       interval.Day - 1,
				Start:     interval.Open,
				End:       interval.Close,
				Overnight: interval.Close < interval.Open,
			})
		}
	}

	return bar
}

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return "foursquare request failed: status " + strconv.Itoa(e.status) + ": " + e.body
}

func isNotFound(err error) bool {
	var se *statusError

	return errors.As(err, &se) && se.status == http.StatusNotFound
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))

		return errors.WithStack(&statusError{status: resp.StatusCode, body: string(body)})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode foursquare response")
	}

	return nil
}

func clamp(value, max int) int {
	if value > max {
		return max
	}
	if value < 1 {
		return 1
	}

	return value
}
