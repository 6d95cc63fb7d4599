// Package yelp implements the place provider against the Yelp Fusion API.
package yelp

import (
	"context"
	"encoding/json"
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
)

const (
	defaultBaseURL = "https://api.yelp.com/v3"

	// Documented Yelp Fusion maxima; requests are clamped, never rejected.
	maxRadiusMeters = 40000
	maxLimit        = 50

	// searchCategories restricts search to the bar category set.
	searchCategories = "bars"

	errorBodyLimit = 2048
)

// placeholder credentials that ship in sample configs; treated the same as
// an absent credential.
var placeholderKeys = map[string]struct{}{
	"YOUR_YELP_API_KEY": {},
	"YOUR_API_KEY":      {},
	"CHANGE_ME":         {},
}

// Client is a Yelp Fusion place provider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// New validates the credential before anything else: a blank or placeholder
// key is a configuration error raised here, ahead of any network call.
func New(cfg *config.YelpConfig, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("yelp config missing")
	}

	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, errors.New("yelp api key is missing")
	}
	if _, isPlaceholder := placeholderKeys[key]; isPlaceholder {
		return nil, errors.Errorf("yelp api key is a placeholder value: %s", key)
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

// Search returns nearby bars around center, nearest first.
func (c *Client) Search(ctx context.Context, center entity.Coordinates, radiusMeters, limit int) ([]*entity.Bar, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(center.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(center.Longitude, 'f', -1, 64))
	query.Set("radius", strconv.Itoa(clamp(radiusMeters, maxRadiusMeters)))
	query.Set("limit", strconv.Itoa(clamp(limit, maxLimit)))
	query.Set("categories", searchCategories)
	query.Set("sort_by", "distance")

	var parsed searchResponse
	if err := c.get(ctx, c.baseURL+"/businesses/search?"+query.Encode(), &parsed); err != nil {
		return nil, err
	}

	bars := make([]*entity.Bar, 0, len(parsed.Businesses))
	for _, b := range parsed.Businesses {
		bars = append(bars, normalize(b))
	}

	c.logger.Debug("yelp search completed",
		slog.Int("returned", len(bars)),
		slog.Int("total", parsed.Total),
	)

	return bars, nil
}

// FetchOne returns a single bar by upstream id.
func (c *Client) FetchOne(ctx context.Context, id string) (*entity.Bar, error) {
	var parsed business
	if err := c.get(ctx, c.baseURL+"/businesses/"+url.PathEscape(id), &parsed); err != nil {
		if isNotFound(err) {
			return nil, service.ErrBarNotFound
		}

		return nil, err
	}

	return normalize(parsed), nil
}

// statusError marks upstream non-success outcomes so FetchOne can map 404s.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return "yelp request failed: status " + strconv.Itoa(e.status) + ": " + e.body
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
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
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
		return errors.Wrap(err, "decode yelp response")
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
