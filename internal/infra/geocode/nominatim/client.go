// Package nominatim implements the geocoder against a Nominatim-compatible
// endpoint. No credential is required; the configured user agent identifies
// the service per the usage policy.
package nominatim

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
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "barhop/1.0"

	searchLimit    = 5
	errorBodyLimit = 1024
)

// Client is a Nominatim geocoding client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a geocoding client from config; every field has a default.
func New(cfg *config.GeocodeConfig, logger *slog.Logger) *Client {
	baseURL := defaultBaseURL
	userAgent := defaultUserAgent
	if cfg != nil {
		if strings.TrimSpace(cfg.BaseURL) != "" {
			baseURL = strings.TrimRight(cfg.BaseURL, "/")
		}
		if strings.TrimSpace(cfg.UserAgent) != "" {
			userAgent = cfg.UserAgent
		}
	}

	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

var _ service.Geocoder = (*Client)(nil)

// searchResult is one Nominatim search response entry. Coordinates arrive as
// strings and are parsed during mapping.
type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// reverseResult is a Nominatim reverse response.
type reverseResult struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
	} `json:"address"`
}

// SearchPlace converts a free-text query into zero or more candidates.
func (c *Client) SearchPlace(ctx context.Context, query string) ([]service.GeocodeCandidate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(searchLimit))

	var results []searchResult
	if err := c.get(ctx, c.baseURL+"/search?"+params.Encode(), &results); err != nil {
		return nil, err
	}

	candidates := make([]service.GeocodeCandidate, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			c.logger.Warn("skipping geocode result with unparsable coordinates",
				slog.String("display_name", r.DisplayName),
			)

			continue
		}
		candidates = append(candidates, service.GeocodeCandidate{
			Latitude:    lat,
			Longitude:   lon,
			DisplayName: r.DisplayName,
		})
	}

	return candidates, nil
}

// ReverseLocality converts a coordinate into a locality name, preferring the
// most specific settlement field present.
func (c *Client) ReverseLocality(ctx context.Context, coord entity.Coordinates) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Set("format", "json")

	var result reverseResult
	if err := c.get(ctx, c.baseURL+"/reverse?"+params.Encode(), &result); err != nil {
		return "", err
	}

	for _, name := range []string{
		result.Address.City,
		result.Address.Town,
		result.Address.Village,
		result.Address.Municipality,
	} {
		if name != "" {
			return name, nil
		}
	}

	return result.DisplayName, nil
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))

		return errors.Errorf("nominatim request failed: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode nominatim response")
	}

	return nil
}
