package nominatim

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"barhop/config"
	"barhop/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return New(&config.GeocodeConfig{BaseURL: baseURL, UserAgent: "barhop-test/1.0"},
		slog.New(slog.DiscardHandler))
}

func TestClient_SearchPlace(t *testing.T) {
	var gotUserAgent, gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		gotUserAgent = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("q")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"display_name": "Bergen, Vestland, Norway", "lat": "60.3913", "lon": "5.3221"},
			{"display_name": "Bergen, Limburg, Netherlands", "lat": "51.6", "lon": "6.04"},
			{"display_name": "Broken Entry", "lat": "not-a-number", "lon": "5.0"}
		]`))
	}))
	defer server.Close()

	candidates, err := newTestClient(server.URL).SearchPlace(context.Background(), "Bergen")
	require.NoError(t, err)

	assert.Equal(t, "barhop-test/1.0", gotUserAgent)
	assert.Equal(t, "Bergen", gotQuery)

	// The unparsable entry is skipped, not fatal.
	require.Len(t, candidates, 2)
	assert.Equal(t, "Bergen, Vestland, Norway", candidates[0].DisplayName)
	assert.Equal(t, 60.3913, candidates[0].Latitude)
	assert.Equal(t, 5.3221, candidates[0].Longitude)
}

func TestClient_SearchPlace_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	candidates, err := newTestClient(server.URL).SearchPlace(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestClient_ReverseLocality_PrefersMostSpecific(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{
			"city wins over municipality",
			`{"display_name": "Full Address", "address": {"city": "Bergen", "municipality": "Bergen kommune"}}`,
			"Bergen",
		},
		{
			"town when no city",
			`{"display_name": "Full Address", "address": {"town": "Voss", "municipality": "Voss herad"}}`,
			"Voss",
		},
		{
			"village when no city or town",
			`{"display_name": "Full Address", "address": {"village": "Flåm"}}`,
			"Flåm",
		},
		{
			"display name as last resort",
			`{"display_name": "Somewhere remote", "address": {}}`,
			"Somewhere remote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/reverse", r.URL.Path)
				assert.Equal(t, "60.3913", r.URL.Query().Get("lat"))
				assert.Equal(t, "5.3221", r.URL.Query().Get("lon"))

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.payload))
			}))
			defer server.Close()

			name, err := newTestClient(server.URL).ReverseLocality(context.Background(),
				entity.Coordinates{Latitude: 60.3913, Longitude: 5.3221})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestClient_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SearchPlace(context.Background(), "Bergen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
