// Package weather talks to the OpenWeather current-weather API and caches
// what it gets back.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ddrozdov/flight-dispatch/internal/models"
)

// Fetcher retrieves a raw observation for an airport's coordinates.
type Fetcher interface {
	Fetch(ctx context.Context, airport models.Airport) (*models.WeatherObservation, error)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Fetch(ctx context.Context, airport models.Airport) (*models.WeatherObservation, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(airport.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(airport.Lon, 'f', -1, 64))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var obs models.WeatherObservation
	if err := json.NewDecoder(resp.Body).Decode(&obs); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	return &obs, nil
}
