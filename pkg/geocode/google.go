package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// GoogleClient resolves postal codes with the Google Geocoding API. Calls are
// throttled client-side to stay under the account quota.
type GoogleClient struct {
	baseURL string
	apiKey  string
	region  string
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

type GoogleOptions struct {
	BaseURL       string
	APIKey        string
	Region        string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

func NewGoogleClient(opts GoogleOptions, log *zap.Logger) *GoogleClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}

	return &GoogleClient{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		region:  opts.Region,
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(limit, opts.Burst),
		log:     log.With(zap.String("geocoder", "google")),
	}
}

type googleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *GoogleClient) Lookup(ctx context.Context, postalCode string) (Point, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Point{}, fmt.Errorf("geocode rate limit: %w", err)
	}

	components := "postal_code:" + postalCode
	if c.region != "" {
		components += "|country:" + strings.ToUpper(c.region)
	}
	q := url.Values{}
	q.Set("components", components)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Point{}, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Point{}, fmt.Errorf("geocode %s: %w", postalCode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Point{}, fmt.Errorf("geocode %s: unexpected status %d", postalCode, resp.StatusCode)
	}

	var body googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Point{}, fmt.Errorf("decode geocode response: %w", err)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return Point{}, fmt.Errorf("geocode %s: %w", postalCode, ErrNotFound)
	default:
		c.log.Warn("Geocode request rejected",
			zap.String("postal_code", postalCode),
			zap.String("status", body.Status),
			zap.String("error_message", body.ErrorMessage),
		)
		return Point{}, fmt.Errorf("geocode %s: provider status %s", postalCode, body.Status)
	}
	if len(body.Results) == 0 {
		return Point{}, fmt.Errorf("geocode %s: %w", postalCode, ErrNotFound)
	}

	loc := body.Results[0].Geometry.Location
	return Point{Lat: loc.Lat, Lon: loc.Lng}, nil
}
