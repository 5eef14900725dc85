// Package nobilapi is the HTTP adapter for the Nobil search API and its
// realtime status proxy.
package nobilapi

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

	"golang.org/x/time/rate"

	"github.com/robho/nobil-etl-service/internal/availability"
	"github.com/robho/nobil-etl-service/internal/domain"
	"github.com/robho/nobil-etl-service/internal/nobil"
	"github.com/robho/nobil-etl-service/internal/observability"
)

// Shared request constants of the Nobil search API.
const (
	actionSearch  = "search"
	formatJSON    = "json"
	apiVersion    = "3"
	typeRectangle = "rectangle"
	typeNear      = "near"
	typeID        = "id"
)

// Client talks to the Nobil search API and the realtime status endpoint.
// All outbound calls pass through a shared rate limiter; the provider asks
// integrators to keep request rates modest.
type Client struct {
	apiKey        string
	searchURL     string
	statusBaseURL string
	httpClient    *http.Client
	limiter       *rate.Limiter
	logger        *slog.Logger
	metrics       *observability.Metrics
}

// Options configures a Client.
type Options struct {
	APIKey        string
	SearchURL     string
	StatusBaseURL string
	Timeout       time.Duration
	// RequestsPerSecond caps outbound calls; zero disables limiting.
	RequestsPerSecond float64
}

// NewClient creates a Nobil API client.
func NewClient(opts Options, logger *slog.Logger, metrics *observability.Metrics) *Client {
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	return &Client{
		apiKey:        opts.APIKey,
		searchURL:     opts.SearchURL,
		statusBaseURL: strings.TrimSuffix(opts.StatusBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
		metrics: metrics,
	}
}

// RectangleSearch fetches raw stations inside a bounding box.
func (c *Client) RectangleSearch(ctx context.Context, northEast, southWest domain.Coordinate, limit int) ([]nobil.ChargerStation, error) {
	form := c.baseForm(typeRectangle)
	form.Set("northeast", nobil.FormatCoordinate(northEast))
	form.Set("southwest", nobil.FormatCoordinate(southWest))
	form.Set("limit", strconv.Itoa(limit))
	return c.search(ctx, typeRectangle, form)
}

// RadiusSearch fetches raw stations around a point, distance in meters.
func (c *Client) RadiusSearch(ctx context.Context, lat, long, distance float64, limit int) ([]nobil.ChargerStation, error) {
	form := c.baseForm(typeNear)
	form.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	form.Set("long", strconv.FormatFloat(long, 'f', -1, 64))
	form.Set("distance", strconv.FormatFloat(distance, 'f', -1, 64))
	form.Set("limit", strconv.Itoa(limit))
	return c.search(ctx, typeNear, form)
}

// DetailSearch fetches a single raw station by id.
func (c *Client) DetailSearch(ctx context.Context, id string) (*nobil.ChargerStation, error) {
	form := c.baseForm(typeID)
	form.Set("id", id)
	stations, err := c.search(ctx, typeID, form)
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		return nil, nil
	}
	return &stations[0], nil
}

// StationStatus fetches live status rows for a composite station id. It
// implements availability.StatusSource.
func (c *Client) StationStatus(ctx context.Context, compositeID string) ([]availability.StatusRow, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statusBaseURL+"/"+url.PathEscape(compositeID), nil)
	if err != nil {
		return nil, fmt.Errorf("create status request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.StatusRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("status request for %s: %w", compositeID, err)
	}
	defer resp.Body.Close()
	c.metrics.StatusDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		c.metrics.StatusRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status API error for %s: status %d: %s", compositeID, resp.StatusCode, body)
	}

	var payload locationResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.StatusRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	c.metrics.StatusRequests.WithLabelValues("success").Inc()

	rows := make([]availability.StatusRow, len(payload.Chargeports))
	for i, p := range payload.Chargeports {
		rows[i] = availability.StatusRow{
			EvseID:    p.EvseUID,
			Status:    p.Status,
			Timestamp: p.Timestamp,
		}
	}
	return rows, nil
}

func (c *Client) baseForm(searchType string) url.Values {
	return url.Values{
		"apikey":     {c.apiKey},
		"action":     {actionSearch},
		"type":       {searchType},
		"format":     {formatJSON},
		"apiversion": {apiVersion},
	}
}

func (c *Client) search(ctx context.Context, searchType string, form url.Values) ([]nobil.ChargerStation, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.SearchRequests.WithLabelValues(searchType, "error").Inc()
		return nil, fmt.Errorf("%s search request: %w", searchType, err)
	}
	defer resp.Body.Close()
	c.metrics.SearchDuration.WithLabelValues(searchType).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		c.metrics.SearchRequests.WithLabelValues(searchType, "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search API error: status %d: %s", resp.StatusCode, body)
	}

	var payload nobil.ResponseData
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.SearchRequests.WithLabelValues(searchType, "error").Inc()
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if err := payload.Err(); err != nil {
		c.metrics.SearchRequests.WithLabelValues(searchType, "error").Inc()
		return nil, err
	}

	c.metrics.SearchRequests.WithLabelValues(searchType, "success").Inc()
	return payload.ChargerStations, nil
}

// Realtime status response types.

type locationResponse struct {
	Chargeports []chargeport `json:"chargeports"`
}

type chargeport struct {
	EvseUID   string `json:"evseUid"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}
