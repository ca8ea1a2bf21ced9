package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Zachdehooge/state-alerts/internal/observability"
	"github.com/Zachdehooge/state-alerts/internal/region"
)

// DefaultEndpoint is the NWS active alerts collection.
const DefaultEndpoint = "https://api.weather.gov/alerts/active"

// AlertResponse is the decoded alerts collection. Features may be empty.
type AlertResponse struct {
	Title    string         `json:"title"`
	Updated  string         `json:"updated,omitempty"`
	Features []AlertFeature `json:"features"`
}

// AlertFeature is one active alert
type AlertFeature struct {
	ID         string          `json:"id,omitempty"`
	Properties AlertProperties `json:"properties"`
}

// AlertProperties holds the alert fields the widget reads. Everything else in
// the payload is ignored.
type AlertProperties struct {
	Headline string `json:"headline"`
	Event    string `json:"event,omitempty"`
	Severity string `json:"severity,omitempty"`
	AreaDesc string `json:"areaDesc,omitempty"`
}

// NetworkError is a transport failure or a non-2xx response.
type NetworkError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Failed to fetch alerts: %v", e.Err)
	}
	return fmt.Sprintf("Failed to fetch alerts: %s", e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError means the body was not JSON or lacked a features array.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Failed to parse alerts: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var errMissingFeatures = errors.New("response has no features array")

// Client fetches active alerts for a single area.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     logrus.FieldLogger
}

// NewClient creates an alerts client. A zero timeout leaves the transport
// default in place.
func NewClient(endpoint, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger logrus.FieldLogger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
		logger:     logger,
	}
}

// URL returns the request URL for code. Any query the endpoint already
// carries is kept and area is set alongside it.
func (c *Client) URL(code region.Code) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("area", code.String())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchAlerts issues one GET for code. It does not retry.
func (c *Client) FetchAlerts(ctx context.Context, code region.Code) (AlertResponse, error) {
	start := time.Now()
	resp, outcome, err := c.fetch(ctx, code)
	c.metrics.ObserveFetch(outcome, time.Since(start))

	log := c.logger.WithFields(logrus.Fields{"area": code, "outcome": outcome})
	if err != nil {
		log.WithField("error", err).Debug("alerts fetch failed")
		return AlertResponse{}, err
	}
	log.WithField("count", len(resp.Features)).Debug("alerts fetched")
	return resp, nil
}

func (c *Client) fetch(ctx context.Context, code region.Code) (AlertResponse, string, error) {
	reqURL, err := c.URL(code)
	if err != nil {
		return AlertResponse{}, observability.OutcomeTransportError, &NetworkError{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return AlertResponse{}, observability.OutcomeTransportError, &NetworkError{Err: fmt.Errorf("create request: %w", err)}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return AlertResponse{}, observability.OutcomeTransportError, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return AlertResponse{}, observability.OutcomeHTTPError, &NetworkError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return AlertResponse{}, observability.OutcomeTransportError, &NetworkError{Err: fmt.Errorf("read body: %w", err)}
	}

	data, err := decode(body)
	if err != nil {
		return AlertResponse{}, observability.OutcomeParseError, &ParseError{Err: err}
	}
	return data, observability.OutcomeSuccess, nil
}

func decode(body []byte) (AlertResponse, error) {
	var apiResp struct {
		Title    string          `json:"title"`
		Updated  string          `json:"updated"`
		Features *[]AlertFeature `json:"features"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return AlertResponse{}, err
	}
	if apiResp.Features == nil {
		return AlertResponse{}, errMissingFeatures
	}
	return AlertResponse{
		Title:    apiResp.Title,
		Updated:  apiResp.Updated,
		Features: *apiResp.Features,
	}, nil
}
