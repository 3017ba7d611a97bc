// Package client is the browser's data access layer: it loads the company
// snapshot and per-company founders from the directory HTTP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gartstein/efportfolio/internal/portfolio/engine"
	e "github.com/gartstein/efportfolio/internal/portfolio/errors"
	"github.com/gartstein/efportfolio/internal/portfolio/models"
	"go.uber.org/zap"
)

// Source is where the browser reads its data from.
type Source interface {
	LoadCompanies(ctx context.Context) ([]models.Company, error)
	LoadFounders(ctx context.Context, companyID int64) ([]models.Founder, error)
}

const DefaultTimeout = 10 * time.Second

// HTTPClient talks to a running directory server.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewHTTPClient returns a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, httpClient *http.Client, logger *zap.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: api url %q", e.ErrInvalidInput, baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger.Named("api_client"),
	}, nil
}

// LoadCompanies issues one GET for the whole snapshot. Any transport
// failure or non-2xx response is a *errors.NetworkError; there is no retry.
func (c *HTTPClient) LoadCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := c.getJSON(ctx, "/api/companies", &companies); err != nil {
		return nil, err
	}
	for i := range companies {
		if _, err := models.ParseStatus(string(companies[i].Status)); err != nil {
			return nil, fmt.Errorf("company %d: %w", companies[i].ID, err)
		}
	}
	if companies == nil {
		companies = []models.Company{}
	}
	return companies, nil
}

// LoadFounders fetches the founders of one company and removes repeated
// education and employer entries. Failures wrap errors.ErrFounderLookup.
func (c *HTTPClient) LoadFounders(ctx context.Context, companyID int64) ([]models.Founder, error) {
	var founders []models.Founder
	path := "/api/companies/" + strconv.FormatInt(companyID, 10) + "/founders"
	if err := c.getJSON(ctx, path, &founders); err != nil {
		c.logger.Debug("Founder lookup failed", zap.Int64("company_id", companyID), zap.Error(err))
		return nil, fmt.Errorf("%w: company %d: %w", e.ErrFounderLookup, companyID, err)
	}
	out := make([]models.Founder, 0, len(founders))
	for _, f := range founders {
		out = append(out, engine.DedupFounder(f))
	}
	return out, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, into interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &e.NetworkError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &e.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &e.NetworkError{StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
