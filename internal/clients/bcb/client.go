// Package bcb fetches the benchmark (Selic) rate from the Banco Central do
// Brasil SGS time-series API.
package bcb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/clientdata"
	"github.com/vantez/engine/internal/utils"
)

const (
	// SelicSeries is the SGS series of the annualized Selic target
	SelicSeries = "4189"
	// DefaultURL returns the latest observation of SelicSeries
	DefaultURL = "https://api.bcb.gov.br/dados/serie/bcdata.sgs.4189/dados/ultimos/1?formato=json"
)

// Quote sources
const (
	SourceAPI      = "api"
	SourceCache    = "cache"
	SourceStale    = "stale_cache"
	SourceFallback = "fallback"
)

// Quote is a benchmark rate observation in percent per year
type Quote struct {
	Rate   float64 `json:"rate"`
	Date   string  `json:"date,omitempty"`
	Source string  `json:"source"`
}

// observation is one entry of the SGS response
type observation struct {
	Data  string `json:"data"`
	Valor string `json:"valor"`
}

// Client for the BCB SGS API
type Client struct {
	url       string
	fallback  float64
	client    *http.Client
	log       zerolog.Logger
	cacheRepo *clientdata.Repository
}

// NewClient creates a BCB client. cacheRepo is optional; if nil, caching is
// disabled. fallback is returned by CurrentRate when nothing else is available.
func NewClient(url string, fallback float64, cacheRepo *clientdata.Repository, log zerolog.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:       url,
		fallback:  fallback,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log.With().Str("client", "bcb").Logger(),
		cacheRepo: cacheRepo,
	}
}

// CurrentRate returns the latest Selic rate, never failing: fresh cache,
// then the API, then stale cache, then the fallback.
func (c *Client) CurrentRate(ctx context.Context) float64 {
	return c.Quote(ctx).Rate
}

// Quote is CurrentRate with the observation date and where it came from
func (c *Client) Quote(ctx context.Context) Quote {
	if cached, ok := c.fromCache(false); ok {
		cached.Source = SourceCache
		c.log.Debug().Float64("rate", cached.Rate).Msg("Cache hit")
		return cached
	}

	quote, err := c.Fetch(ctx)
	if err == nil {
		return quote
	}

	if stale, ok := c.fromCache(true); ok {
		c.log.Warn().Err(err).Float64("rate", stale.Rate).Msg("API failed, using stale cached rate")
		stale.Source = SourceStale
		return stale
	}

	c.log.Warn().Err(err).Float64("rate", c.fallback).Msg("API failed, using fallback rate")
	return Quote{Rate: c.fallback, Source: SourceFallback}
}

// Fetch queries the API directly and refreshes the cache on success
func (c *Client) Fetch(ctx context.Context) (Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("url", c.url).Msg("Fetching benchmark rate")

	resp, err := c.client.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var observations []observation
	if err := json.NewDecoder(resp.Body).Decode(&observations); err != nil {
		return Quote{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(observations) == 0 {
		return Quote{}, errors.New("response has no observations")
	}

	latest := observations[len(observations)-1]
	rate, ok := utils.ParseNumber(latest.Valor)
	if !ok || rate <= 0 {
		return Quote{}, fmt.Errorf("invalid rate %q", latest.Valor)
	}

	quote := Quote{Rate: rate, Date: latest.Data, Source: SourceAPI}

	if c.cacheRepo != nil {
		if err := c.cacheRepo.Store(clientdata.TableBenchmarkRates, SelicSeries, quote, clientdata.TTLBenchmarkRate); err != nil {
			c.log.Warn().Err(err).Msg("Failed to cache benchmark rate")
		}
	}

	c.log.Info().Float64("rate", rate).Str("date", latest.Data).Msg("Fetched benchmark rate")
	return quote, nil
}

func (c *Client) fromCache(allowStale bool) (Quote, bool) {
	if c.cacheRepo == nil {
		return Quote{}, false
	}

	var (
		data json.RawMessage
		err  error
	)
	if allowStale {
		data, err = c.cacheRepo.Get(clientdata.TableBenchmarkRates, SelicSeries)
	} else {
		data, err = c.cacheRepo.GetIfFresh(clientdata.TableBenchmarkRates, SelicSeries)
	}
	if err != nil || data == nil {
		return Quote{}, false
	}

	var q Quote
	if err := json.Unmarshal(data, &q); err != nil || q.Rate <= 0 {
		return Quote{}, false
	}
	return q, true
}
