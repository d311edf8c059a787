package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	drepo "QAmp/internal/domain/repository"
	"QAmp/pkg/cache"
	xhttp "QAmp/pkg/http"
	"QAmp/pkg/logger"
)

// Client implements a ReturnsSource backed by a Finnhub-style REST candle
// endpoint. It fetches daily closes for the requested lookback period and
// differences them into simple returns, dropping the leading value.
type Client struct {
	baseURL  string
	apiKey   string
	client   *xhttp.Client
	cache    cache.Service
	cacheTTL time.Duration
	log      *logger.Logger
}

// New creates a market-data client. cache may be nil to disable caching.
func New(baseURL, apiKey string, timeout time.Duration, retries int, c cache.Service, cacheTTL time.Duration, log *logger.Logger) drepo.ReturnsSource {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		client:   xhttp.NewClient(xhttp.WithTimeout(timeout), xhttp.WithRetries(retries)),
		cache:    c,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

type candleResponse struct {
	Closes []float64 `json:"c"`
	Times  []int64   `json:"t"`
	Status string    `json:"s"`
}

// DailyReturns fetches daily closes for ticker over period and returns the
// percent-change series. An instrument with no candles yields an empty
// slice, not an error; the engine reports it as no-data.
func (c *Client) DailyReturns(ctx context.Context, ticker, period string) ([]float64, error) {
	key := fmt.Sprintf("returns:%s:%s", ticker, period)
	if c.cache != nil {
		var cached []float64
		if err := c.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	lookback, err := periodLookback(period)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("resolution", "D")
	params.Set("from", strconv.FormatInt(now.Add(-lookback).Unix(), 10))
	params.Set("to", strconv.FormatInt(now.Unix(), 10))
	params.Set("token", c.apiKey)

	var resp candleResponse
	err = c.client.GetJSON(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/stock/candle",
		QueryParams: params,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch candles %s: %w", ticker, err)
	}
	if resp.Status == "no_data" {
		return nil, nil
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("fetch candles %s: provider status %q", ticker, resp.Status)
	}

	returns := PctChange(resp.Closes)
	if c.cache != nil {
		if err := c.cache.Set(ctx, key, returns, c.cacheTTL); err != nil {
			c.log.Warn("returns cache write failed", logger.Error(err), logger.String("ticker", ticker))
		}
	}
	return returns, nil
}

// PctChange differences a close series into simple daily returns,
// r[i] = c[i]/c[i-1] - 1. The leading value has no predecessor and is
// dropped; pairs with a non-positive base close are skipped since a return
// cannot be formed from them.
func PctChange(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev <= 0 {
			continue
		}
		returns = append(returns, closes[i]/prev-1)
	}
	return returns
}

func periodLookback(period string) (time.Duration, error) {
	const day = 24 * time.Hour
	switch period {
	case "1mo":
		return 31 * day, nil
	case "3mo":
		return 92 * day, nil
	case "6mo":
		return 183 * day, nil
	case "1y", "":
		return 365 * day, nil
	case "2y":
		return 2 * 365 * day, nil
	case "5y":
		return 5 * 365 * day, nil
	default:
		return 0, fmt.Errorf("unsupported period %q", period)
	}
}
