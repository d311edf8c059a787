package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"QAmp/internal/domain/models"
	"QAmp/internal/engine"
	"QAmp/pkg/logger"
)

// fakeSource serves canned return series per ticker.
type fakeSource struct {
	series map[string][]float64
	errs   map[string]error
}

func (f *fakeSource) DailyReturns(_ context.Context, ticker, _ string) ([]float64, error) {
	if err, ok := f.errs[ticker]; ok {
		return nil, err
	}
	return f.series[ticker], nil
}

type fakeStore struct {
	mu     sync.Mutex
	stored map[string]*models.EstimationResult
	err    error
}

func (f *fakeStore) Store(_ context.Context, ticker string, res *models.EstimationResult) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stored == nil {
		f.stored = make(map[string]*models.EstimationResult)
	}
	f.stored[ticker] = res
	return nil
}

func (f *fakeStore) Health(context.Context) error { return nil }

type fakePublisher struct {
	mu        sync.Mutex
	published []string
}

func (f *fakePublisher) Publish(_ context.Context, ticker string, _ *models.EstimationResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, ticker)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func boolPtr(b bool) *bool { return &b }

func newTestEstimator(source *fakeSource, available bool) *BatchEstimator {
	return NewBatchEstimator(source, nil, nil, nil, logger.Nop(),
		engine.QuantumConfig{NoiseSigma: 0.01, Available: available}, 2)
}

func TestEstimateBatchClassical(t *testing.T) {
	source := &fakeSource{series: map[string][]float64{
		"AAPL": {0.01, -0.02, 0.03, 0.04, -0.01},
	}}
	u := newTestEstimator(source, true)

	results, err := u.EstimateBatch(context.Background(), &models.EstimateRequest{
		Tickers:    []string{"AAPL"},
		Period:     "1y",
		UseQuantum: boolPtr(false),
		Shots:      1024,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, ok := results["AAPL"]
	if !ok {
		t.Fatalf("missing AAPL entry")
	}
	if out.Error != "" {
		t.Fatalf("unexpected error entry: %v", out.Error)
	}
	if out.Method != models.MethodClassical {
		t.Fatalf("expected method classical, got %v", out.Method)
	}
	if out.ClassicalPositiveProb != 0.6 || out.NSamples != 5 {
		t.Fatalf("unexpected result: %+v", out.EstimationResult)
	}
}

func TestEstimateBatchIsolatesFailures(t *testing.T) {
	source := &fakeSource{
		series: map[string][]float64{
			"GOOD":  {0.01, -0.01, 0.02},
			"EMPTY": {},
		},
		errs: map[string]error{
			"BROKEN": fmt.Errorf("provider down"),
		},
	}
	u := newTestEstimator(source, true)

	results, err := u.EstimateBatch(context.Background(), &models.EstimateRequest{
		Tickers:    []string{"GOOD", "EMPTY", "BROKEN"},
		Period:     "1y",
		UseQuantum: boolPtr(false),
		Shots:      256,
	})
	if err != nil {
		t.Fatalf("one bad instrument must not abort the batch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("every requested ticker needs an entry, got %d", len(results))
	}
	if results["GOOD"].Error != "" || results["GOOD"].EstimationResult == nil {
		t.Fatalf("GOOD should succeed: %+v", results["GOOD"])
	}
	if results["EMPTY"].Error != "no data" {
		t.Fatalf("expected no-data entry for EMPTY, got %+v", results["EMPTY"])
	}
	if results["EMPTY"].EstimationResult != nil {
		t.Fatalf("no-data entries carry no result fields")
	}
	if results["BROKEN"].Error != "market data unavailable" {
		t.Fatalf("expected market-data error for BROKEN, got %+v", results["BROKEN"])
	}
}

func TestEstimateBatchFallbackOnUnavailableBackend(t *testing.T) {
	samples := []float64{0.01, -0.02, 0.03, 0.04, -0.01}
	source := &fakeSource{series: map[string][]float64{"MSFT": samples}}
	u := newTestEstimator(source, false)

	results, err := u.EstimateBatch(context.Background(), &models.EstimateRequest{
		Tickers: []string{"MSFT"},
		Period:  "1y",
		Shots:   1024, // use_quantum defaults to true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := results["MSFT"]
	if out.Method != models.MethodClassicalFallback {
		t.Fatalf("expected classical_fallback, got %v", out.Method)
	}
	if want := engine.ClassicalPositiveProb(samples); out.QuantumPositiveProb != want {
		t.Fatalf("fallback value must equal classical estimate %v, got %v", want, out.QuantumPositiveProb)
	}
}

func TestEstimateBatchInvalidConfiguration(t *testing.T) {
	u := newTestEstimator(&fakeSource{}, true)

	if _, err := u.EstimateBatch(context.Background(), &models.EstimateRequest{Shots: 1024}); err == nil {
		t.Fatalf("expected error for empty tickers")
	}
	if _, err := u.EstimateBatch(context.Background(), &models.EstimateRequest{
		Tickers: []string{"AAPL"},
		Shots:   0,
	}); err == nil {
		t.Fatalf("expected error for non-positive shots")
	}
}

func TestEstimateBatchPersistsResults(t *testing.T) {
	source := &fakeSource{series: map[string][]float64{"AAPL": {0.01, -0.02}}}
	store := &fakeStore{}
	pub := &fakePublisher{}
	u := newTestEstimator(source, true)
	u.store = store
	u.pub = pub

	_, err := u.EstimateBatch(context.Background(), &models.EstimateRequest{
		Tickers:    []string{"AAPL"},
		UseQuantum: boolPtr(false),
		Shots:      128,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.stored["AAPL"] == nil {
		t.Fatalf("result was not stored")
	}
	if len(pub.published) != 1 || pub.published[0] != "AAPL" {
		t.Fatalf("result was not published: %v", pub.published)
	}
}

func TestTimeseries(t *testing.T) {
	source := &fakeSource{
		series: map[string][]float64{
			"AAPL":  {0.01, -0.02},
			"EMPTY": {},
		},
	}
	u := newTestEstimator(source, true)

	results, err := u.Timeseries(context.Background(), &models.TimeseriesRequest{
		Tickers: []string{"AAPL", "EMPTY"},
		Period:  "1y",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results["AAPL"].Returns) != 2 {
		t.Fatalf("expected 2 returns for AAPL, got %+v", results["AAPL"])
	}
	if results["EMPTY"].Error != "no data" {
		t.Fatalf("expected no-data entry for EMPTY, got %+v", results["EMPTY"])
	}
}
