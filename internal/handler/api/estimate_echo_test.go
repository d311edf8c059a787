package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"QAmp/internal/engine"
	"QAmp/internal/usecase"
	xlogger "QAmp/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubSource struct {
	series map[string][]float64
}

func (s *stubSource) DailyReturns(_ context.Context, ticker, _ string) ([]float64, error) {
	return s.series[ticker], nil
}

func newTestServer(series map[string][]float64) *echo.Echo {
	est := usecase.NewBatchEstimator(
		&stubSource{series: series}, nil, nil, nil, xlogger.Nop(),
		engine.QuantumConfig{NoiseSigma: 0.01, Available: true}, 2,
	)
	h := NewEstimateEchoHandler(xlogger.Nop(), est)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func postJSON(t *testing.T, e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type apiEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestEstimateEndpointClassical(t *testing.T) {
	e := newTestServer(map[string][]float64{
		"AAPL": {0.01, -0.02, 0.03, 0.04, -0.01},
	})

	rec := postJSON(t, e, "/api/estimate",
		`{"tickers":["AAPL"],"period":"1y","use_quantum":false}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("expected payload status 200, got %d", env.Status)
	}

	var data struct {
		Status  string `json:"status"`
		Results map[string]struct {
			ClassicalMean         float64 `json:"classical_mean"`
			ClassicalPositiveProb float64 `json:"classical_positive_prob"`
			QuantumPositiveProb   float64 `json:"quantum_positive_prob"`
			Method                string  `json:"method_used"`
			NSamples              int     `json:"n_samples"`
			Error                 string  `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Status != "ok" {
		t.Fatalf("expected status ok, got %q", data.Status)
	}
	res := data.Results["AAPL"]
	if res.Method != "classical" {
		t.Fatalf("expected method classical, got %q", res.Method)
	}
	if res.ClassicalPositiveProb != 0.6 || res.NSamples != 5 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestEstimateEndpointNoData(t *testing.T) {
	e := newTestServer(map[string][]float64{})

	rec := postJSON(t, e, "/api/estimate", `{"tickers":["NODATA"]}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("expected payload status 200, got %d", env.Status)
	}

	var data struct {
		Results map[string]struct {
			Error string `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Results["NODATA"].Error != "no data" {
		t.Fatalf("expected no-data entry, got %+v", data.Results)
	}
}

func TestEstimateEndpointValidation(t *testing.T) {
	e := newTestServer(map[string][]float64{})

	cases := []string{
		`{"tickers":[]}`,
		`{}`,
		`{"tickers":["AAPL"],"shots":-5}`,
		`{"tickers":["AAPL"],"period":"7y"}`,
	}
	for _, body := range cases {
		rec := postJSON(t, e, "/api/estimate", body)
		env := decodeEnvelope(t, rec)
		if env.Status != http.StatusBadRequest {
			t.Fatalf("body %s: expected payload status 400, got %d", body, env.Status)
		}
	}
}

func TestFetchTimeseriesEndpoint(t *testing.T) {
	e := newTestServer(map[string][]float64{
		"AAPL": {0.01, -0.02},
	})

	rec := postJSON(t, e, "/api/fetch_timeseries", `{"tickers":["AAPL"]}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("expected payload status 200, got %d", env.Status)
	}

	var data struct {
		Status  string `json:"status"`
		Tickers []string
		Returns map[string]struct {
			Returns []float64 `json:"returns"`
		} `json:"returns"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Returns["AAPL"].Returns) != 2 {
		t.Fatalf("expected 2 returns, got %+v", data.Returns)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
