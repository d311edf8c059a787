package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"QAmp/internal/domain/models"
	drepo "QAmp/internal/domain/repository"
	"QAmp/internal/engine"
	"QAmp/pkg/logger"
)

const defaultParallelism = 4

// BatchEstimator runs per-instrument probability estimation across a request
// batch. Instruments are independent, so they fan out over a bounded worker
// group; each task builds its own orchestrator so no random stream is shared.
type BatchEstimator struct {
	source  drepo.ReturnsSource
	store   drepo.ResultStore     // optional
	pub     drepo.ResultPublisher // optional
	metrics drepo.Metrics
	log     *logger.Logger

	quantumCfg  engine.QuantumConfig
	parallelism int

	seedMu sync.Mutex
	seeder *rand.Rand
}

// NewBatchEstimator creates the estimation use case. store and pub may be
// nil when persistence or event publishing is disabled.
func NewBatchEstimator(
	source drepo.ReturnsSource,
	store drepo.ResultStore,
	pub drepo.ResultPublisher,
	metrics drepo.Metrics,
	log *logger.Logger,
	quantumCfg engine.QuantumConfig,
	parallelism int,
) *BatchEstimator {
	if log == nil {
		log = logger.Nop()
	}
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}
	return &BatchEstimator{
		source:      source,
		store:       store,
		pub:         pub,
		metrics:     metrics,
		log:         log,
		quantumCfg:  quantumCfg,
		parallelism: parallelism,
		seeder:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// EstimateBatch estimates every requested instrument. Configuration problems
// abort the whole batch; per-instrument failures are isolated as error
// entries, so each requested ticker always has an entry in the result map.
func (u *BatchEstimator) EstimateBatch(ctx context.Context, req *models.EstimateRequest) (map[string]models.InstrumentOutcome, error) {
	if len(req.Tickers) == 0 {
		return nil, fmt.Errorf("tickers cannot be empty")
	}
	if req.Shots <= 0 {
		return nil, fmt.Errorf("shots must be positive, got %d", req.Shots)
	}
	if u.metrics != nil {
		u.metrics.RecordBatchSize(len(req.Tickers))
	}

	useQuantum := req.Quantum()
	outcomes := make([]models.InstrumentOutcome, len(req.Tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.parallelism)
	for i, ticker := range req.Tickers {
		g.Go(func() error {
			outcomes[i] = u.estimateOne(gctx, ticker, req.Period, useQuantum, req.Shots)
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors; failures live in outcomes

	results := make(map[string]models.InstrumentOutcome, len(req.Tickers))
	for i, ticker := range req.Tickers {
		results[ticker] = outcomes[i]
	}
	return results, nil
}

func (u *BatchEstimator) estimateOne(ctx context.Context, ticker, period string, useQuantum bool, shots int) models.InstrumentOutcome {
	samples, err := u.source.DailyReturns(ctx, ticker, period)
	if err != nil {
		u.log.Error("market data fetch failed", logger.String("ticker", ticker), logger.Error(err))
		if u.metrics != nil {
			u.metrics.RecordError("market_data")
		}
		return models.InstrumentOutcome{Error: "market data unavailable"}
	}

	orch := engine.NewOrchestrator(u.newQuantumEstimator(), u.log)

	start := time.Now()
	res, err := orch.EstimateInstrument(samples, useQuantum, shots)
	if u.metrics != nil {
		u.metrics.RecordShotDuration(time.Since(start).Seconds())
	}
	if errors.Is(err, engine.ErrNoData) {
		return models.InstrumentOutcome{Error: "no data"}
	}
	if err != nil {
		// EstimateInstrument only returns ErrNoData today; anything else is
		// still isolated to this instrument.
		u.log.Error("estimation failed", logger.String("ticker", ticker), logger.Error(err))
		if u.metrics != nil {
			u.metrics.RecordError("estimation")
		}
		return models.InstrumentOutcome{Error: "estimation failed"}
	}

	if u.metrics != nil {
		u.metrics.RecordEstimation(string(res.Method))
		if res.Method == models.MethodClassicalFallback {
			u.metrics.RecordFallback("quantum_error")
		}
	}
	u.persist(ctx, ticker, &res)
	return models.InstrumentOutcome{EstimationResult: &res}
}

// Timeseries fetches the daily return series for each requested instrument,
// isolating per-ticker failures the same way EstimateBatch does.
func (u *BatchEstimator) Timeseries(ctx context.Context, req *models.TimeseriesRequest) (map[string]models.SeriesOutcome, error) {
	if len(req.Tickers) == 0 {
		return nil, fmt.Errorf("tickers cannot be empty")
	}

	outcomes := make([]models.SeriesOutcome, len(req.Tickers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.parallelism)
	for i, ticker := range req.Tickers {
		g.Go(func() error {
			samples, err := u.source.DailyReturns(gctx, ticker, req.Period)
			if err != nil {
				u.log.Error("market data fetch failed", logger.String("ticker", ticker), logger.Error(err))
				outcomes[i] = models.SeriesOutcome{Error: "market data unavailable"}
				return nil
			}
			if len(samples) == 0 {
				outcomes[i] = models.SeriesOutcome{Error: "no data"}
				return nil
			}
			outcomes[i] = models.SeriesOutcome{Returns: samples}
			return nil
		})
	}
	_ = g.Wait()

	results := make(map[string]models.SeriesOutcome, len(req.Tickers))
	for i, ticker := range req.Tickers {
		results[ticker] = outcomes[i]
	}
	return results, nil
}

// newQuantumEstimator hands each task a quantum estimator with its own shot
// and noise streams, seeded from a guarded master source.
func (u *BatchEstimator) newQuantumEstimator() *engine.QuantumEstimator {
	u.seedMu.Lock()
	shotSeed, noiseSeed := u.seeder.Int63(), u.seeder.Int63()
	u.seedMu.Unlock()
	return engine.NewQuantumEstimator(u.quantumCfg, rand.NewSource(shotSeed), rand.NewSource(noiseSeed))
}

func (u *BatchEstimator) persist(ctx context.Context, ticker string, res *models.EstimationResult) {
	if u.store != nil {
		if err := u.store.Store(ctx, ticker, res); err != nil {
			u.log.Warn("result store failed", logger.String("ticker", ticker), logger.Error(err))
			if u.metrics != nil {
				u.metrics.RecordError("clickhouse")
			}
		}
	}
	if u.pub != nil {
		if err := u.pub.Publish(ctx, ticker, res); err != nil {
			u.log.Warn("result publish failed", logger.String("ticker", ticker), logger.Error(err))
			if u.metrics != nil {
				u.metrics.RecordError("kafka")
			}
		}
	}
}
