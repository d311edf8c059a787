package repository

import (
	"context"

	"QAmp/internal/domain/models"
)

// ReturnsSource supplies an ordered, cleaned sequence of daily returns per
// instrument. The engine is agnostic to how the returns were computed.
type ReturnsSource interface {
	DailyReturns(ctx context.Context, ticker, period string) ([]float64, error)
}

// ResultStore persists estimation results for offline analysis.
type ResultStore interface {
	Store(ctx context.Context, ticker string, res *models.EstimationResult) error
	Health(ctx context.Context) error
}

// ResultPublisher emits estimation-result events to downstream consumers.
type ResultPublisher interface {
	Publish(ctx context.Context, ticker string, res *models.EstimationResult) error
	Close() error
}

// Metrics records estimation telemetry.
type Metrics interface {
	RecordEstimation(method string)
	RecordFallback(reason string)
	RecordError(kind string)
	RecordShotDuration(seconds float64)
	RecordBatchSize(n int)
}
