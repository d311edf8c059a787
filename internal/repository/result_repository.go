package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"QAmp/internal/domain/models"
	"QAmp/internal/domain/repository"
	pkgkafka "QAmp/pkg/kafka"
)

// ClickHouseResultStore implements ResultStore for ClickHouse.
type ClickHouseResultStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseResultStore creates ClickHouse result storage.
func NewClickHouseResultStore(db *sql.DB, table string) repository.ResultStore {
	return &ClickHouseResultStore{db: db, table: table}
}

func (s *ClickHouseResultStore) Store(ctx context.Context, ticker string, res *models.EstimationResult) error {
	q := fmt.Sprintf(
		"INSERT INTO %s (ts, ticker, classical_mean, classical_positive_prob, quantum_positive_prob, method, n_samples) VALUES (?, ?, ?, ?, ?, ?, ?)",
		s.table,
	)
	_, err := s.db.ExecContext(ctx, q,
		time.Now().UTC(),
		ticker,
		res.ClassicalMean,
		res.ClassicalPositiveProb,
		res.QuantumPositiveProb,
		string(res.Method),
		uint32(res.NSamples),
	)
	if err != nil {
		return fmt.Errorf("store result %s: %w", ticker, err)
	}
	return nil
}

func (s *ClickHouseResultStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// KafkaResultPublisher implements ResultPublisher for Kafka.
type KafkaResultPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaResultPublisher creates a Kafka result publisher.
func NewKafkaResultPublisher(producer *pkgkafka.Producer, topic string) repository.ResultPublisher {
	return &KafkaResultPublisher{producer: producer, topic: topic}
}

func (p *KafkaResultPublisher) Publish(ctx context.Context, ticker string, res *models.EstimationResult) error {
	return p.producer.Publish(ctx, p.topic, []byte(ticker), map[string]interface{}{
		"ticker":                  ticker,
		"ts":                      time.Now().Unix(),
		"classical_mean":          res.ClassicalMean,
		"classical_positive_prob": res.ClassicalPositiveProb,
		"quantum_positive_prob":   res.QuantumPositiveProb,
		"method":                  string(res.Method),
		"n_samples":               res.NSamples,
	})
}

func (p *KafkaResultPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
