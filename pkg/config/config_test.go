package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
environment: test
server:
  port: 9090
  read_timeout: 5s
  write_timeout: 15s
  shutdown_timeout: 5s
logging:
  level: info
  format: json
estimator:
  default_shots: 2048
  noise_sigma: 0.02
  simulator_available: true
  parallelism: 8
marketdata:
  base_url: https://example.com/api/v1
  timeout: 3s
  retries: 2
  cache_ttl: 10m
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Environment != "test" {
		t.Errorf("Environment = %q, want test", cfg.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Estimator.DefaultShots != 2048 {
		t.Errorf("DefaultShots = %d, want 2048", cfg.Estimator.DefaultShots)
	}
	if cfg.Estimator.NoiseSigma != 0.02 {
		t.Errorf("NoiseSigma = %v, want 0.02", cfg.Estimator.NoiseSigma)
	}
	if cfg.MarketData.CacheTTL != 10*time.Minute {
		t.Errorf("CacheTTL = %v, want 10m", cfg.MarketData.CacheTTL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"missing environment": `
estimator: {default_shots: 1024}
marketdata: {base_url: https://example.com}
`,
		"zero shots": `
environment: test
estimator: {default_shots: 0}
marketdata: {base_url: https://example.com}
`,
		"negative sigma": `
environment: test
estimator: {default_shots: 1024, noise_sigma: -0.1}
marketdata: {base_url: https://example.com}
`,
		"missing base url": `
environment: test
estimator: {default_shots: 1024}
`,
		"kafka enabled without brokers": `
environment: test
estimator: {default_shots: 1024}
marketdata: {base_url: https://example.com}
kafka: {enabled: true}
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("MARKETDATA_API_KEY", "secret")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("LoadWithEnv returned error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.MarketData.APIKey != "secret" {
		t.Errorf("APIKey = %q, want secret", cfg.MarketData.APIKey)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("Kafka override not applied: enabled=%v brokers=%v", cfg.Kafka.Enabled, cfg.Kafka.Brokers)
	}
}
