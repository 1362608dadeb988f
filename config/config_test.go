package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("NOTIFY_QUEUE_SIZE", "not-a-number")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.NotifyQueueSize != 256 {
		t.Fatalf("expected fallback queue size 256, got %d", cfg.NotifyQueueSize)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
	if !cfg.SweepEnabled {
		t.Fatal("sweep should be enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NOTIFY_DISPATCH", "KAFKA")
	t.Setenv("SWEEP_ENABLED", "false")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "10")

	cfg := Load()

	if cfg.NotifyDispatch != "kafka" {
		t.Fatalf("dispatch mode should be lower-cased, got %q", cfg.NotifyDispatch)
	}
	if cfg.SweepEnabled {
		t.Fatal("sweep should be disabled")
	}
	if cfg.RateLimitPerMin != 10 {
		t.Fatalf("expected rate limit 10, got %d", cfg.RateLimitPerMin)
	}
}
