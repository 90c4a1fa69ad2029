package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const minimalYAML = `environment: test
server:
  port: 8080
cache:
  ttl: 5m
  backend: memory
events:
  backend: none
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "test" || cfg.Server.Port != 8080 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Fatalf("ttl = %v", cfg.Cache.TTL)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("EVENTS_BATCH_SIZE", "250")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadWithEnv(writeConfig(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if cfg.Cache.Redis.DB != 3 {
		t.Fatalf("redis db = %d", cfg.Cache.Redis.DB)
	}
	if cfg.Events.BatchSize != 250 {
		t.Fatalf("batch size = %d", cfg.Events.BatchSize)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Fatalf("ttl = %v", cfg.Cache.TTL)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[0] != "k1:9092" {
		t.Fatalf("brokers = %v", cfg.Kafka.Brokers)
	}
}

func TestLoadWithEnvBadPortKeepsDefault(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg, err := LoadWithEnv(writeConfig(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
}
