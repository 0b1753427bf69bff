package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MailerNeedsSender(t *testing.T) {
	cfg := validConfig()
	cfg.Notify.SendGridAPIKey = "SG.key"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error: api key without sender address")
	}

	cfg.Notify.SenderAddr = "relief@example.org"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Database.MaxFilters != 30 {
		t.Errorf("expected MaxFilters=30, got %d", cfg.Database.MaxFilters)
	}
	if cfg.Search.BatchCap != 400 {
		t.Errorf("expected BatchCap=400, got %d", cfg.Search.BatchCap)
	}
	if cfg.Search.MaxResults != 100 {
		t.Errorf("expected MaxResults=100, got %d", cfg.Search.MaxResults)
	}
	if cfg.Import.MaxRows != 5000 {
		t.Errorf("expected MaxRows=5000, got %d", cfg.Import.MaxRows)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Search: SearchConfig{BatchCap: 50},
	}
	cfg.ApplyDefaults()

	if cfg.Search.BatchCap != 50 {
		t.Errorf("explicit BatchCap overwritten: %d", cfg.Search.BatchCap)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PD_TEST_VAR", "redis:6379")

	got := string(expandEnvVars([]byte("addr: ${PD_TEST_VAR}")))
	if got != "addr: redis:6379" {
		t.Errorf("got %q", got)
	}
}

func TestExpandEnvVars_Default(t *testing.T) {
	t.Setenv("PD_TEST_UNSET", "")

	got := string(expandEnvVars([]byte("addr: ${PD_TEST_UNSET:-localhost:6379}")))
	if got != "addr: localhost:6379" {
		t.Errorf("got %q", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("default env %q", got)
	}

	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("env %q", got)
	}
}
