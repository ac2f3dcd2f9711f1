package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8087" {
		t.Errorf("Expected Port to be 8087, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Yahoo.BaseURL != "https://query1.finance.yahoo.com" {
		t.Errorf("Expected Yahoo BaseURL default, got %s", cfg.Yahoo.BaseURL)
	}

	if cfg.Yahoo.Timeout != 20*time.Second {
		t.Errorf("Expected Yahoo Timeout to be 20s, got %v", cfg.Yahoo.Timeout)
	}

	if cfg.LLM.Provider != "gemini" {
		t.Errorf("Expected LLM Provider to be gemini, got %s", cfg.LLM.Provider)
	}

	if cfg.Batch.Workers != 5 {
		t.Errorf("Expected Batch Workers to be 5, got %d", cfg.Batch.Workers)
	}

	if cfg.Watch.Schedule != "0 0 9 * * 1-5" {
		t.Errorf("Expected weekday-morning watch schedule, got %s", cfg.Watch.Schedule)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("YAHOO_REQUESTS_PER_SEC", "0.5")
	os.Setenv("BATCH_WORKERS", "10")
	os.Setenv("WATCH_TICKERS", "aapl, msft ,ko")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("YAHOO_REQUESTS_PER_SEC")
		os.Unsetenv("BATCH_WORKERS")
		os.Unsetenv("WATCH_TICKERS")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Yahoo.RequestsPerSec != 0.5 {
		t.Errorf("Expected Yahoo RequestsPerSec to be 0.5, got %f", cfg.Yahoo.RequestsPerSec)
	}

	if cfg.Batch.Workers != 10 {
		t.Errorf("Expected Batch Workers to be 10, got %d", cfg.Batch.Workers)
	}

	// Tickers are trimmed and upper-cased
	want := []string{"AAPL", "MSFT", "KO"}
	if len(cfg.Watch.Tickers) != len(want) {
		t.Fatalf("Expected %d watch tickers, got %d", len(want), len(cfg.Watch.Tickers))
	}
	for i, tk := range want {
		if cfg.Watch.Tickers[i] != tk {
			t.Errorf("Expected ticker %d to be %s, got %s", i, tk, cfg.Watch.Tickers[i])
		}
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	os.Setenv("ENV", "invalid")
	defer os.Unsetenv("ENV")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateInvalidProvider(t *testing.T) {
	os.Setenv("LLM_PROVIDER", "oracle")
	defer os.Unsetenv("LLM_PROVIDER")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when LLM_PROVIDER is invalid, got nil")
	}
}

func TestValidateZeroWorkers(t *testing.T) {
	os.Setenv("BATCH_WORKERS", "0")
	defer os.Unsetenv("BATCH_WORKERS")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when BATCH_WORKERS is zero, got nil")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2h")
	defer os.Unsetenv("TEST_DURATION")

	duration := getEnvAsDuration("TEST_DURATION", "1h")
	expected := 2 * time.Hour

	if duration != expected {
		t.Errorf("Expected duration to be %v, got %v", expected, duration)
	}
}

func TestGetEnvAsDurationInvalidFallsBack(t *testing.T) {
	os.Setenv("TEST_DURATION", "not-a-duration")
	defer os.Unsetenv("TEST_DURATION")

	duration := getEnvAsDuration("TEST_DURATION", "30s")
	if duration != 30*time.Second {
		t.Errorf("Expected fallback duration 30s, got %v", duration)
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	os.Setenv("TEST_FLOAT", "2.5")
	defer os.Unsetenv("TEST_FLOAT")

	if got := getEnvAsFloat("TEST_FLOAT", 1.0); got != 2.5 {
		t.Errorf("Expected 2.5, got %f", got)
	}

	if got := getEnvAsFloat("TEST_FLOAT_MISSING", 1.0); got != 1.0 {
		t.Errorf("Expected default 1.0, got %f", got)
	}
}

func TestGetEnvAsList(t *testing.T) {
	os.Setenv("TEST_LIST", " one ,two,, three ")
	defer os.Unsetenv("TEST_LIST")

	got := getEnvAsList("TEST_LIST", nil)
	want := []string{"ONE", "TWO", "THREE"}

	if len(got) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected entry %d to be %s, got %s", i, want[i], got[i])
		}
	}
}
