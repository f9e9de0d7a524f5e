package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Device != "meter-1" || cfg.Metric != "power" {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
	if cfg.API.BaseURL != "" {
		t.Fatalf("base URL = %q, want empty (client supplies the default)", cfg.API.BaseURL)
	}
}

func TestLoadFrom_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{"api":{"base_url":"http://grid.local:9000"},"device":"meter-42","metric":"voltage"}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.API.BaseURL != "http://grid.local:9000" {
		t.Fatalf("base URL = %q", cfg.API.BaseURL)
	}
	if cfg.Device != "meter-42" || cfg.Metric != "voltage" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadFrom_InvalidJSONFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.Device != DefaultConfig().Device {
		t.Fatalf("cfg = %+v, want defaults on parse failure", cfg)
	}
}

func TestApplyEnv_BaseURLOverride(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://override:8081")

	cfg := applyEnv(Config{API: APIConfig{BaseURL: "http://file:8080"}})
	if cfg.API.BaseURL != "http://override:8081" {
		t.Fatalf("base URL = %q, want env override", cfg.API.BaseURL)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	want := Config{API: APIConfig{BaseURL: "http://grid.local"}, Device: "meter-9", Metric: "current"}
	if err := SaveTo(path, want); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}
