package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
)

// EnvBaseURL overrides the configured API base URL when set.
const EnvBaseURL = "GRIDSCOPE_API_BASE"

type APIConfig struct {
	BaseURL string `json:"base_url"`
}

type Config struct {
	API    APIConfig `json:"api"`
	Device string    `json:"device"`
	Metric string    `json:"metric"`
}

func DefaultConfig() Config {
	return Config{
		Device: "meter-1",
		Metric: "power",
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "gridscope")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gridscope")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

// Load reads the settings file and applies environment overrides. A .env in
// the working directory is honored first so GRIDSCOPE_API_BASE can live
// there during development.
func Load() (Config, error) {
	_ = godotenv.Load()
	cfg, err := LoadFrom(ConfigPath())
	return applyEnv(cfg), err
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Device == "" {
		cfg.Device = DefaultConfig().Device
	}
	if cfg.Metric == "" {
		cfg.Metric = DefaultConfig().Metric
	}

	return cfg, nil
}

func applyEnv(cfg Config) Config {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.API.BaseURL = v
	}
	return cfg
}

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
