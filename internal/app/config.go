package app

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL string        `yaml:"base_url" env:"EDU_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"EDU_TIMEOUT"`
	DataDir string        `yaml:"data_dir" env:"EDU_DATA_DIR"`
	LogFile string        `yaml:"log_file" env:"EDU_LOG_FILE"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL: "https://eduprojectapplication.vercel.app/api/v1",
		Timeout: 30 * time.Second,
	}
}

// LoadConfig reads the yaml file at path (a missing file is fine), then
// applies EDU_* environment overrides on top.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "eduproject", "config.yml")
}
