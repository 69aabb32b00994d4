package internal

import (
	"os"
	"path/filepath"
)

// Config holds the resolved runtime configuration.
type Config struct {
	DBPath string
	Model  string
}

// LoadConfig resolves configuration from, in order of precedence, the
// --db flag, the KHUDKA_DB environment variable, and the default
// location under the user's home directory. The model id comes from
// KHUDKA_MODEL when set.
func LoadConfig(flagDBPath string) (Config, error) {
	cfg := Config{
		DBPath: flagDBPath,
		Model:  DefaultModel,
	}

	if cfg.DBPath == "" {
		cfg.DBPath = os.Getenv("KHUDKA_DB")
	}
	if cfg.DBPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		dir := filepath.Join(homeDir, ".khudka")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Config{}, err
		}
		cfg.DBPath = filepath.Join(dir, "khudka.db")
	}

	if model := os.Getenv("KHUDKA_MODEL"); model != "" {
		cfg.Model = model
	}

	return cfg, nil
}
