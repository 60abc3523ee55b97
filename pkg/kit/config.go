package kit

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string `mapstructure:"PORT"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	MetricsToken string `mapstructure:"METRICS_TOKEN"`

	StoreDriver string `mapstructure:"STORE_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`
	Seed        bool   `mapstructure:"SEED"`

	CatalogURL string `mapstructure:"CATALOG_URL"`
}

var baseDefaults = map[string]any{
	"PORT":          "3000",
	"LOG_LEVEL":     "info",
	"METRICS_TOKEN": "",
	"STORE_DRIVER":  "memory",
	"DATABASE_URL":  "",
	"SQLITE_PATH":   "catalog.db",
	"SEED":          true,
	"CATALOG_URL":   "http://localhost:3000",
}

// LoadConfig reads the environment on top of the built-in defaults.
// overrides replaces individual defaults for a given service.
func LoadConfig(overrides map[string]any) (Config, error) {
	v := viper.New()
	for k, val := range baseDefaults {
		v.SetDefault(k, val)
	}
	for k, val := range overrides {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.CatalogURL = strings.TrimRight(cfg.CatalogURL, "/")
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
