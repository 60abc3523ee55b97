package kit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"MiniCatalog/pkg/kit"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := kit.LoadConfig(nil)
	require.NoError(t, err)

	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, ":3000", cfg.Addr())
	require.Equal(t, "memory", cfg.StoreDriver)
	require.True(t, cfg.Seed)
	require.Equal(t, "http://localhost:3000", cfg.CatalogURL)
}

func TestLoadConfig_EnvAndOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", " SQLite ")
	t.Setenv("SEED", "false")
	t.Setenv("CATALOG_URL", "http://catalog:3000/")

	cfg, err := kit.LoadConfig(map[string]any{"PORT": "8080"})
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "sqlite", cfg.StoreDriver)
	require.False(t, cfg.Seed)
	require.Equal(t, "http://catalog:3000", cfg.CatalogURL)
}
