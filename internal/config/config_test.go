package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/collection-point-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/categories", cfg.Catalog.CategoriesPath)
	assert.Equal(t, "/points", cfg.Catalog.PointsPath)
	assert.Equal(t, domain.CityContext{City: "Macapa", Region: "AP"}, cfg.CityContext())
	assert.Equal(t, 0.029, cfg.Map.LatitudeDelta)
	assert.Equal(t, 15*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, domain.StreamDiscoveryNavigation, cfg.Navigation.Stream)

	region := cfg.FallbackRegion()
	assert.Equal(t, domain.RegionSourceFallback, region.Source)
	assert.False(t, region.Center.IsZero())
}

func TestLoadFrom_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "API_PORT=9090\n" +
		"CATALOG_BASE_URL=http://catalog:3333\n" +
		"CATALOG_CITY=Belem\n" +
		"CATALOG_REGION=PA\n" +
		"MAP_FALLBACK_LAT=-1.4558\n" +
		"MAP_FALLBACK_LON=-48.4902\n" +
		"SESSION_IDLE_TTL=60\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.GetServerAddr())
	assert.Equal(t, "http://catalog:3333", cfg.Catalog.BaseURL)
	assert.Equal(t, "Belem,PA", cfg.CityContext().String())
	assert.Equal(t, -1.4558, cfg.FallbackRegion().Center.Latitude)
	assert.Equal(t, time.Minute, cfg.Session.IdleTTL)
}

func TestLoadFrom_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=info\n"), 0o600))
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}
