package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/collection-point-service/internal/domain"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Log        LogConfig
	Catalog    CatalogConfig
	Map        MapConfig
	Session    SessionConfig
	Navigation NavigationConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

// CatalogConfig - настройки HTTP бэкенда каталога пунктов сбора
type CatalogConfig struct {
	BaseURL        string
	RequestTimeout int // seconds
	CategoriesPath string
	PointsPath     string
	City           string
	Region         string
}

// MapConfig - центр карты по умолчанию, если геолокация недоступна
type MapConfig struct {
	FallbackLat    float64
	FallbackLon    float64
	LatitudeDelta  float64
	LongitudeDelta float64
}

type SessionConfig struct {
	IdleTTL      time.Duration
	ReapInterval time.Duration
	MountTimeout time.Duration
}

type NavigationConfig struct {
	Stream         string
	PublishTimeout time.Duration
}

func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom reads an env file (optional) overlaid by the process environment.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Catalog: CatalogConfig{
			BaseURL:        v.GetString("CATALOG_BASE_URL"),
			RequestTimeout: v.GetInt("CATALOG_REQUEST_TIMEOUT"),
			CategoriesPath: v.GetString("CATALOG_CATEGORIES_PATH"),
			PointsPath:     v.GetString("CATALOG_POINTS_PATH"),
			City:           v.GetString("CATALOG_CITY"),
			Region:         v.GetString("CATALOG_REGION"),
		},
		Map: MapConfig{
			FallbackLat:    v.GetFloat64("MAP_FALLBACK_LAT"),
			FallbackLon:    v.GetFloat64("MAP_FALLBACK_LON"),
			LatitudeDelta:  v.GetFloat64("MAP_LATITUDE_DELTA"),
			LongitudeDelta: v.GetFloat64("MAP_LONGITUDE_DELTA"),
		},
		Session: SessionConfig{
			IdleTTL:      time.Duration(v.GetInt("SESSION_IDLE_TTL")) * time.Second,
			ReapInterval: time.Duration(v.GetInt("SESSION_REAP_INTERVAL")) * time.Second,
			MountTimeout: time.Duration(v.GetInt("SESSION_MOUNT_TIMEOUT")) * time.Second,
		},
		Navigation: NavigationConfig{
			Stream:         v.GetString("NAVIGATION_STREAM"),
			PublishTimeout: time.Duration(v.GetInt("NAVIGATION_PUBLISH_TIMEOUT")) * time.Millisecond,
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = "http://localhost:3333"
	}
	if cfg.Catalog.RequestTimeout == 0 {
		cfg.Catalog.RequestTimeout = 10
	}
	if cfg.Catalog.CategoriesPath == "" {
		cfg.Catalog.CategoriesPath = "/categories"
	}
	if cfg.Catalog.PointsPath == "" {
		cfg.Catalog.PointsPath = "/points"
	}
	if cfg.Catalog.City == "" {
		cfg.Catalog.City = "Macapa"
		if cfg.Catalog.Region == "" {
			cfg.Catalog.Region = "AP"
		}
	}
	if cfg.Map.FallbackLat == 0 && cfg.Map.FallbackLon == 0 {
		cfg.Map.FallbackLat = 0.0349
		cfg.Map.FallbackLon = -51.0694
	}
	if cfg.Map.LatitudeDelta == 0 {
		cfg.Map.LatitudeDelta = 0.029
	}
	if cfg.Map.LongitudeDelta == 0 {
		cfg.Map.LongitudeDelta = 0.029
	}
	if cfg.Session.IdleTTL == 0 {
		cfg.Session.IdleTTL = 15 * time.Minute
	}
	if cfg.Session.ReapInterval == 0 {
		cfg.Session.ReapInterval = time.Minute
	}
	if cfg.Session.MountTimeout == 0 {
		cfg.Session.MountTimeout = 15 * time.Second
	}
	if cfg.Navigation.Stream == "" {
		cfg.Navigation.Stream = domain.StreamDiscoveryNavigation
	}
	if cfg.Navigation.PublishTimeout == 0 {
		cfg.Navigation.PublishTimeout = 2000 * time.Millisecond
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// CityContext is the configured query scope for point searches.
func (c *Config) CityContext() domain.CityContext {
	return domain.CityContext{City: c.Catalog.City, Region: c.Catalog.Region}
}

// FallbackRegion is the viewport used when the device location is unknown.
func (c *Config) FallbackRegion() domain.Region {
	return domain.Region{
		Center: domain.Coordinate{
			Latitude:  c.Map.FallbackLat,
			Longitude: c.Map.FallbackLon,
		},
		LatitudeDelta:  c.Map.LatitudeDelta,
		LongitudeDelta: c.Map.LongitudeDelta,
		Source:         domain.RegionSourceFallback,
	}
}
