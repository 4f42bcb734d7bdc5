package config

import (
	"errors"
	"fmt"
	"os"

	"velora/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Site       SiteConfig       `yaml:"site"`
	Redis      RedisConfig      `yaml:"redis"`
	API        APIConfig        `yaml:"api"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	Exports    ExportConfig     `yaml:"exports"`
	Services   []models.Service `yaml:"services"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

// SiteConfig drives the SEO composer: canonical host, social handles and
// per-page-type default imagery.
type SiteConfig struct {
	BaseURL        string            `yaml:"base_url"`
	Name           string            `yaml:"name"`
	Locale         string            `yaml:"locale"`
	TwitterSite    string            `yaml:"twitter_site"`
	TwitterCreator string            `yaml:"twitter_creator"`
	LogoURL        string            `yaml:"logo_url"`
	DefaultImages  map[string]string `yaml:"default_images"`
	FallbackImage  string            `yaml:"fallback_image"`
	Cities         []CityConfig      `yaml:"cities"`
}

// CityConfig is one city landing page: canonical slug, known alias paths
// and place coordinates for geo meta tags.
type CityConfig struct {
	Slug    string   `yaml:"slug"`
	Name    string   `yaml:"name"`
	Lat     float64  `yaml:"lat"`
	Lng     float64  `yaml:"lng"`
	Aliases []string `yaml:"aliases"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type APIConfig struct {
	HTTP      APIHTTPConfig      `yaml:"http"`
	Auth      APIAuthConfig      `yaml:"auth"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
}

type APIHTTPConfig struct {
	Port int `yaml:"port"`
}

type APIAuthConfig struct {
	Enabled      bool           `yaml:"enabled"`
	HeaderAPIKey string         `yaml:"header_api_key"`
	APIKeys      []APIClientKey `yaml:"api_keys"`
}

type APIClientKey struct {
	Key         string   `yaml:"key"`
	Name        string   `yaml:"name"`
	Permissions []string `yaml:"permissions"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; values referenced from the YAML via ${VAR}.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Site.BaseURL == "" {
		return errors.New("site base_url is required")
	}

	if c.Site.Name == "" {
		return errors.New("site name is required")
	}

	for _, city := range c.Site.Cities {
		if city.Slug == "" {
			return fmt.Errorf("city %q has no slug", city.Name)
		}
	}

	return ValidateServices(c.Services)
}

// ValidateServices rejects duplicate service IDs and duplicate variant IDs
// within one service. Prices must be positive.
func ValidateServices(services []models.Service) error {
	serviceIDs := make(map[int64]bool)
	for _, svc := range services {
		if svc.ID == 0 {
			return fmt.Errorf("service '%s' has invalid ID 0", svc.Name)
		}
		if serviceIDs[svc.ID] {
			return fmt.Errorf("duplicate service ID found: %d", svc.ID)
		}
		serviceIDs[svc.ID] = true

		variantIDs := make(map[string]bool)
		for _, v := range svc.Variants {
			if v.ID == "" {
				return fmt.Errorf("service %d has a variant with empty ID", svc.ID)
			}
			if variantIDs[v.ID] {
				return fmt.Errorf("service %d has duplicate variant ID %s", svc.ID, v.ID)
			}
			if v.Price <= 0 {
				return fmt.Errorf("variant %s of service %d has non-positive price", v.ID, svc.ID)
			}
			variantIDs[v.ID] = true
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.API.HTTP.Port == 0 {
		c.API.HTTP.Port = 8080
	}
	if c.API.Auth.HeaderAPIKey == "" {
		c.API.Auth.HeaderAPIKey = "x-api-key"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}

	if c.Site.Locale == "" {
		c.Site.Locale = "en_IN"
	}
	if c.Site.TwitterSite == "" {
		c.Site.TwitterSite = "@" + c.Site.Name
	}
	if c.Site.TwitterCreator == "" {
		c.Site.TwitterCreator = c.Site.TwitterSite
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}
