package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/photobooksgallery/pbg-manager/internal/apiclient"
	"github.com/photobooksgallery/pbg-manager/internal/bucket"
	"github.com/photobooksgallery/pbg-manager/internal/cache"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/photobooksgallery/pbg-manager/internal/store"
	"github.com/photobooksgallery/pbg-manager/log"
	"github.com/spf13/viper"
)

const (
	TransportLocal  = "local"
	TransportBucket = "bucket"
)

// UploadConfig selects where attachments go.
type UploadConfig struct {
	Transport   string `mapstructure:"transport"`
	Concurrency int    `mapstructure:"concurrency"`
}

// LocaleConfig controls how translations are shown in listings.
type LocaleConfig struct {
	Display        string `mapstructure:"display"`
	FallbackAtRead bool   `mapstructure:"fallback_at_read"`
}

// Config represents the global configuration for the back office.
type Config struct {
	API    apiclient.Config `mapstructure:"api"`
	Logger log.Config       `mapstructure:"logger"`
	Upload UploadConfig     `mapstructure:"upload"`
	Bucket bucket.Config    `mapstructure:"bucket"`
	Store  store.Config     `mapstructure:"store"`
	Cache  cache.Config     `mapstructure:"cache"`
	Locale LocaleConfig     `mapstructure:"locale"`
}

// DisplayLocale returns the configured listing locale, the canonical one
// when unset or unsupported.
func (c *Config) DisplayLocale() entity.Locale {
	if c.Locale.Display == "" {
		return entity.CanonicalLocale
	}
	l, err := entity.ParseLocale(c.Locale.Display)
	if err != nil {
		return entity.CanonicalLocale
	}
	return l
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("logger.level", 0)
	v.SetDefault("upload.transport", TransportLocal)
	v.SetDefault("upload.concurrency", 3)
	v.SetDefault("store.driver", store.DriverSQLite)
	v.SetDefault("store.dsn", "pbg-drafts.db")
	v.SetDefault("store.automigrate", true)
	v.SetDefault("cache.ttl", "0s")
	v.SetDefault("locale.display", string(entity.CanonicalLocale))
	v.SetDefault("locale.fallback_at_read", true)
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Env vars use underscores and uppercase, e.g., PBG_API_BASE_URL, STORE_DSN
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	bindEnvVars(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/pbg-manager")
		v.AddConfigPath("/etc/pbg-manager")
		_ = v.ReadInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}
	if config.Upload.Transport != TransportLocal && config.Upload.Transport != TransportBucket {
		return nil, fmt.Errorf("unknown upload transport %q", config.Upload.Transport)
	}
	return &config, nil
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// API
	v.BindEnv("api.base_url", "PBG_API_BASE_URL")
	v.BindEnv("api.timeout", "PBG_API_TIMEOUT")
	v.BindEnv("api.token", "PBG_API_TOKEN")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// Upload
	v.BindEnv("upload.transport", "UPLOAD_TRANSPORT")
	v.BindEnv("upload.concurrency", "UPLOAD_CONCURRENCY")

	// Bucket
	v.BindEnv("bucket.s3_access_key", "BUCKET_S3_ACCESS_KEY")
	v.BindEnv("bucket.s3_secret_access_key", "BUCKET_S3_SECRET_ACCESS_KEY")
	v.BindEnv("bucket.s3_endpoint", "BUCKET_S3_ENDPOINT")
	v.BindEnv("bucket.s3_bucket_name", "BUCKET_S3_BUCKET_NAME")
	v.BindEnv("bucket.s3_bucket_location", "BUCKET_S3_BUCKET_LOCATION")
	v.BindEnv("bucket.base_folder", "BUCKET_BASE_FOLDER")
	v.BindEnv("bucket.folder", "BUCKET_FOLDER")
	v.BindEnv("bucket.cdn_endpoint", "BUCKET_CDN_ENDPOINT")
	v.BindEnv("bucket.convert_webp", "BUCKET_CONVERT_WEBP")

	// Store
	v.BindEnv("store.driver", "STORE_DRIVER")
	v.BindEnv("store.dsn", "STORE_DSN")
	v.BindEnv("store.automigrate", "STORE_AUTOMIGRATE")

	// Cache, locale
	v.BindEnv("cache.ttl", "CACHE_TTL")
	v.BindEnv("locale.display", "LOCALE_DISPLAY")
	v.BindEnv("locale.fallback_at_read", "LOCALE_FALLBACK_AT_READ")
}
