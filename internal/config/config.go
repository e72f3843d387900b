package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

type StoreDriver string

const (
	StoreDriverSupabase StoreDriver = "supabase"
	StoreDriverPostgres StoreDriver = "postgres"
)

type Configuration struct {
	Server   ServerConfig   `validate:"required"`
	Logging  LoggingConfig  `validate:"required"`
	Store    StoreConfig    `validate:"required"`
	Supabase SupabaseConfig `validate:"required"`
	Postgres PostgresConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Invoice  InvoiceConfig `validate:"required"`
}

type ServerConfig struct {
	Host           string        `mapstructure:"host" validate:"required"`
	Port           uint          `mapstructure:"port" validate:"required"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"required"`
	StaticDir      string        `mapstructure:"static_dir"`
	// SecureCookies marks session cookies Secure; enable behind HTTPS.
	SecureCookies bool `mapstructure:"secure_cookies"`
}

type LoggingConfig struct {
	Level LogLevel `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

type StoreConfig struct {
	Driver  StoreDriver   `mapstructure:"driver" validate:"required,oneof=supabase postgres"`
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`
}

type SupabaseConfig struct {
	URL        string `mapstructure:"url" validate:"required,url"`
	ServiceKey string `mapstructure:"service_key" validate:"required"`
	JWTSecret  string `mapstructure:"jwt_secret"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// StorageConfig points at the S3 compatible endpoint of Supabase Storage.
type StorageConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	AvatarBucket  string `mapstructure:"avatar_bucket"`
	FilesBucket   string `mapstructure:"files_bucket"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type InvoiceConfig struct {
	DefaultCurrency string `mapstructure:"default_currency" validate:"required,len=3"`
}

// NewConfig loads .env (if present), then config.yaml and CREWDESK_*
// environment variables on top of the defaults.
func NewConfig() (*Configuration, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/crewdesk")

	v.SetEnvPrefix("CREWDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout)
	v.SetDefault("server.static_dir", d.Server.StaticDir)
	v.SetDefault("server.secure_cookies", d.Server.SecureCookies)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.timeout", d.Store.Timeout)
	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.service_key", "")
	v.SetDefault("supabase.jwt_secret", "")
	v.SetDefault("postgres.host", d.Postgres.Host)
	v.SetDefault("postgres.port", d.Postgres.Port)
	v.SetDefault("postgres.user", d.Postgres.User)
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", d.Postgres.DBName)
	v.SetDefault("postgres.sslmode", d.Postgres.SSLMode)
	v.SetDefault("storage.enabled", d.Storage.Enabled)
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", d.Storage.Region)
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.public_base_url", "")
	v.SetDefault("storage.avatar_bucket", d.Storage.AvatarBucket)
	v.SetDefault("storage.files_bucket", d.Storage.FilesBucket)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("invoice.default_currency", d.Invoice.DefaultCurrency)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Store.Driver == StoreDriverPostgres && c.Postgres.Host == "" {
		return errors.New("invalid configuration: postgres.host is required for the postgres store driver")
	}
	if c.Storage.Enabled && (c.Storage.Endpoint == "" || c.Storage.PublicBaseURL == "") {
		return errors.New("invalid configuration: storage.endpoint and storage.public_base_url are required when storage is enabled")
	}
	return nil
}

// GetDefaultConfig returns the configuration used for local development and
// tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Server: ServerConfig{
			Host:           "localhost",
			Port:           3000,
			RequestTimeout: 30 * time.Second,
			StaticDir:      "app/static/",
		},
		Logging: LoggingConfig{Level: LogLevelInfo},
		Store: StoreConfig{
			Driver:  StoreDriverSupabase,
			Timeout: 10 * time.Second,
		},
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			DBName:  "postgres",
			SSLMode: "disable",
		},
		Storage: StorageConfig{
			Region:       "us-east-1",
			AvatarBucket: "avatars",
			FilesBucket:  "event_files",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Invoice: InvoiceConfig{DefaultCurrency: "AED"},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User, c.Password, c.DBName, c.Host, c.Port, c.SSLMode,
	)
}
