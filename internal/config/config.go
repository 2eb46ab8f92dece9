package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends selectable through STORE_BACKEND.
const (
	BackendSupabase = "supabase"
	BackendGorm     = "gorm"
	BackendPostgres = "postgres"
)

// SQL drivers selectable through DB_DRIVER when STORE_BACKEND=gorm.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrMissingStorageConfig is returned by Validate when the selected backend lacks its connection settings.
var ErrMissingStorageConfig = errors.New("config: missing storage configuration")

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`

	StoreBackend string `mapstructure:"STORE_BACKEND"`
	SupabaseURL  string `mapstructure:"SUPABASE_URL"`
	SupabaseKey  string `mapstructure:"SUPABASE_KEY"`
	DBDriver     string `mapstructure:"DB_DRIVER"`
	DBSource     string `mapstructure:"DB_SOURCE"`

	GoogleMapsAPIKey string        `mapstructure:"GOOGLE_MAPS_API_KEY"`
	GeocodeBaseURL   string        `mapstructure:"GEOCODE_BASE_URL"`
	GeocodeTimeout   time.Duration `mapstructure:"GEOCODE_TIMEOUT"`

	KafkaBroker string `mapstructure:"KAFKA_BROKER"`
	KafkaTopic  string `mapstructure:"KAFKA_TOPIC"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
	SnapshotBucket string `mapstructure:"SNAPSHOT_BUCKET"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":      "0.0.0.0:8000",
	"LOG_LEVEL":           "info",
	"STORE_BACKEND":       BackendSupabase,
	"SUPABASE_URL":        "",
	"SUPABASE_KEY":        "",
	"DB_DRIVER":           DriverSQLite,
	"DB_SOURCE":           "",
	"GOOGLE_MAPS_API_KEY": "",
	"GEOCODE_BASE_URL":    "https://maps.googleapis.com",
	"GEOCODE_TIMEOUT":     "5s",
	"KAFKA_BROKER":        "",
	"KAFKA_TOPIC":         "",
	"MINIO_ENDPOINT":      "",
	"MINIO_ACCESS_KEY":    "",
	"MINIO_SECRET_KEY":    "",
	"MINIO_USE_SSL":       false,
	"SNAPSHOT_BUCKET":     "parking-snapshots",
}

// LoadConfig reads configuration from <path>/app.env and the environment.
// A .env file in the working directory is loaded first; neither file is required.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var config Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	config.StoreBackend = strings.ToLower(strings.TrimSpace(config.StoreBackend))
	config.DBDriver = strings.ToLower(strings.TrimSpace(config.DBDriver))
	if config.StoreBackend == BackendGorm && config.DBDriver == DriverSQLite && config.DBSource == "" {
		config.DBSource = "parking.db"
	}

	return config, nil
}

// Validate checks that the selected store backend can be opened.
// A missing geocoding key is not an error: address lookup degrades instead.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("%w: SUPABASE_URL and SUPABASE_KEY are required", ErrMissingStorageConfig)
		}
	case BackendGorm:
		if c.DBDriver != DriverSQLite && c.DBDriver != DriverPostgres {
			return fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
		}
		if c.DBSource == "" {
			return fmt.Errorf("%w: DB_SOURCE is required", ErrMissingStorageConfig)
		}
	case BackendPostgres:
		if c.DBSource == "" {
			return fmt.Errorf("%w: DB_SOURCE is required", ErrMissingStorageConfig)
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

// KafkaEnabled reports whether spot events should be published.
func (c Config) KafkaEnabled() bool {
	return c.KafkaBroker != "" && c.KafkaTopic != ""
}
