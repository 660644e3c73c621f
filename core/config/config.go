package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"asset-verifier/core/database"
	"asset-verifier/core/logger"
	"asset-verifier/core/server"
	"asset-verifier/core/storage"
	"asset-verifier/feature/assets"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the verification history database.
	Database database.Config `mapstructure:"database"`
	// Verify holds the verification defaults (export path, manifest path, platform).
	Verify assets.Config `mapstructure:"verify"`
}

// ConfigFileEnv names the environment variable pointing at an explicit config file.
const ConfigFileEnv = "ASSET_VERIFIER_CONFIG"

// LoadConfig loads configuration from defaults, an optional asset-verifier.yaml
// in path, the .env file in path and the environment, in increasing precedence.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. CI)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetConfigType("yaml")
	if file := os.Getenv(ConfigFileEnv); file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(path)
		v.SetConfigName("asset-verifier")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Map environment variables to nested keys (e.g. VERIFY_EXPORT_PATH -> verify.export_path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings no command could run with.
// Platform is checked later, since flags and requests may override it.
func (c *Config) Validate() error {
	if _, err := assets.ParseSource(c.Verify.Source); err != nil {
		return fmt.Errorf("verify.source: %w", err)
	}
	switch c.Database.Driver {
	case "sqlite", "mysql", "":
	default:
		return fmt.Errorf("database.driver: unsupported driver %q (want sqlite or mysql)", c.Database.Driver)
	}
	if c.Server.CacheTTL < 0 {
		return fmt.Errorf("server.cache_ttl: must not be negative")
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
