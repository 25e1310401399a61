package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

var (
	ErrMissingDatabaseURI = errors.New("database.uri (or MONGODB_URI) must be set when using the mongo driver")
	ErrUnknownDriver      = errors.New("unknown database driver")
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file, a .env file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
}

type ServerConfig struct {
	Address     string   `mapstructure:"address"`
	Port        string   `mapstructure:"port"` // overrides the port in Address when set
	StaticDir   string   `mapstructure:"static_dir"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

// S3Config configures log exports. Exports are disabled when BucketName is empty.
type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	ExportURLTTL    time.Duration `mapstructure:"export_url_ttl"`
}

// Enabled reports whether enough is configured to talk to a bucket.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// LoadConfig reads config.yaml from path, a .env file from path and the environment.
// Environment variables win over .env, which wins over the file.
func LoadConfig(path string) (Config, error) {
	var config Config

	// A missing .env is normal outside local development.
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, s3.bucket_name -> S3_BUCKET_NAME
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("database.uri", "DATABASE_URI", "MONGODB_URI")

	// Unmarshal only sees keys viper already knows about, so every
	// env-overridable key needs a default or an explicit binding.
	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.static_dir", "web")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.name", "exercise_tracker")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.export_url_ttl", "15m")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("unmarshal config: %w", err)
	}

	if config.Server.Port != "" {
		config.Server.Address = ":" + strings.TrimPrefix(config.Server.Port, ":")
	}

	return config, config.Validate()
}

// Validate checks the settings that make startup impossible.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.URI == "" {
			return ErrMissingDatabaseURI
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Database.Driver)
	}
	return nil
}
