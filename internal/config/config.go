package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Scan   ScanConfig
	Email  EmailConfig
	Auth   AuthConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds settings for the scan archive bucket. An empty bucket
// disables archival.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// ScanConfig holds barcode decoding settings.
type ScanConfig struct {
	DPI float64 `mapstructure:"dpi"`
}

// EmailConfig holds rejection-notice delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ToAddress   string `mapstructure:"to_address"`
}

// AuthConfig holds API authentication settings. An empty key disables
// authentication.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the BILLSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billscan")
	v.SetDefault("db.password", "billscan_secret")
	v.SetDefault("db.name", "billscan_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "eu-central-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Scan defaults
	v.SetDefault("scan.dpi", 600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-central-1")
	v.SetDefault("email.from_address", "noreply@billscan.local")
	v.SetDefault("email.from_name", "billscan")
	v.SetDefault("email.to_address", "")

	// Auth defaults
	v.SetDefault("auth.api_key", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "BILLSCAN_SERVER_PORT",
		"server.read_timeout":  "BILLSCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout": "BILLSCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":   "BILLSCAN_SERVER_ENVIRONMENT",
		"db.host":              "BILLSCAN_DB_HOST",
		"db.port":              "BILLSCAN_DB_PORT",
		"db.user":              "BILLSCAN_DB_USER",
		"db.password":          "BILLSCAN_DB_PASSWORD",
		"db.name":              "BILLSCAN_DB_NAME",
		"db.sslmode":           "BILLSCAN_DB_SSLMODE",
		"db.max_open":          "BILLSCAN_DB_MAX_OPEN",
		"db.max_idle":          "BILLSCAN_DB_MAX_IDLE",
		"s3.region":            "BILLSCAN_S3_REGION",
		"s3.bucket":            "BILLSCAN_S3_BUCKET",
		"s3.endpoint":          "BILLSCAN_S3_ENDPOINT",
		"s3.access_key":        "BILLSCAN_S3_ACCESS_KEY",
		"s3.secret_key":        "BILLSCAN_S3_SECRET_KEY",
		"s3.max_file_size_mb":  "BILLSCAN_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":    "BILLSCAN_S3_PRESIGN_EXPIRY",
		"scan.dpi":             "BILLSCAN_SCAN_DPI",
		"email.provider":       "BILLSCAN_EMAIL_PROVIDER",
		"email.region":         "BILLSCAN_EMAIL_REGION",
		"email.from_address":   "BILLSCAN_EMAIL_FROM_ADDRESS",
		"email.from_name":      "BILLSCAN_EMAIL_FROM_NAME",
		"email.to_address":     "BILLSCAN_EMAIL_TO_ADDRESS",
		"auth.api_key":         "BILLSCAN_AUTH_API_KEY",
		"log.level":            "BILLSCAN_LOG_LEVEL",
		"log.format":           "BILLSCAN_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLSCAN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLSCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Scan = ScanConfig{
		DPI: v.GetFloat64("scan.dpi"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		ToAddress:   v.GetString("email.to_address"),
	}
	cfg.Auth = AuthConfig{
		APIKey: v.GetString("auth.api_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
