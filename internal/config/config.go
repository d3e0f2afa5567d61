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
	JWT    JWTConfig
	Auth   AuthConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Email  EmailConfig
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

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// AuthConfig holds the single admin credential that guards write endpoints.
type AuthConfig struct {
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

// S3Config holds the object-storage settings for the GSTR2A file archive.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings. Level "debug" turns on verbose
// request logging; see middleware.ConfigureLogging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings for compliance alerts.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// Load reads configuration from environment variables with the TDSTRACK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TDSTRACK")
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
	v.SetDefault("db.user", "tdstrack")
	v.SetDefault("db.password", "tdstrack_secret")
	v.SetDefault("db.name", "tdstrack_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "12h")
	v.SetDefault("jwt.issuer", "tdstrack")

	// Auth defaults
	v.SetDefault("auth.admin_email", "admin@tdstrack.local")
	v.SetDefault("auth.admin_password", "change-me-in-production")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "tdstrack-gstr2a")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@tdstrack.local")
	v.SetDefault("email.from_name", "TDSTRACK")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "TDSTRACK_SERVER_PORT",
		"server.read_timeout":  "TDSTRACK_SERVER_READ_TIMEOUT",
		"server.write_timeout": "TDSTRACK_SERVER_WRITE_TIMEOUT",
		"server.environment":   "TDSTRACK_SERVER_ENVIRONMENT",
		"db.host":              "TDSTRACK_DB_HOST",
		"db.port":              "TDSTRACK_DB_PORT",
		"db.user":              "TDSTRACK_DB_USER",
		"db.password":          "TDSTRACK_DB_PASSWORD",
		"db.name":              "TDSTRACK_DB_NAME",
		"db.sslmode":           "TDSTRACK_DB_SSLMODE",
		"db.max_open":          "TDSTRACK_DB_MAX_OPEN",
		"db.max_idle":          "TDSTRACK_DB_MAX_IDLE",
		"jwt.secret":           "TDSTRACK_JWT_SECRET",
		"jwt.access_expiry":    "TDSTRACK_JWT_ACCESS_EXPIRY",
		"jwt.issuer":           "TDSTRACK_JWT_ISSUER",
		"auth.admin_email":     "TDSTRACK_AUTH_ADMIN_EMAIL",
		"auth.admin_password":  "TDSTRACK_AUTH_ADMIN_PASSWORD",
		"s3.region":            "TDSTRACK_S3_REGION",
		"s3.bucket":            "TDSTRACK_S3_BUCKET",
		"s3.endpoint":          "TDSTRACK_S3_ENDPOINT",
		"s3.access_key":        "TDSTRACK_S3_ACCESS_KEY",
		"s3.secret_key":        "TDSTRACK_S3_SECRET_KEY",
		"log.level":            "TDSTRACK_LOG_LEVEL",
		"cors.allowed_origins": "TDSTRACK_CORS_ALLOWED_ORIGINS",
		"email.provider":       "TDSTRACK_EMAIL_PROVIDER",
		"email.region":         "TDSTRACK_EMAIL_REGION",
		"email.from_address":   "TDSTRACK_EMAIL_FROM_ADDRESS",
		"email.from_name":      "TDSTRACK_EMAIL_FROM_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if TDSTRACK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TDSTRACK_SERVER_PORT") == "" {
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
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.Auth = AuthConfig{
		AdminEmail:    v.GetString("auth.admin_email"),
		AdminPassword: v.GetString("auth.admin_password"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	return cfg, nil
}
