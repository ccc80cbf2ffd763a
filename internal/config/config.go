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
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Queue   QueueConfig
	Extract ExtractConfig
	Review  ReviewConfig
	Email   EmailConfig
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
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for report file storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// QueueConfig holds ingest queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// ExtractConfig holds the confidence penalty overrides for the extraction
// engine. The defaults mirror the engine's tuned constants; values are
// deductions in [0, 1].
type ExtractConfig struct {
	PenaltyMissingRecordID  float64 `mapstructure:"penalty_missing_record_id"`
	PenaltyMissingDate      float64 `mapstructure:"penalty_missing_date"`
	PenaltyUnknownName      float64 `mapstructure:"penalty_unknown_name"`
	PenaltyUnknownOutcome   float64 `mapstructure:"penalty_unknown_outcome"`
	PenaltyMissingPhone     float64 `mapstructure:"penalty_missing_phone"`
	PenaltyReformattedPhone float64 `mapstructure:"penalty_reformatted_phone"`
	PenaltyMissingPCP       float64 `mapstructure:"penalty_missing_pcp"`
	PenaltyUnknownPayer     float64 `mapstructure:"penalty_unknown_payer"`
}

// ReviewConfig holds review workflow settings.
type ReviewConfig struct {
	// ConfidenceThreshold is the score below which ingested records trigger
	// a reviewer notification.
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
}

// EmailConfig holds email delivery settings for review notifications.
type EmailConfig struct {
	Provider      string   `mapstructure:"provider"`
	Region        string   `mapstructure:"region"`
	FromAddress   string   `mapstructure:"from_address"`
	FromName      string   `mapstructure:"from_name"`
	ReviewerAddrs []string `mapstructure:"reviewer_addrs"`
}

// Load reads configuration from environment variables with the CAREFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CAREFLOW")
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
	v.SetDefault("db.user", "careflow")
	v.SetDefault("db.password", "careflow_secret")
	v.SetDefault("db.name", "careflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "careflow")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "careflow-reports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 3)
	v.SetDefault("queue.concurrency", 4)

	// Extraction penalty defaults
	v.SetDefault("extract.penalty_missing_record_id", 0.2)
	v.SetDefault("extract.penalty_missing_date", 0.2)
	v.SetDefault("extract.penalty_unknown_name", 0.2)
	v.SetDefault("extract.penalty_unknown_outcome", 0.1)
	v.SetDefault("extract.penalty_missing_phone", 0.1)
	v.SetDefault("extract.penalty_reformatted_phone", 0.1)
	v.SetDefault("extract.penalty_missing_pcp", 0.1)
	v.SetDefault("extract.penalty_unknown_payer", 0.1)

	// Review defaults
	v.SetDefault("review.confidence_threshold", 0.8)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@careflow.local")
	v.SetDefault("email.from_name", "Careflow")
	v.SetDefault("email.reviewer_addrs", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "CAREFLOW_SERVER_PORT",
		"server.read_timeout":               "CAREFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "CAREFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":                "CAREFLOW_SERVER_ENVIRONMENT",
		"db.host":                           "CAREFLOW_DB_HOST",
		"db.port":                           "CAREFLOW_DB_PORT",
		"db.user":                           "CAREFLOW_DB_USER",
		"db.password":                       "CAREFLOW_DB_PASSWORD",
		"db.name":                           "CAREFLOW_DB_NAME",
		"db.sslmode":                        "CAREFLOW_DB_SSLMODE",
		"db.max_open":                       "CAREFLOW_DB_MAX_OPEN",
		"db.max_idle":                       "CAREFLOW_DB_MAX_IDLE",
		"jwt.secret":                        "CAREFLOW_JWT_SECRET",
		"jwt.access_expiry":                 "CAREFLOW_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":                "CAREFLOW_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                        "CAREFLOW_JWT_ISSUER",
		"s3.region":                         "CAREFLOW_S3_REGION",
		"s3.bucket":                         "CAREFLOW_S3_BUCKET",
		"s3.endpoint":                       "CAREFLOW_S3_ENDPOINT",
		"s3.access_key":                     "CAREFLOW_S3_ACCESS_KEY",
		"s3.secret_key":                     "CAREFLOW_S3_SECRET_KEY",
		"s3.max_file_size_mb":               "CAREFLOW_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":                 "CAREFLOW_S3_PRESIGN_EXPIRY",
		"log.level":                         "CAREFLOW_LOG_LEVEL",
		"log.format":                        "CAREFLOW_LOG_FORMAT",
		"cors.allowed_origins":              "CAREFLOW_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs":          "CAREFLOW_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":                 "CAREFLOW_QUEUE_MAX_RETRIES",
		"queue.concurrency":                 "CAREFLOW_QUEUE_CONCURRENCY",
		"extract.penalty_missing_record_id": "CAREFLOW_EXTRACT_PENALTY_MISSING_RECORD_ID",
		"extract.penalty_missing_date":      "CAREFLOW_EXTRACT_PENALTY_MISSING_DATE",
		"extract.penalty_unknown_name":      "CAREFLOW_EXTRACT_PENALTY_UNKNOWN_NAME",
		"extract.penalty_unknown_outcome":   "CAREFLOW_EXTRACT_PENALTY_UNKNOWN_OUTCOME",
		"extract.penalty_missing_phone":     "CAREFLOW_EXTRACT_PENALTY_MISSING_PHONE",
		"extract.penalty_reformatted_phone": "CAREFLOW_EXTRACT_PENALTY_REFORMATTED_PHONE",
		"extract.penalty_missing_pcp":       "CAREFLOW_EXTRACT_PENALTY_MISSING_PCP",
		"extract.penalty_unknown_payer":     "CAREFLOW_EXTRACT_PENALTY_UNKNOWN_PAYER",
		"review.confidence_threshold":       "CAREFLOW_REVIEW_CONFIDENCE_THRESHOLD",
		"email.provider":                    "CAREFLOW_EMAIL_PROVIDER",
		"email.region":                      "CAREFLOW_EMAIL_REGION",
		"email.from_address":                "CAREFLOW_EMAIL_FROM_ADDRESS",
		"email.from_name":                   "CAREFLOW_EMAIL_FROM_NAME",
		"email.reviewer_addrs":              "CAREFLOW_EMAIL_REVIEWER_ADDRS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CAREFLOW_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CAREFLOW_SERVER_PORT") == "" {
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
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
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
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCommaList(v.GetString("cors.allowed_origins")),
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}
	cfg.Extract = ExtractConfig{
		PenaltyMissingRecordID:  v.GetFloat64("extract.penalty_missing_record_id"),
		PenaltyMissingDate:      v.GetFloat64("extract.penalty_missing_date"),
		PenaltyUnknownName:      v.GetFloat64("extract.penalty_unknown_name"),
		PenaltyUnknownOutcome:   v.GetFloat64("extract.penalty_unknown_outcome"),
		PenaltyMissingPhone:     v.GetFloat64("extract.penalty_missing_phone"),
		PenaltyReformattedPhone: v.GetFloat64("extract.penalty_reformatted_phone"),
		PenaltyMissingPCP:       v.GetFloat64("extract.penalty_missing_pcp"),
		PenaltyUnknownPayer:     v.GetFloat64("extract.penalty_unknown_payer"),
	}
	cfg.Review = ReviewConfig{
		ConfidenceThreshold: v.GetFloat64("review.confidence_threshold"),
	}
	cfg.Email = EmailConfig{
		Provider:      v.GetString("email.provider"),
		Region:        v.GetString("email.region"),
		FromAddress:   v.GetString("email.from_address"),
		FromName:      v.GetString("email.from_name"),
		ReviewerAddrs: splitCommaList(v.GetString("email.reviewer_addrs")),
	}

	return cfg, nil
}

func splitCommaList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
