package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Email     EmailConfig
	Firebase  FirebaseConfig
	Redis     RedisConfig
	Scoring   ScoringConfig
	Scheduler SchedulerConfig
	Gates     GatesConfig
}

// EmailConfig holds email delivery settings for violation notices.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// FirebaseConfig enables provider login when CredentialsFile is set.
type FirebaseConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// Enabled reports whether provider login is configured.
func (f *FirebaseConfig) Enabled() bool {
	return f.CredentialsFile != ""
}

// RedisConfig holds the permission cache settings. An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ScoringConfig controls the rolling company score.
type ScoringConfig struct {
	Window int `mapstructure:"window"`
}

// SchedulerConfig holds the cron spec of the score recompute job.
type SchedulerConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	RecomputeCron string `mapstructure:"recompute_cron"`
}

// GatesConfig names the taxonomy codes that guard each functional area.
// A non-admin needs the code allowed in their resolved set to reach the
// area's routes.
type GatesConfig struct {
	Evaluations string `mapstructure:"evaluations"`
	Violations  string `mapstructure:"violations"`
	Inspections string `mapstructure:"inspections"`
	Risks       string `mapstructure:"risks"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
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

// S3Config holds AWS S3 settings for profile media.
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

// Load reads configuration from environment variables with the HEJAZI_
// prefix. A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	// Missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HEJAZI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "hejazi")
	v.SetDefault("db.password", "hejazi_secret")
	v.SetDefault("db.name", "hejazi_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "hejazi")

	v.SetDefault("s3.region", "me-south-1")
	v.SetDefault("s3.bucket", "hejazi-media")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 5)
	v.SetDefault("s3.presign_expiry", 3600)

	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "me-south-1")
	v.SetDefault("email.from_address", "noreply@hejazi.sa")
	v.SetDefault("email.from_name", "Hejazi SSD")

	v.SetDefault("firebase.project_id", "")
	v.SetDefault("firebase.credentials_file", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	v.SetDefault("scoring.window", 6)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.recompute_cron", "0 2 * * *")

	v.SetDefault("gates.evaluations", "SEC.EVAL")
	v.SetDefault("gates.violations", "SEC.VIOL")
	v.SetDefault("gates.inspections", "SAFE.INSP")
	v.SetDefault("gates.risks", "SAFE.RISK")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "HEJAZI_SERVER_PORT",
		"server.read_timeout":       "HEJAZI_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "HEJAZI_SERVER_WRITE_TIMEOUT",
		"server.environment":        "HEJAZI_SERVER_ENVIRONMENT",
		"db.host":                   "HEJAZI_DB_HOST",
		"db.port":                   "HEJAZI_DB_PORT",
		"db.user":                   "HEJAZI_DB_USER",
		"db.password":               "HEJAZI_DB_PASSWORD",
		"db.name":                   "HEJAZI_DB_NAME",
		"db.sslmode":                "HEJAZI_DB_SSLMODE",
		"db.max_open":               "HEJAZI_DB_MAX_OPEN",
		"db.max_idle":               "HEJAZI_DB_MAX_IDLE",
		"jwt.secret":                "HEJAZI_JWT_SECRET",
		"jwt.access_expiry":         "HEJAZI_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":        "HEJAZI_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                "HEJAZI_JWT_ISSUER",
		"s3.region":                 "HEJAZI_S3_REGION",
		"s3.bucket":                 "HEJAZI_S3_BUCKET",
		"s3.endpoint":               "HEJAZI_S3_ENDPOINT",
		"s3.access_key":             "HEJAZI_S3_ACCESS_KEY",
		"s3.secret_key":             "HEJAZI_S3_SECRET_KEY",
		"s3.max_file_size_mb":       "HEJAZI_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":         "HEJAZI_S3_PRESIGN_EXPIRY",
		"log.level":                 "HEJAZI_LOG_LEVEL",
		"log.format":                "HEJAZI_LOG_FORMAT",
		"cors.allowed_origins":      "HEJAZI_CORS_ALLOWED_ORIGINS",
		"email.provider":            "HEJAZI_EMAIL_PROVIDER",
		"email.region":              "HEJAZI_EMAIL_REGION",
		"email.from_address":        "HEJAZI_EMAIL_FROM_ADDRESS",
		"email.from_name":           "HEJAZI_EMAIL_FROM_NAME",
		"firebase.project_id":       "HEJAZI_FIREBASE_PROJECT_ID",
		"firebase.credentials_file": "HEJAZI_FIREBASE_CREDENTIALS_FILE",
		"redis.addr":                "HEJAZI_REDIS_ADDR",
		"redis.password":            "HEJAZI_REDIS_PASSWORD",
		"redis.db":                  "HEJAZI_REDIS_DB",
		"redis.ttl":                 "HEJAZI_REDIS_TTL",
		"scoring.window":            "HEJAZI_SCORING_WINDOW",
		"scheduler.enabled":         "HEJAZI_SCHEDULER_ENABLED",
		"scheduler.recompute_cron":  "HEJAZI_SCHEDULER_RECOMPUTE_CRON",
		"gates.evaluations":         "HEJAZI_GATES_EVALUATIONS",
		"gates.violations":          "HEJAZI_GATES_VIOLATIONS",
		"gates.inspections":         "HEJAZI_GATES_INSPECTIONS",
		"gates.risks":               "HEJAZI_GATES_RISKS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it unless HEJAZI_SERVER_PORT is set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HEJAZI_SERVER_PORT") == "" {
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
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Firebase = FirebaseConfig{
		ProjectID:       v.GetString("firebase.project_id"),
		CredentialsFile: v.GetString("firebase.credentials_file"),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
		TTL:      v.GetDuration("redis.ttl"),
	}
	cfg.Scoring = ScoringConfig{
		Window: v.GetInt("scoring.window"),
	}
	if cfg.Scoring.Window <= 0 {
		return nil, fmt.Errorf("scoring.window must be positive, got %d", cfg.Scoring.Window)
	}
	cfg.Scheduler = SchedulerConfig{
		Enabled:       v.GetBool("scheduler.enabled"),
		RecomputeCron: v.GetString("scheduler.recompute_cron"),
	}
	cfg.Gates = GatesConfig{
		Evaluations: v.GetString("gates.evaluations"),
		Violations:  v.GetString("gates.violations"),
		Inspections: v.GetString("gates.inspections"),
		Risks:       v.GetString("gates.risks"),
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
