package config

import (
	"os"
	"strconv"
)

const (
	// StorePostgres keeps collections as JSONB document tables in PostgreSQL.
	StorePostgres = "postgres"
	// StoreMemory keeps collections in process memory; nothing survives a restart.
	StoreMemory = "memory"
)

// DatabaseConfig locates the PostgreSQL document store. URI wins over the
// Host/Port/User/Password components; Name always selects the database.
type DatabaseConfig struct {
	URI                string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig points at the S3-compatible bucket ledger archives go to.
// Leaving Endpoint empty turns archiving off.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether an object store was configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string
	Format string
}

// TracingConfig mirrors the standard OTEL_* variables the tracer provider reads.
type TracingConfig struct {
	Disabled    bool
	ServiceName string
	Protocol    string
	Endpoint    string
	Sampler     string
	SamplerArg  string
}

// AppConfig holds every setting of the panel process.
type AppConfig struct {
	Port                string
	StoreDriver         string
	Database            DatabaseConfig
	MinIO               MinIOConfig
	ArchiveURLExpirySec int
	Log                 LogConfig
	Tracing             TracingConfig
}

// Load reads the environment. main imports godotenv/autoload, so a local .env
// fills in whatever the real environment leaves unset.
func Load() *AppConfig {
	return &AppConfig{
		Port:        getEnv("PORT", "8080"),
		StoreDriver: getEnv("STORE_DRIVER", StorePostgres),
		Database: DatabaseConfig{
			URI:                getEnv("DB_URI", ""),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		ArchiveURLExpirySec: getEnvInt("ARCHIVE_URL_EXPIRY_SEC", 900),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Tracing: TracingConfig{
			Disabled:    getEnvBool("OTEL_SDK_DISABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "bookledger"),
			Protocol:    getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "")),
			Sampler:     getEnv("OTEL_TRACES_SAMPLER", "parentbased_traceidratio"),
			SamplerArg:  getEnv("OTEL_TRACES_SAMPLER_ARG", "1.0"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
