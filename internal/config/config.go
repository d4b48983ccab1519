// Package config loads the validation service settings from environment
// variables.
//
// Every field carries an env tag naming its variable and an optional default.
// envAlt names a fallback variable that is read when the primary is unset.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Upload     UploadConfig
	Validation ValidationConfig
	Retention  RetentionConfig
	Rate       RateLimitConfig
	Security   SecurityConfig
	Logging    LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// DatabaseConfig holds the Postgres report store settings.
// An empty URL keeps reports in process memory.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL" envAlt:"DB_URL"`
	MaxConns        int32         `env:"DB_MAX_CONNS" default:"10"`
	MinConns        int32         `env:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// Enabled reports whether a Postgres store is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// UploadConfig bounds submission uploads.
type UploadConfig struct {
	MaxFileSize   ByteSize      `env:"UPLOAD_MAX_FILE_SIZE" default:"16MB"`
	MaxConcurrent int           `env:"UPLOAD_MAX_CONCURRENT" default:"4"`
	MaxWaitTime   time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"30s"`
}

// ValidationConfig tunes the rule engine.
type ValidationConfig struct {
	// Workers is the number of goroutines for large files. Zero uses GOMAXPROCS.
	Workers           int `env:"VALIDATION_WORKERS" default:"0"`
	ParallelThreshold int `env:"VALIDATION_PARALLEL_THRESHOLD" default:"2000"`
	MaxYear           int `env:"VALIDATION_MAX_YEAR" default:"2026"`
}

// RetentionConfig controls pruning of stored reports. A zero MaxAge keeps
// reports until they are cleared.
type RetentionConfig struct {
	MaxAge        time.Duration `env:"RETENTION_MAX_AGE" default:"0s"`
	CheckInterval time.Duration `env:"RETENTION_CHECK_INTERVAL" default:"1h"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
	SubmitsPerMinute  int  `env:"RATE_LIMIT_SUBMITS_PER_MINUTE" default:"20"`
}

// SecurityConfig holds proxy trust and admin key settings.
type SecurityConfig struct {
	// TrustedProxies lists CIDRs whose X-Forwarded-For and X-Real-IP
	// headers are believed. Empty trusts nobody.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// AdminAPIKeys authorize destructive endpoints. Empty disables them.
	AdminAPIKeys []string `env:"ADMIN_API_KEYS" envAlt:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" default:"info"`
	Format string `env:"LOG_FORMAT" default:"text"`
}

// ByteSize is a size in bytes that parses unit suffixes such as "16MB".
type ByteSize int64

var byteUnits = []struct {
	suffix string
	mult   int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// UnmarshalText accepts a plain byte count or a number with a B, KB, MB
// or GB suffix. Units are binary.
func (b *ByteSize) UnmarshalText(text []byte) error {
	s := strings.ToUpper(strings.TrimSpace(string(text)))
	mult := int64(1)
	for _, u := range byteUnits {
		if strings.HasSuffix(s, u.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			mult = u.mult
			break
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid size %q", string(text))
	}
	*b = ByteSize(n * mult)
	return nil
}

func (b ByteSize) String() string {
	for _, u := range byteUnits[:3] {
		if b >= ByteSize(u.mult) && int64(b)%u.mult == 0 {
			return strconv.FormatInt(int64(b)/u.mult, 10) + u.suffix
		}
	}
	return strconv.FormatInt(int64(b), 10) + "B"
}
