// Package config provides centralized configuration management for the
// customer lookup service. Configuration comes from environment variables
// with defaults, and is validated on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Sheet source kinds accepted by SHEET_SOURCE.
const (
	SourceGviz = "gviz"
	SourceAPI  = "api"
	SourceFile = "file"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Sheet    SheetConfig
	Lookup   LookupConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Audit    AuditConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on. PORT is honoured for hosting platforms.
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"20s"`

	// RequestTimeout is the middleware timeout for a whole request (default: 25s).
	// Voice platforms give up on tool calls after roughly 30 seconds.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"25s"`
}

// SheetConfig identifies the customer sheet and how to fetch it.
type SheetConfig struct {
	// Source is one of gviz, api or file (default: gviz)
	Source string `env:"SHEET_SOURCE" default:"gviz"`

	// SpreadsheetID is the Google Sheets document id (required for gviz and api)
	SpreadsheetID string `env:"SHEET_SPREADSHEET_ID" envAlt:"SPREADSHEET_ID"`

	// Name is the tab to read (default: users)
	Name string `env:"SHEET_NAME" default:"users"`

	// BaseURL is the Google Sheets document endpoint, overridable for tests.
	BaseURL string `env:"SHEET_BASE_URL" default:"https://docs.google.com/spreadsheets/d"`

	// FilePath is the CSV file read when Source is "file".
	FilePath string `env:"SHEET_FILE"`

	// CredentialsFile is a service account JSON file for the Sheets API.
	CredentialsFile string `env:"SHEET_CREDENTIALS_FILE" envAlt:"GOOGLE_APPLICATION_CREDENTIALS"`

	// APIKey authenticates Sheets API reads of public sheets.
	APIKey string `env:"SHEET_API_KEY"`

	// FetchTimeout bounds one download of the sheet (default: 10s)
	FetchTimeout time.Duration `env:"SHEET_FETCH_TIMEOUT" default:"10s"`

	// MaxBytes caps the size of the exported CSV (default: 10MB)
	MaxBytes int64 `env:"SHEET_MAX_BYTES" default:"10485760"`
}

// LookupConfig holds lookup processing settings.
type LookupConfig struct {
	// MaxConcurrent is the maximum number of sheet fetches in flight (default: 16)
	MaxConcurrent int `env:"LOOKUP_MAX_CONCURRENT" default:"16"`

	// MaxWaitTime is how long a lookup waits for a fetch slot (default: 5s)
	MaxWaitTime time.Duration `env:"LOOKUP_MAX_WAIT_TIME" default:"5s"`

	// MaxBodyBytes caps the incoming request body (default: 1MB)
	MaxBodyBytes int64 `env:"LOOKUP_MAX_BODY_BYTES" default:"1048576"`

	// AuditTimeout bounds one audit insert (default: 3s)
	AuditTimeout time.Duration `env:"LOOKUP_AUDIT_TIMEOUT" default:"3s"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// AllowedOrigins is the CORS origin list (default: *)
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"*"`

	// WebhookSecret, when set, must be presented in WebhookSecretHeader on
	// every lookup call.
	WebhookSecret string `env:"WEBHOOK_SECRET" envAlt:"VAPI_SECRET"`

	// WebhookSecretHeader is the header carrying the secret (default: X-Vapi-Secret)
	WebhookSecretHeader string `env:"WEBHOOK_SECRET_HEADER" default:"X-Vapi-Secret"`

	// APIKeys protect the operational endpoints (lookup history).
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// AuditConfig holds lookup audit log settings. Auditing is enabled only
// when DatabaseURL is set.
type AuditConfig struct {
	DatabaseURL     string        `env:"DATABASE_URL" envAlt:"DB_URL"`
	MaxConns        int           `env:"DB_MAX_CONNS" default:"5"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"0"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"10m"`

	// RetentionDays is how long audit rows are kept (default: 30)
	RetentionDays int `env:"AUDIT_RETENTION_DAYS" default:"30"`

	// PurgeInterval is how often old rows are purged (default: 24h)
	PurgeInterval time.Duration `env:"AUDIT_PURGE_INTERVAL" default:"24h"`
}

// Enabled reports whether the audit log should be written.
func (c *AuditConfig) Enabled() bool {
	return c.DatabaseURL != ""
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
