package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Parse reads configuration from environment variables without validating
// it. Callers that apply their own overrides (the CLI flags) validate after.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	return cfg, nil
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		// Skip unexported fields
		if !fieldVal.CanSet() {
			continue
		}

		// Recurse into nested structs
		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Time{}) {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		// Get tags
		envName := field.Tag.Get("env")
		envAlt := field.Tag.Get("envAlt")
		defaultVal := field.Tag.Get("default")
		required := field.Tag.Get("required") == "true"

		if envName == "" {
			continue
		}

		// Try primary env var, then alternate
		value := os.Getenv(envName)
		if value == "" && envAlt != "" {
			value = os.Getenv(envAlt)
		}

		// Apply default if not set
		if value == "" {
			if required {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = defaultVal
		}

		if value == "" {
			continue
		}

		// Set the field value
		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		// Handle time.Duration specially
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.Set(reflect.ValueOf(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer: %w", err)
			}
			field.SetInt(i)
		}

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			// Split comma-separated values, trim whitespace
			parts := strings.Split(value, ",")
			result := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					result = append(result, p)
				}
			}
			field.Set(reflect.ValueOf(result))
		} else {
			return fmt.Errorf("unsupported slice type: %s", field.Type().Elem().Kind())
		}

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Sheet validation
	switch strings.ToLower(c.Sheet.Source) {
	case SourceGviz, SourceAPI:
		if c.Sheet.SpreadsheetID == "" {
			errs = append(errs, fmt.Sprintf("SHEET_SPREADSHEET_ID is required when SHEET_SOURCE=%s", c.Sheet.Source))
		}
		if c.Sheet.Name == "" {
			errs = append(errs, "SHEET_NAME must not be empty")
		}
	case SourceFile:
		if c.Sheet.FilePath == "" {
			errs = append(errs, "SHEET_FILE is required when SHEET_SOURCE=file")
		}
	default:
		errs = append(errs, fmt.Sprintf("SHEET_SOURCE (%q) must be one of: gviz, api, file", c.Sheet.Source))
	}
	if c.Sheet.FetchTimeout <= 0 {
		errs = append(errs, "SHEET_FETCH_TIMEOUT must be positive")
	}
	if c.Sheet.MaxBytes <= 0 {
		errs = append(errs, "SHEET_MAX_BYTES must be positive")
	}

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}

	// Lookup validation
	if c.Lookup.MaxConcurrent <= 0 {
		errs = append(errs, "LOOKUP_MAX_CONCURRENT must be positive")
	}
	if c.Lookup.MaxWaitTime <= 0 {
		errs = append(errs, "LOOKUP_MAX_WAIT_TIME must be positive")
	}
	if c.Lookup.MaxBodyBytes <= 0 {
		errs = append(errs, "LOOKUP_MAX_BODY_BYTES must be positive")
	}

	// Rate limit validation
	if c.Rate.Enabled && c.Rate.RequestsPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}

	// Audit validation
	if c.Audit.Enabled() {
		if c.Audit.MaxConns <= 0 {
			errs = append(errs, "DB_MAX_CONNS must be positive")
		}
		if c.Audit.MinConns < 0 {
			errs = append(errs, "DB_MIN_CONNS must be non-negative")
		}
		if c.Audit.MaxConns < c.Audit.MinConns {
			errs = append(errs, fmt.Sprintf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)",
				c.Audit.MaxConns, c.Audit.MinConns))
		}
		if c.Audit.RetentionDays <= 0 {
			errs = append(errs, "AUDIT_RETENTION_DAYS must be positive")
		}
		if c.Audit.PurgeInterval <= 0 {
			errs = append(errs, "AUDIT_PURGE_INTERVAL must be positive")
		}
	}

	// Security validation
	if c.Security.WebhookSecret != "" && c.Security.WebhookSecretHeader == "" {
		errs = append(errs, "WEBHOOK_SECRET_HEADER must be set when WEBHOOK_SECRET is configured")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Secrets (database URL, webhook secret, API keys) are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port)
	fmt.Fprintf(&b, "Sheet: {Source: %q, SpreadsheetID: %q, Name: %q}, ",
		c.Sheet.Source, c.Sheet.SpreadsheetID, c.Sheet.Name)
	fmt.Fprintf(&b, "Lookup: {MaxConcurrent: %d, MaxWaitTime: %s}, ",
		c.Lookup.MaxConcurrent, c.Lookup.MaxWaitTime)
	fmt.Fprintf(&b, "Rate: {Enabled: %v, RequestsPerMinute: %d}, ",
		c.Rate.Enabled, c.Rate.RequestsPerMinute)
	fmt.Fprintf(&b, "Security: {WebhookSecret: %s, APIKeys: %d}, ",
		mask(c.Security.WebhookSecret), len(c.Security.APIKeys))
	fmt.Fprintf(&b, "Audit: {DatabaseURL: %s, RetentionDays: %d}, ",
		mask(c.Audit.DatabaseURL), c.Audit.RetentionDays)
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format)
	b.WriteString("}")
	return b.String()
}

func mask(secret string) string {
	if secret == "" {
		return "[UNSET]"
	}
	return "[MASKED]"
}
