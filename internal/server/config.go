// config.go - Environment configuration with fail-fast validation.
//
// All settings come from SPOOLD_* environment variables and are validated
// together at startup so a misconfigured daemon dies with one clear
// message instead of failing at request time.
package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const defaultMaxBodyBytes = 512 << 20 // 512 MiB, enforced before any spool write

// Settings is the environment-derived configuration for the daemon.
type Settings struct {
	Addr          string
	SpoolDir      string
	JWTSecret     string
	MaxBodyBytes  int64
	IndexHTMLPath string

	RateLimit  int
	RateWindow time.Duration

	CleanupEnabled  bool
	CleanupInterval time.Duration
	CleanupMaxAge   time.Duration
}

// ConfigValidationError is one failed configuration check.
type ConfigValidationError struct {
	Field   string
	Message string
}

func (e ConfigValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s: %s", e.Field, e.Message)
}

// configValidator accumulates validation errors across all settings.
type configValidator struct {
	errors []ConfigValidationError
}

func (v *configValidator) addError(field, message string) {
	v.errors = append(v.errors, ConfigValidationError{Field: field, Message: message})
}

func (v *configValidator) err() error {
	if len(v.errors) == 0 {
		return nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d error(s):", len(v.errors))
	for _, e := range v.errors {
		sb.WriteString("\n  " + e.Error())
	}
	return errors.New(sb.String())
}

func (v *configValidator) validateAddr(field, value string) {
	_, portStr, found := strings.Cut(value, ":")
	if !found {
		v.addError(field, "address must contain a port, e.g. :8080")
		return
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		v.addError(field, "port must be a number")
		return
	}
	if port < 1 || port > 65535 {
		v.addError(field, "port must be between 1 and 65535")
	}
}

func (v *configValidator) validatePositiveInt64(field, value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		v.addError(field, "must be an integer number of bytes")
		return 0
	}
	if n <= 0 {
		v.addError(field, "must be greater than zero")
	}
	return n
}

func (v *configValidator) validateNonNegativeInt(field, value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		v.addError(field, "must be a non-negative integer")
		return 0
	}
	return n
}

func (v *configValidator) validateDuration(field, value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		v.addError(field, "must be a duration, e.g. 30m or 1h")
		return 0
	}
	if d <= 0 {
		v.addError(field, "must be greater than zero")
	}
	return d
}

// LoadSettings reads and validates the daemon configuration from the
// environment. getenv abstracts os.Getenv for tests.
func LoadSettings(getenv func(string) string) (Settings, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	v := &configValidator{}

	s := Settings{
		Addr:          get("SPOOLD_ADDR", ":8080"),
		SpoolDir:      get("SPOOLD_SPOOL_DIR", "/app/spool"),
		JWTSecret:     getenv("SPOOLD_JWT_SECRET"),
		IndexHTMLPath: getenv("SPOOLD_INDEX_HTML"),
	}

	v.validateAddr("SPOOLD_ADDR", s.Addr)
	if s.SpoolDir == "" {
		v.addError("SPOOLD_SPOOL_DIR", "spool directory must not be empty")
	}

	s.MaxBodyBytes = v.validatePositiveInt64("SPOOLD_MAX_BODY_BYTES",
		get("SPOOLD_MAX_BODY_BYTES", strconv.Itoa(defaultMaxBodyBytes)))

	s.RateLimit = v.validateNonNegativeInt("SPOOLD_RATE_LIMIT", get("SPOOLD_RATE_LIMIT", "0"))
	s.RateWindow = v.validateDuration("SPOOLD_RATE_WINDOW", get("SPOOLD_RATE_WINDOW", "1m"))

	s.CleanupEnabled = get("SPOOLD_CLEANUP_ENABLED", "false") == "true"
	s.CleanupInterval = v.validateDuration("SPOOLD_CLEANUP_INTERVAL", get("SPOOLD_CLEANUP_INTERVAL", "1h"))
	s.CleanupMaxAge = v.validateDuration("SPOOLD_CLEANUP_MAX_AGE", get("SPOOLD_CLEANUP_MAX_AGE", "24h"))

	return s, v.err()
}
