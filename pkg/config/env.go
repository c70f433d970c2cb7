// Package config reads typed values from environment variables. Malformed
// values are logged and replaced by the caller's default, so a typo never
// stops the process; structural checks belong in the caller's Validate.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the trimmed value of key, or defaultValue when unset or blank.
//
// Example:
//
//	prompt := GetEnvString("TLDR_DEFAULT_PROMPT", summary.DefaultInstruction)
func GetEnvString(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns key parsed as a base-10 integer.
//
// Example:
//
//	limit := GetEnvInt("TLDR_RATE_LIMIT_REQUESTS", 10)
func GetEnvInt(key string, defaultValue int) int {
	valueStr := GetEnvString(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		warnInvalid("integer", key, valueStr, strconv.Itoa(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvFloat returns key parsed as a float64.
//
// Example:
//
//	temperature := GetEnvFloat("TLDR_TEMPERATURE", 0.7)
func GetEnvFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnvString(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		warnInvalid("float", key, valueStr, strconv.FormatFloat(defaultValue, 'g', -1, 64), err)
		return defaultValue
	}
	return value
}

// GetEnvBool returns key parsed by strconv.ParseBool ("1", "t", "true", "0", "f", "false", ...).
//
// Example:
//
//	echo := GetEnvBool("TLDR_ENABLE_ECHO_PROVIDER", false)
func GetEnvBool(key string, defaultValue bool) bool {
	valueStr := GetEnvString(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		warnInvalid("boolean", key, valueStr, strconv.FormatBool(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvDuration returns key parsed by time.ParseDuration ("30s", "1h30m").
//
// Example:
//
//	window := GetEnvDuration("TLDR_RATE_LIMIT_WINDOW", time.Hour)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnvString(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		warnInvalid("duration", key, valueStr, defaultValue.String(), err)
		return defaultValue
	}
	return value
}

// GetEnvStringList splits key on commas, trimming items and dropping empty ones.
//
// Example:
//
//	// TLDR_PROVIDER_ORDER="openai, anthropic"
//	order := GetEnvStringList("TLDR_PROVIDER_ORDER", nil) // ["openai", "anthropic"]
func GetEnvStringList(key string, defaultValue []string) []string {
	valueStr := GetEnvString(key, "")
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}

func warnInvalid(kind, key, value, defaultValue string, err error) {
	slog.Warn("invalid "+kind+" value for environment variable, using default",
		slog.String("key", key),
		slog.String("value", value),
		slog.String("default", defaultValue),
		slog.String("error", err.Error()))
}
