package config

import (
	"cmp"
	"fmt"
	"time"
)

// ValidatePositiveDuration fails for zero or negative durations.
//
// Example:
//
//	if err := ValidatePositiveDuration(timeout); err != nil {
//	    return fmt.Errorf("invalid provider timeout: %w", err)
//	}
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}

// ValidateNonNegativeDuration fails for negative durations; zero is allowed.
func ValidateNonNegativeDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("duration must be non-negative, got %v", d)
	}
	return nil
}

// ValidateRange checks that min <= v <= max.
//
// Example:
//
//	if err := ValidateRange(temperature, 0.0, 2.0); err != nil {
//	    return fmt.Errorf("invalid temperature: %w", err)
//	}
func ValidateRange[T cmp.Ordered](v, min, max T) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}
	if v < min {
		return fmt.Errorf("value %v is below minimum %v", v, min)
	}
	if v > max {
		return fmt.Errorf("value %v exceeds maximum %v", v, max)
	}
	return nil
}
