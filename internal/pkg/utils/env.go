package utils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// ErrMissingEnv wraps every report produced by RequireEnv.
var ErrMissingEnv = errors.New("missing required environment variables")

// envValue reads key and converts it with parse. Unset keys and values that
// fail to parse fall back to defaultValue.
func envValue[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	value, err := parse(raw)
	if err != nil {
		log.Printf("Error parsing %s: %v, will use default value", key, err)
		return defaultValue
	}
	return value
}

func GetEnvString(key, defaultValue string) string {
	return envValue(key, defaultValue, func(raw string) (string, error) { return raw, nil })
}

func GetEnvInt(key string, defaultValue int) int {
	return envValue(key, defaultValue, func(raw string) (int, error) {
		return strconv.Atoi(strings.TrimSpace(raw))
	})
}

func GetEnvBool(key string, defaultValue bool) bool {
	return envValue(key, defaultValue, func(raw string) (bool, error) {
		return strconv.ParseBool(strings.TrimSpace(raw))
	})
}

// RequireEnvString returns the value of key, or an ErrMissingEnv error when it
// is unset or blank.
func RequireEnvString(key string) (string, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, key)
	}
	return value, nil
}

// RequireEnv reports all unset or blank keys in a single error.
func RequireEnv(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if _, err := RequireEnvString(key); err != nil {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
}
