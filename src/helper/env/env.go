package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetString extracts a String value from the given environment variable
func GetString(name string, defaultValue ...string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" && len(defaultValue) > 0 {
		value = defaultValue[0]
	}
	return value
}

// MustGetString extracts a String value from the given environment variable
// It panics if the environment variable is not present
func MustGetString(name string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		panic(fmt.Sprintf("%s can't be empty", name))
	}
	return value
}

// GetInt extracts an Int value from the given environment variable
func GetInt(name string, defaultValue ...int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(name)))
	if err != nil && len(defaultValue) > 0 {
		value = defaultValue[0]
	}
	return value
}

// GetBool extracts a Bool value from the given environment variable
func GetBool(name string, defaultValue ...bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(name)))
	if err != nil && len(defaultValue) > 0 {
		value = defaultValue[0]
	}
	return value
}

// GetMillis reads an integer number of milliseconds. Missing, invalid or
// negative values fall back to defaultValue.
func GetMillis(name string, defaultValue time.Duration) time.Duration {
	return getDuration(name, time.Millisecond, defaultValue)
}

// GetSeconds reads an integer number of seconds.
func GetSeconds(name string, defaultValue time.Duration) time.Duration {
	return getDuration(name, time.Second, defaultValue)
}

// GetHours reads an integer number of hours.
func GetHours(name string, defaultValue time.Duration) time.Duration {
	return getDuration(name, time.Hour, defaultValue)
}

func getDuration(name string, unit time.Duration, defaultValue time.Duration) time.Duration {
	value, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(name)), 10, 64)
	if err != nil || value < 0 {
		return defaultValue
	}
	return time.Duration(value) * unit
}
