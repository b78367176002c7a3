// Package env reads typed values from environment variables.
package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetString returns the trimmed value of key, or fallback when unset or blank.
func GetString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetFloat returns key parsed as float64, or fallback when unset or invalid.
func GetFloat(key string, fallback float64) float64 {
	v := GetString(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// GetStringList splits a comma separated value, dropping blank items.
func GetStringList(key string, fallback []string) []string {
	return GetStringListSep(key, ",", fallback)
}

// GetStringListSep is GetStringList with a custom separator, for values
// such as regular expressions that may contain commas.
func GetStringListSep(key, sep string, fallback []string) []string {
	v := GetString(key, "")
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// LookupInt parses key as int, reporting malformed values.
func LookupInt(key string, fallback int) (int, error) {
	v := GetString(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

// LookupDuration parses key with time.ParseDuration, reporting malformed values.
func LookupDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := GetString(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

// LookupInt64List parses a comma separated list of integers such as Telegram ids.
func LookupInt64List(key string) ([]int64, error) {
	var ids []int64
	for _, part := range GetStringList(key, nil) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid id %q", key, part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
