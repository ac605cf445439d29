package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func EnvInt(key string, def int) int {
	v, err := strconv.Atoi(EnvOrDefault(key, ""))
	if err != nil {
		return def
	}
	return v
}

func EnvDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(EnvOrDefault(key, ""))
	if err != nil {
		return def
	}
	return v
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
