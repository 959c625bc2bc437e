// Package config reads typed settings from a file with environment overrides.
package config

import (
	"io"
	"time"
)

// TimeConfig reads integer settings as durations.
type TimeConfig interface {
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration
}

// NumberConfig reads numeric settings. Missing or malformed values read as zero.
type NumberConfig interface {
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetFloat64(key string) float64
}

// Config is the read-only view of application settings.
type Config interface {
	io.Closer
	TimeConfig
	NumberConfig

	GetBool(key string) bool
	GetString(key string) string

	// GetBinary decodes a base64 value.
	GetBinary(key string) []byte

	// GetArray splits a comma separated value, trimming blanks and dropping
	// empty elements. A YAML sequence is also accepted.
	GetArray(key string) []string

	// GetMap parses "k1:v1,k2:v2".
	GetMap(key string) map[string]string
}
