package config

import (
	"bytes"
	"encoding/base64"
	"errors"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: modules.access.cron.secret_hash
// is read from DOORWISE_MODULES_ACCESS_CRON_SECRET_HASH.
const EnvPrefix = "DOORWISE"

// ErrConfigTypeRequired is returned by NewViperFromBytes without a type.
var ErrConfigTypeRequired = errors.New("config type is required")

var defaults = map[string]any{
	"app.server.http.address":                   ":8080",
	"app.server.max_goroutine":                  200,
	"modules.access.otp.digits":                 6,
	"modules.access.otp.admin_ttl_minutes":      5,
	"modules.access.otp.door_ttl_minutes":       15,
	"modules.access.otp.reset_ttl_minutes":      5,
	"modules.access.otp.sweep_interval_minutes": 10,
	"modules.access.password.suffix_min":        1000,
	"modules.access.password.suffix_max":        9999,
	"modules.access.rotation.lock_seconds":      300,
	"modules.access.sender_name":                "Robotics Club",
	"messaging.driver":                          "noop",
	"messaging.topic_prefix":                    "doorwise",
	"mail.driver":                               "smtp",
	"roster.driver":                             "sheets",
	"roster.sheets.header_rows":                 1,
	"instrument.metric_interval_seconds":        15,
	"hash.bcrypt.cost":                          10,
}

// Viper is a Config backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewViper loads the file at pathFile and reloads it on change. The file type
// follows the extension.
func NewViper(pathFile string) (*Viper, error) {
	v := newViper()

	filename := path.Base(pathFile)
	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(strings.TrimSuffix(filename, path.Ext(filename)))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("failed to reload config", "path", pathFile, "error", err)
			return
		}
		slog.Info("config reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory. configType is any format
// viper understands ("yaml", "json", "toml").
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, ErrConfigTypeRequired
	}

	v := newViper()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

// GetInt returns the value for key as int.
func (vc *Viper) GetInt(key string) int { return vc.v.GetInt(key) }

// GetInt32 returns the value for key as int32.
func (vc *Viper) GetInt32(key string) int32 { return vc.v.GetInt32(key) }

// GetInt64 returns the value for key as int64.
func (vc *Viper) GetInt64(key string) int64 { return vc.v.GetInt64(key) }

// GetUint returns the value for key as uint.
func (vc *Viper) GetUint(key string) uint { return vc.v.GetUint(key) }

// GetFloat64 returns the value for key as float64.
func (vc *Viper) GetFloat64(key string) float64 { return vc.v.GetFloat64(key) }

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool { return vc.v.GetBool(key) }

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string { return vc.v.GetString(key) }

// GetSecond returns the value for key as seconds.
func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

// GetMinute returns the value for key as minutes.
func (vc *Viper) GetMinute(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Minute
}

// GetHour returns the value for key as hours.
func (vc *Viper) GetHour(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Hour
}

// GetBinary returns the value for key decoded from base64, or nil.
func (vc *Viper) GetBinary(key string) []byte {
	data, err := base64.StdEncoding.DecodeString(vc.v.GetString(key))
	if err != nil {
		return nil
	}
	return data
}

// GetArray returns the non-empty, trimmed elements of the value for key.
func (vc *Viper) GetArray(key string) []string {
	var raw []string
	if items, ok := vc.v.Get(key).([]any); ok {
		raw = lo.Map(items, func(item any, _ int) string {
			s, _ := item.(string)
			return s
		})
	} else {
		raw = strings.Split(vc.v.GetString(key), ",")
	}

	return lo.Compact(lo.Map(raw, func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}

// GetMap returns the value for key parsed from "k:v,k:v" pairs.
func (vc *Viper) GetMap(key string) map[string]string {
	m := make(map[string]string)
	for _, pair := range vc.GetArray(key) {
		if k, v, ok := strings.Cut(pair, ":"); ok {
			m[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return m
}

// Close implements io.Closer; viper holds no resources.
func (vc *Viper) Close() error {
	return nil
}
