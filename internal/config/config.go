// Package config loads store settings from flags, CACHEMAN_* environment
// variables and an optional config file, in that order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/unkn0wn-root/cachestore"
	rp "github.com/unkn0wn-root/cachestore/provider/redis"
)

const EnvPrefix = "CACHEMAN"

// Keys double as flag names; CACHEMAN_SCAN_COUNT maps to "scan-count".
const (
	KeyURL               = "url"
	KeyHost              = "host"
	KeyPort              = "port"
	KeyUsername          = "username"
	KeyPassword          = "password"
	KeyDatabase          = "database"
	KeyPrefix            = "prefix"
	KeyTTL               = "ttl"
	KeyScanCount         = "scan-count"
	KeyEnumerate         = "enumerate"
	KeyDeleteConcurrency = "delete-concurrency"
	KeyCodec             = "codec"
	KeyLogLevel          = "log-level"
)

// Never is the ttl value that maps to cachestore.NoExpiration.
const Never = "never"

type Config struct {
	URL      string
	Host     string
	Port     int
	Username string
	Password string
	Database int

	Prefix            string
	TTL               time.Duration
	ScanCount         int64
	Enumerate         string // keys | scan
	DeleteConcurrency int
	Codec             string // json | msgpack | cbor
	LogLevel          string
}

// Flags registers every setting on fs with its default.
func Flags(fs *pflag.FlagSet) {
	fs.String(KeyURL, "", "connection string, e.g. redis://:pass@localhost:6379/0")
	fs.String(KeyHost, "", "server host (default localhost when port is set)")
	fs.Int(KeyPort, 0, "server port (default 6379 when host is set)")
	fs.String(KeyUsername, "", "ACL username")
	fs.String(KeyPassword, "", "password sent with AUTH")
	fs.Int(KeyDatabase, 0, "database index selected on connect")
	fs.String(KeyPrefix, cachestore.DefaultPrefix, "key prefix")
	fs.String(KeyTTL, cachestore.DefaultTTL.String(), `default ttl, or "never"`)
	fs.Int64(KeyScanCount, cachestore.DefaultScanCount, "scan page size")
	fs.String(KeyEnumerate, "keys", "bulk delete enumeration: keys|scan")
	fs.Int(KeyDeleteConcurrency, 0, "max concurrent DELs per bulk delete (0 = unbounded)")
	fs.String(KeyCodec, "json", "value codec: json|msgpack|cbor")
	fs.String(KeyLogLevel, "info", "debug|info|warn|error")
}

// Load resolves the configuration. fs may be nil; file may be empty.
func Load(fs *pflag.FlagSet, file string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("config: bind flags: %w", err)
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	ttl, err := ParseTTL(v.GetString(KeyTTL))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := &Config{
		URL:               v.GetString(KeyURL),
		Host:              v.GetString(KeyHost),
		Port:              v.GetInt(KeyPort),
		Username:          v.GetString(KeyUsername),
		Password:          v.GetString(KeyPassword),
		Database:          v.GetInt(KeyDatabase),
		Prefix:            v.GetString(KeyPrefix),
		TTL:               ttl,
		ScanCount:         v.GetInt64(KeyScanCount),
		Enumerate:         strings.ToLower(v.GetString(KeyEnumerate)),
		DeleteConcurrency: v.GetInt(KeyDeleteConcurrency),
		Codec:             strings.ToLower(v.GetString(KeyCodec)),
		LogLevel:          strings.ToLower(v.GetString(KeyLogLevel)),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPrefix, cachestore.DefaultPrefix)
	v.SetDefault(KeyTTL, cachestore.DefaultTTL.String())
	v.SetDefault(KeyScanCount, cachestore.DefaultScanCount)
	v.SetDefault(KeyEnumerate, "keys")
	v.SetDefault(KeyCodec, "json")
	v.SetDefault(KeyLogLevel, "info")
}

// ParseTTL reads a ttl setting: "" means the store default, "never" maps to
// cachestore.NoExpiration, anything else is a positive time.Duration.
func ParseTTL(s string) (time.Duration, error) {
	switch {
	case s == "":
		return 0, nil
	case strings.EqualFold(s, Never):
		return cachestore.NoExpiration, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("ttl %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("ttl %q: must be positive or %q", s, Never)
	}
	return d, nil
}

func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Database < 0 {
		return fmt.Errorf("database index must not be negative")
	}
	if c.TTL < 0 && c.TTL != cachestore.NoExpiration {
		return fmt.Errorf("ttl must be positive or %q", Never)
	}
	if c.ScanCount < 0 || c.DeleteConcurrency < 0 {
		return fmt.Errorf("scan-count and delete-concurrency must not be negative")
	}
	switch c.Enumerate {
	case "keys", "scan":
	default:
		return fmt.Errorf("unknown enumerate mode %q", c.Enumerate)
	}
	switch c.Codec {
	case "json", "msgpack", "cbor":
	default:
		return fmt.Errorf("unknown codec %q", c.Codec)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// Redis returns the connection settings for the redis provider.
func (c *Config) Redis() *rp.Config {
	return &rp.Config{
		URL:      c.URL,
		Host:     c.Host,
		Port:     c.Port,
		Username: c.Username,
		Password: c.Password,
		Database: c.Database,
	}
}

func (c *Config) EnumerateMode() cachestore.EnumerateMode {
	if c.Enumerate == "scan" {
		return cachestore.EnumerateScan
	}
	return cachestore.EnumerateKeys
}
