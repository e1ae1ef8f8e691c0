// Package config resolves client settings from an optional YAML file and
// environment overrides.
package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

const (
	// Dir is the per-user directory holding the config file and token file.
	Dir = ".stride"

	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"

	defaultAPIURL         = "http://localhost:8080/api"
	defaultLoginPath      = "/auth/login"
	defaultRequestTimeout = 15 * time.Second
	defaultLocale         = "en-US"
)

// Config holds the runtime configuration of the client.
type Config struct {
	APIURL                string        `yaml:"api_url"`
	LoginPath             string        `yaml:"login_path,omitempty"`
	TokenStore            string        `yaml:"token_store"`
	TokenFile             string        `yaml:"token_file,omitempty"`
	RedisConnectionString string        `yaml:"redis_connection_string,omitempty"`
	RedisKey              string        `yaml:"redis_key,omitempty"`
	RequestTimeout        time.Duration `yaml:"request_timeout"`
	Locale                string        `yaml:"locale,omitempty"`
	Debug                 bool          `yaml:"debug,omitempty"`

	// Path is the file the configuration was read from, empty when none existed.
	Path string `yaml:"-"`
}

// Load reads the file named by STRIDE_CONFIG (default ~/.stride/config.yaml)
// and applies environment overrides on top of it.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	path := getenv("STRIDE_CONFIG")
	if path == "" {
		path = filepath.Join(homeDir(getenv), Dir, "config.yaml")
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		cfg.Path = path
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.applyDefaults(getenv)
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("STRIDE_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := getenv("STRIDE_LOGIN_PATH"); v != "" {
		c.LoginPath = v
	}
	if v := getenv("STRIDE_TOKEN_STORE"); v != "" {
		c.TokenStore = v
	}
	if v := getenv("STRIDE_TOKEN_FILE"); v != "" {
		c.TokenFile = v
	}
	if v := getenv("REDIS_CONNECTION_STRING"); v != "" {
		c.RedisConnectionString = v
	}
	if v := getenv("STRIDE_REDIS_KEY"); v != "" {
		c.RedisKey = v
	}
	if v := getenv("STRIDE_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid STRIDE_REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = d
	}
	if v := getenv("STRIDE_LOCALE"); v != "" {
		c.Locale = v
	}
	if v := getenv("DEBUG"); v != "" {
		dbg, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DEBUG: %w", err)
		}
		c.Debug = dbg
	}
	return nil
}

func (c *Config) applyDefaults(getenv func(string) string) {
	if c.APIURL == "" {
		c.APIURL = defaultAPIURL
	}
	if c.LoginPath == "" {
		c.LoginPath = defaultLoginPath
	}
	if c.TokenStore == "" {
		c.TokenStore = StoreFile
	}
	if c.TokenFile == "" {
		c.TokenFile = filepath.Join(homeDir(getenv), Dir, "token.json")
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.Locale == "" {
		c.Locale = defaultLocale
	}
}

func (c *Config) normalize() {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	c.LoginPath = strings.TrimSpace(c.LoginPath)
	if !strings.HasPrefix(c.LoginPath, "/") {
		c.LoginPath = "/" + c.LoginPath
	}
	c.TokenStore = strings.ToLower(strings.TrimSpace(c.TokenStore))
	c.RedisConnectionString = strings.TrimSpace(c.RedisConnectionString)
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url %q must be an absolute http(s) URL", c.APIURL)
	}
	switch c.TokenStore {
	case StoreFile, StoreMemory:
	case StoreRedis:
		if c.RedisConnectionString == "" {
			return errors.New("token_store redis requires redis_connection_string")
		}
		if _, err := RedisOptions(c.RedisConnectionString); err != nil {
			return err
		}
	default:
		return fmt.Errorf("token_store %q must be one of %s, %s, %s", c.TokenStore, StoreFile, StoreRedis, StoreMemory)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

// RedisOptions parses a redis:// URL or a "host:port,password=...,ssl=true"
// connection string.
func RedisOptions(conn string) (*redis.Options, error) {
	opts, err := redis.ParseURL(conn)
	if err == nil {
		return opts, nil
	}
	parts := strings.Split(conn, ",")
	addr := strings.TrimSpace(parts[0])
	if addr == "" || strings.Contains(addr, "://") {
		return nil, fmt.Errorf("invalid redis connection string: %w", err)
	}
	opts = &redis.Options{Addr: addr}
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(kv[0])) {
		case "password":
			opts.Password = kv[1]
		case "ssl":
			if strings.EqualFold(strings.TrimSpace(kv[1]), "true") {
				opts.TLSConfig = &tls.Config{}
			}
		}
	}
	return opts, nil
}

func homeDir(getenv func(string) string) string {
	if home := getenv("HOME"); home != "" {
		return home
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
