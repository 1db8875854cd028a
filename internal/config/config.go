// Package config loads the server configuration from YAML, with environment
// variables taking precedence over the file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Storage struct {
		// memory | postgres
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"storage"`

	Cache struct {
		// memory | redis
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr string `yaml:"addr"`
			DB   int    `yaml:"db"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	Token struct {
		AccessTTL string `yaml:"access_ttl"`
		CodeTTL   string `yaml:"code_ttl"`
	} `yaml:"token"`

	// Seed populates the memory directory on startup; ignored for postgres.
	Seed struct {
		Clients []SeedClient `yaml:"clients"`
		Users   []SeedUser   `yaml:"users"`
	} `yaml:"seed"`
}

type SeedClient struct {
	ID          string   `yaml:"id"`
	Secret      string   `yaml:"secret"`
	RedirectURI string   `yaml:"redirect_uri"`
	GrantTypes  []string `yaml:"grant_types"`
	JWTKey      string   `yaml:"jwt_key"`
}

type SeedUser struct {
	ID       string `yaml:"id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Email    string `yaml:"email"`
}

func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// sane defaults
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Token.AccessTTL == "" {
		c.Token.AccessTTL = "1h"
	}
	if c.Token.CodeTTL == "" {
		c.Token.CodeTTL = "10m"
	}

	c.applyEnvOverrides()
	return &c, nil
}

// AccessTTL returns the parsed access-token lifetime.
func (c *Config) AccessTTL() time.Duration { return parseDur(c.Token.AccessTTL, time.Hour) }

// CodeTTL returns the parsed authorization-code lifetime.
func (c *Config) CodeTTL() time.Duration { return parseDur(c.Token.CodeTTL, 10*time.Minute) }

// MemoryCacheTTL returns the default TTL for the memory cache driver.
func (c *Config) MemoryCacheTTL() time.Duration {
	return parseDur(c.Cache.Memory.DefaultTTL, 2*time.Minute)
}

func parseDur(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}

func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("CACHE_REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvInt("CACHE_REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("TOKEN_ACCESS_TTL"); ok {
		c.Token.AccessTTL = v
	}
	if v, ok := getEnvStr("TOKEN_CODE_TTL"); ok {
		c.Token.CodeTTL = v
	}
}

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
