package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"myclient/adapters/filestore"
	"myclient/ui"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envConfigPath    = "CONFIG_PATH"
	envAPIURL        = "API_URL"
	envStoreBackend  = "STORE_BACKEND"
	envStorePath     = "STORE_PATH"
	envRedisAddr     = "REDIS_ADDR"
	envRedisPrefix   = "REDIS_PREFIX"
	envHTTPTimeoutMs = "HTTP_TIMEOUT_MS"
	envConsolePort   = "CONSOLE_PORT"
	envLocale        = "LOCALE"
	envToastMs       = "TOAST_DURATION_MS"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Defaults applied before the YAML file and the environment.
const (
	defaultAPIURL        = "http://localhost:8000/api"
	defaultRedisPrefix   = "myclient"
	defaultHTTPTimeoutMs = 30000
	defaultConsolePort   = 8080
	defaultLocale        = "en"
)

// StoreConfig selects where token, user and theme are kept.
type StoreConfig struct {
	Backend     string
	Path        string
	RedisAddr   string
	RedisPrefix string
}

// Config is the client configuration: defaults, then the YAML file at CONFIG_PATH, then the environment.
type Config struct {
	APIURL        string
	Store         StoreConfig
	HTTPTimeout   time.Duration
	ConsolePort   int
	Locale        ui.Locale
	ToastDuration time.Duration
}

// yamlConfig is the root struct for YAML unmarshalling. Zero values leave the defaults in place.
type yamlConfig struct {
	APIURL        string      `yaml:"api_url"`
	HTTPTimeoutMs int         `yaml:"http_timeout_ms"`
	Locale        string      `yaml:"locale"`
	Store         yamlStore   `yaml:"store"`
	Console       yamlConsole `yaml:"console"`
}

type yamlStore struct {
	Backend     string `yaml:"backend"`
	Path        string `yaml:"path"`
	RedisAddr   string `yaml:"redis_addr"`
	RedisPrefix string `yaml:"redis_prefix"`
}

type yamlConsole struct {
	Port            int `yaml:"port"`
	ToastDurationMs int `yaml:"toast_duration_ms"`
}

// loadYAMLConfig reads the YAML file at path and unmarshals it into yamlConfig.
func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the client config. CONFIG_PATH is optional; when set the file must exist and parse.
// Environment variables override the file. Errors name the offending variable.
//
// Called only from run at startup.
func LoadConfig() (*Config, error) {
	raw := &yamlConfig{}
	if configPath := strings.TrimSpace(os.Getenv(envConfigPath)); configPath != "" {
		if !filepath.IsAbs(configPath) {
			abs, err := filepath.Abs(configPath)
			if err != nil {
				return nil, err
			}
			configPath = abs
		}
		loaded, err := loadYAMLConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
		raw = loaded
	}

	apiURL := firstNonEmpty(os.Getenv(envAPIURL), raw.APIURL, defaultAPIURL)
	if err := validateAPIURL(apiURL); err != nil {
		return nil, err
	}

	store := StoreConfig{
		Backend:     strings.ToLower(firstNonEmpty(os.Getenv(envStoreBackend), raw.Store.Backend, StoreFile)),
		Path:        firstNonEmpty(os.Getenv(envStorePath), raw.Store.Path),
		RedisAddr:   firstNonEmpty(os.Getenv(envRedisAddr), raw.Store.RedisAddr),
		RedisPrefix: firstNonEmpty(os.Getenv(envRedisPrefix), raw.Store.RedisPrefix, defaultRedisPrefix),
	}
	switch store.Backend {
	case StoreFile:
		if store.Path == "" {
			path, err := filestore.DefaultPath()
			if err != nil {
				return nil, fmt.Errorf("%s is required: %w", envStorePath, err)
			}
			store.Path = path
		}
	case StoreRedis:
		if store.RedisAddr == "" {
			return nil, fmt.Errorf("%s is required when %s=%s", envRedisAddr, envStoreBackend, StoreRedis)
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("%s must be file|redis|memory, got %q", envStoreBackend, store.Backend)
	}

	timeoutMs, err := positiveInt(envHTTPTimeoutMs, raw.HTTPTimeoutMs, defaultHTTPTimeoutMs)
	if err != nil {
		return nil, err
	}
	consolePort, err := positiveInt(envConsolePort, raw.Console.Port, defaultConsolePort)
	if err != nil {
		return nil, err
	}
	if consolePort > 65535 {
		return nil, fmt.Errorf("%s must be 1-65535, got %d", envConsolePort, consolePort)
	}
	toastMs, err := positiveInt(envToastMs, raw.Console.ToastDurationMs, int(ui.DefaultToastDuration/time.Millisecond))
	if err != nil {
		return nil, err
	}

	locale, err := ui.LocaleByName(firstNonEmpty(os.Getenv(envLocale), raw.Locale, defaultLocale))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", envLocale, err)
	}

	return &Config{
		APIURL:        apiURL,
		Store:         store,
		HTTPTimeout:   time.Duration(timeoutMs) * time.Millisecond,
		ConsolePort:   consolePort,
		Locale:        locale,
		ToastDuration: time.Duration(toastMs) * time.Millisecond,
	}, nil
}

func validateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s must be an http(s) URL: %w", envAPIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", envAPIURL, raw)
	}
	return nil
}

// positiveInt reads env, falling back to fromFile and then def. The env value must be a positive integer.
func positiveInt(env string, fromFile int, def int) (int, error) {
	if s := strings.TrimSpace(os.Getenv(env)); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			return 0, fmt.Errorf("%s must be a positive integer, got %q", env, s)
		}
		return v, nil
	}
	if fromFile < 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %d", env, fromFile)
	}
	if fromFile > 0 {
		return fromFile, nil
	}
	return def, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
