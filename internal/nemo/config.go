package nemo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Lookup service endpoints per environment.
const (
	LookupDevelopment = "https://hub.nemocloud-development.net/SimpleLookUpService"
	LookupPreprod     = "https://hub.nemocloud-preprod.com/SimpleLookUpService"
	LookupProduction  = "https://hub.nemocloud-services.com/SimpleLookUpService"
)

// Auth modes.
const (
	AuthAuto  = "auto"
	AuthBasic = "basic"
)

// Config holds everything needed to reach the remote document store.
// Explicit service URLs skip discovery for that service.
type Config struct {
	Env                string `yaml:"env"`
	LookupURL          string `yaml:"lookup_url"`
	AuthHeader         string `yaml:"auth_header"`
	AuthMode           string `yaml:"auth_mode"`
	CenterID           string `yaml:"center_id"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	RegisterServiceURL string `yaml:"register_service_url"`
	StudioGraphQLURL   string `yaml:"studio_graphql_url"`
	StorageBaseURL     string `yaml:"storage_base_url"`
	TimeoutMs          int    `yaml:"timeout_ms"`
	UserAgent          string `yaml:"user_agent"`
}

// Overrides are per-request values entered by the user. Non-empty fields win
// over every other source.
type Overrides struct {
	Env        string
	AuthHeader string
	LookupURL  string
}

// DefaultConfig returns a Config with no credentials and production lookup.
func DefaultConfig() Config {
	return Config{
		AuthMode:  AuthAuto,
		TimeoutMs: 20000,
		UserAgent: "orthoplan/1.0",
	}
}

// DefaultConfigPath is where LoadConfig looks for the YAML file when
// ORTHOPLAN_REMOTE_CONFIG is unset.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".orthoplan", "remote.yaml")
	}
	return filepath.Join(home, ".orthoplan", "remote.yaml")
}

// LoadConfig layers the YAML config file and then environment variables over
// the defaults. A missing file is not an error.
func LoadConfig() (Config, error) {
	path := os.Getenv("ORTHOPLAN_REMOTE_CONFIG")
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// LoadConfigFile reads path over the defaults without consulting the environment.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading remote config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing remote config %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Env, "NEMO_ENV")
	setString(&cfg.LookupURL, "NEMO_LOOKUP_URL")
	setString(&cfg.AuthHeader, "NEMO_SIMSE_HEADER")
	setString(&cfg.AuthHeader, "NEMO_AUTH_HEADER")
	setString(&cfg.AuthMode, "NEMO_AUTH_MODE")
	setString(&cfg.CenterID, "NEMO_CENTER_ID")
	setString(&cfg.User, "NEMO_USER_ID")
	setString(&cfg.User, "NEMO_USER")
	setString(&cfg.Password, "NEMO_USER_PASSWORD")
	setString(&cfg.Password, "NEMO_PASSWORD")
	setString(&cfg.RegisterServiceURL, "NEMO_REGISTER_SERVICE_URL")
	setString(&cfg.StudioGraphQLURL, "NEMO_STUDIO_GRAPHQL_URL")
	setString(&cfg.StorageBaseURL, "NEMO_STORAGE_BASE_URL")
	if v := os.Getenv("NEMO_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// WithOverrides returns a copy of c with the non-empty override fields applied.
func (c Config) WithOverrides(o Overrides) Config {
	if o.Env != "" {
		c.Env = o.Env
	}
	if o.AuthHeader != "" {
		c.AuthHeader = o.AuthHeader
	}
	if o.LookupURL != "" {
		c.LookupURL = o.LookupURL
	}
	return c
}

// ResolveLookupURL returns the explicit lookup URL, or the one implied by Env.
// Unknown environments resolve to production.
func (c Config) ResolveLookupURL() string {
	if c.LookupURL != "" {
		return c.LookupURL
	}
	switch strings.ToLower(c.Env) {
	case "development", "dev", "test":
		return LookupDevelopment
	case "preprod":
		return LookupPreprod
	default:
		return LookupProduction
	}
}

// Timeout is the budget for one whole document retrieval.
func (c Config) Timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return time.Duration(DefaultConfig().TimeoutMs) * time.Millisecond
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
