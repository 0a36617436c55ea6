// Package config loads runtime configuration from a YAML file, a .env file,
// and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerPort   = 8070
	defaultHTTPTimeout  = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultLeadsTimeout = 15 * time.Second
	defaultBaseURL      = "https://www.gdlandscapingllc.com"
)

type Config struct {
	Debug  bool         `mapstructure:"debug"`
	Server ServerConfig `mapstructure:"server"`
	Site   SiteConfig   `mapstructure:"site"`
	Leads  LeadsConfig  `mapstructure:"leads"`
	GIS    GISConfig    `mapstructure:"gis"`
	Admin  AdminConfig  `mapstructure:"admin"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type SiteConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	Theme        string `mapstructure:"theme"`
	ThemeVariant string `mapstructure:"theme_variant"`
}

// LeadsConfig points at the external intake endpoint quote requests are
// relayed to.
type LeadsConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// GISConfig controls the parcel-lookup proxy. Hosts not on the allow list
// are rejected before any outbound call is made.
type GISConfig struct {
	AllowedHosts []string      `mapstructure:"allowed_hosts"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// AdminConfig wires the Firestore-backed inquiry store. Disabled unless a
// project id is configured.
type AdminConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	Collection      string `mapstructure:"collection"`
	CredentialsFile string `mapstructure:"credentials_file"`
	APIToken        string `mapstructure:"api_token"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return errors.New("server.port must be positive")
	}
	if c.Site.BaseURL == "" {
		return errors.New("site.base_url is required")
	}
	for _, host := range c.GIS.AllowedHosts {
		if strings.Contains(host, "/") {
			return fmt.Errorf("gis.allowed_hosts entry %q must be a bare host", host)
		}
	}
	return nil
}

// AdminEnabled reports whether the Firestore inquiry store is configured.
func (c *Config) AdminEnabled() bool {
	return c.Admin.ProjectID != ""
}

// Load reads configuration. path may be empty, in which case only defaults,
// an optional config.yaml next to the binary, and environment variables
// apply. A missing config file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := bindEnvVars(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("server", map[string]any{
		"host":          "0.0.0.0",
		"port":          defaultServerPort,
		"read_timeout":  defaultHTTPTimeout.String(),
		"write_timeout": defaultHTTPTimeout.String(),
		"idle_timeout":  defaultIdleTimeout.String(),
	})
	v.SetDefault("site", map[string]any{
		"base_url": defaultBaseURL,
		"theme":    "gdl",
	})
	v.SetDefault("leads", map[string]any{
		"timeout": defaultLeadsTimeout.String(),
	})
	v.SetDefault("gis", map[string]any{
		"allowed_hosts": []string{
			"gis.berlinct.gov",
			"gis.newbritainct.gov",
			"hosting.tighebond.com",
		},
		"timeout": defaultHTTPTimeout.String(),
	})
	v.SetDefault("admin", map[string]any{
		"collection": "inquiries",
	})
}

func bindEnvVars(v *viper.Viper) error {
	bindings := map[string][]string{
		"debug":                  {"APP_DEBUG"},
		"server.host":            {"SERVER_HOST"},
		"server.port":            {"SERVER_PORT"},
		"site.base_url":          {"SITE_BASE_URL"},
		"site.theme":             {"SITE_THEME"},
		"site.theme_variant":     {"SITE_THEME_VARIANT"},
		"leads.endpoint":         {"LEADS_ENDPOINT"},
		"gis.allowed_hosts":      {"GIS_ALLOWED_HOSTS"},
		"admin.project_id":       {"FIRESTORE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT"},
		"admin.collection":       {"FIRESTORE_COLLECTION"},
		"admin.credentials_file": {"GOOGLE_APPLICATION_CREDENTIALS"},
		"admin.api_token":        {"ADMIN_API_TOKEN"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("config: bind %s: %w", key, err)
		}
	}
	return nil
}
