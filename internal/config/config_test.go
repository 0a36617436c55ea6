package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, 8070, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "https://www.gdlandscapingllc.com", cfg.Site.BaseURL)
	assert.Equal(t, "gdl", cfg.Site.Theme)
	assert.Equal(t, "inquiries", cfg.Admin.Collection)
	assert.NotEmpty(t, cfg.GIS.AllowedHosts)
	assert.False(t, cfg.AdminEnabled())
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
debug: true
server:
  port: 9000
site:
  base_url: https://staging.example.com
  theme_variant: winter
leads:
  endpoint: https://hooks.example.com/leads
gis:
  allowed_hosts:
    - gis.example.gov
admin:
  project_id: gdl-site
`))
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://staging.example.com", cfg.Site.BaseURL)
	assert.Equal(t, "winter", cfg.Site.ThemeVariant)
	assert.Equal(t, "https://hooks.example.com/leads", cfg.Leads.Endpoint)
	assert.Equal(t, []string{"gis.example.gov"}, cfg.GIS.AllowedHosts)
	assert.True(t, cfg.AdminEnabled())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("SITE_BASE_URL", "https://preview.example.com")

	cfg, err := Load(writeConfig(t, "server:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "https://preview.example.com", cfg.Site.BaseURL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "server:\n  port: -1\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "gis:\n  allowed_hosts:\n    - https://gis.example.gov/path\n"))
	assert.Error(t, err)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
