package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"settingsKey": "csp-minimap-dev",
		"resources": { "pluginCss": "css/dev.css" }
	}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, "csp-minimap-dev", GetSettingsKey())
	assert.Equal(t, "css/dev.css", GetResourceConfig().PluginCSS)
	assert.Equal(t, "third-party/css/leaflet.css", GetResourceConfig().LeafletCSS)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, "./logs", GetString("logsDir"))
	assert.Equal(t, "csp-minimap", GetSettingsKey())

	res := GetResourceConfig()
	assert.Equal(t, "../share/resources/gui/third-party/js/leaflet.js", res.LeafletScript)
	assert.Equal(t, "third-party/css/leaflet.css", res.LeafletCSS)
	assert.Equal(t, "css/csp-minimap.css", res.PluginCSS)
	assert.Equal(t, "../share/resources/gui/csp-minimap-template.html", res.HTMLTemplate)
	assert.Equal(t, "../share/resources/gui/js/csp-minimap.js", res.PluginScript)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")

	// defaults are still in place
	assert.Equal(t, "csp-minimap", GetSettingsKey())
}

func TestGetBool(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testBool", true)
	assert.Equal(t, true, GetBool("testBool"))
}

func TestGetOTelConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{}`)))

	cfg := GetOTelConfig()
	assert.Equal(t, false, cfg.Enabled)
	assert.Equal(t, "csp-minimap", cfg.ServiceName)
	assert.Equal(t, 5*time.Second, cfg.BatchTimeout)
	assert.Equal(t, "", cfg.Endpoint)
	assert.Equal(t, true, cfg.Insecure)
}

func TestGetOTelConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"otel": {
			"enabled": true,
			"serviceName": "minimap-dev",
			"batchTimeout": "30s",
			"endpoint": "localhost:4318",
			"insecure": false
		}
	}`)
	require.NoError(t, Load(dir))

	oc := GetOTelConfig()
	assert.Equal(t, true, oc.Enabled)
	assert.Equal(t, "minimap-dev", oc.ServiceName)
	assert.Equal(t, 30*time.Second, oc.BatchTimeout)
	assert.Equal(t, "localhost:4318", oc.Endpoint)
	assert.Equal(t, false, oc.Insecure)
}

func TestGetPreviewConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{}`)))

	pc, err := GetPreviewConfig()
	require.NoError(t, err)
	assert.Equal(t, "./cosmoscout.json", pc.SettingsFile)
	assert.Equal(t, "", pc.BookmarksDB)
	require.Len(t, pc.Bodies, 3)
	assert.Equal(t, "Earth", pc.Bodies[0].Name)
	assert.Equal(t, [3]float64{6378137, 6356752.3142, 6378137}, pc.Bodies[0].Radii)
}

func TestGetPreviewConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"preview": {
			"settingsFile": "/tmp/settings.json",
			"bookmarksDb": "/tmp/bookmarks.db",
			"bodies": [{"name": "Ceres", "radii": [482000, 446000, 482000]}]
		}
	}`)
	require.NoError(t, Load(dir))

	pc, err := GetPreviewConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/settings.json", pc.SettingsFile)
	assert.Equal(t, "/tmp/bookmarks.db", pc.BookmarksDB)
	require.Len(t, pc.Bodies, 1)
	assert.Equal(t, BodyConfig{Name: "Ceres", Radii: [3]float64{482000, 446000, 482000}}, pc.Bodies[0])
}
