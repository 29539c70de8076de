package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the name of the plugin's runtime config file.
const FileName = "csp-minimap.cfg.json"

// ResourceConfig holds the web resources injected into the host GUI.
type ResourceConfig struct {
	LeafletScript string `json:"leafletScript" mapstructure:"leafletScript"`
	LeafletCSS    string `json:"leafletCss" mapstructure:"leafletCss"`
	PluginCSS     string `json:"pluginCss" mapstructure:"pluginCss"`
	HTMLTemplate  string `json:"htmlTemplate" mapstructure:"htmlTemplate"`
	PluginScript  string `json:"pluginScript" mapstructure:"pluginScript"`
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

// BodyConfig describes a body simulated by the preview harness.
type BodyConfig struct {
	Name  string     `json:"name" mapstructure:"name"`
	Radii [3]float64 `json:"radii" mapstructure:"radii"`
}

// PreviewConfig holds the settings of the preview harness.
type PreviewConfig struct {
	SettingsFile string       `json:"settingsFile" mapstructure:"settingsFile"`
	BookmarksDB  string       `json:"bookmarksDb" mapstructure:"bookmarksDb"`
	Bodies       []BodyConfig `json:"bodies" mapstructure:"bodies"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")
	viper.SetDefault("settingsKey", "csp-minimap")

	viper.SetDefault("resources.leafletScript", "../share/resources/gui/third-party/js/leaflet.js")
	viper.SetDefault("resources.leafletCss", "third-party/css/leaflet.css")
	viper.SetDefault("resources.pluginCss", "css/csp-minimap.css")
	viper.SetDefault("resources.htmlTemplate", "../share/resources/gui/csp-minimap-template.html")
	viper.SetDefault("resources.pluginScript", "../share/resources/gui/js/csp-minimap.js")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "csp-minimap")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("preview.settingsFile", "./cosmoscout.json")
	viper.SetDefault("preview.bookmarksDb", "")
	viper.SetDefault("preview.bodies", []map[string]any{
		{"name": "Earth", "radii": []float64{6378137, 6356752.3142, 6378137}},
		{"name": "Moon", "radii": []float64{1737400, 1737400, 1737400}},
		{"name": "Mars", "radii": []float64{3396190, 3376200, 3396190}},
	})
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetSettingsKey returns the key of the plugin's section in the host settings.
func GetSettingsKey() string {
	return viper.GetString("settingsKey")
}

// GetResourceConfig returns the web resources to inject.
func GetResourceConfig() ResourceConfig {
	return ResourceConfig{
		LeafletScript: viper.GetString("resources.leafletScript"),
		LeafletCSS:    viper.GetString("resources.leafletCss"),
		PluginCSS:     viper.GetString("resources.pluginCss"),
		HTMLTemplate:  viper.GetString("resources.htmlTemplate"),
		PluginScript:  viper.GetString("resources.pluginScript"),
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetPreviewConfig returns the preview harness settings.
func GetPreviewConfig() (PreviewConfig, error) {
	cfg := PreviewConfig{
		SettingsFile: viper.GetString("preview.settingsFile"),
		BookmarksDB:  viper.GetString("preview.bookmarksDb"),
	}
	if err := viper.UnmarshalKey("preview.bodies", &cfg.Bodies); err != nil {
		return PreviewConfig{}, fmt.Errorf("decoding preview bodies: %w", err)
	}
	return cfg, nil
}
