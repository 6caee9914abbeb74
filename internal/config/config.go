package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Santosestevialima/telemarketing/internal/chart"
)

// Settings holds the dashboard configuration.
type Settings struct {
	ListenAddr    string   `mapstructure:"listen_addr" yaml:"listen_addr"`
	MaxUploadMB   int      `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	SessionTTLMin int      `mapstructure:"session_ttl_min" yaml:"session_ttl_min"`
	DefaultChart  string   `mapstructure:"default_chart" yaml:"default_chart"`
	ChartWidth    int      `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight   int      `mapstructure:"chart_height" yaml:"chart_height"`
	ChartPalette  []string `mapstructure:"chart_palette" yaml:"chart_palette"`
}

// Load reads settings from an optional YAML file and TELEMARKETING_*
// environment variables, applying defaults for anything unset.
func Load(cfgFile string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("TELEMARKETING")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("max_upload_mb", 64)
	v.SetDefault("session_ttl_min", 60)
	v.SetDefault("default_chart", "bar")
	v.SetDefault("chart_width", 420)
	v.SetDefault("chart_height", 320)
	v.SetDefault("chart_palette", []string{})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Catch a bad chart kind here rather than as a 400 on every form
	// submission that relies on the default.
	if _, err := chart.ParseKind(s.DefaultChart); err != nil {
		return nil, fmt.Errorf("default_chart: %w", err)
	}
	return &s, nil
}
