/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package service

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hackhitchin/hh-wp-energy-graph/chart"
	"github.com/hackhitchin/hh-wp-energy-graph/division"
)

// ChartConfig carries the geometry and look of served charts.  Zero fields
// fall back to the chart package defaults.
type ChartConfig struct {
	WidthPx       float64 `yaml:"width_px"`
	HeightPx      float64 `yaml:"height_px"`
	BucketCount   int     `yaml:"bucket_count"`
	GridlineCount int     `yaml:"gridline_count"`
	// LookbackPeriods is the number of whole chart periods of history each
	// bucket aggregates over.
	LookbackPeriods int `yaml:"lookback_periods"`
	// Division names the calendar interval shading the chart background:
	// one of four_hours, days, weeks, or months.
	Division string `yaml:"division"`
	// Colors overrides individual palette entries by name: consumption,
	// average, quartile, region, block, caption, gridline, or guide.
	Colors map[string]string `yaml:"colors"`
}

// Config carries the service configuration.
type Config struct {
	ListenPort int    `yaml:"listen_port"`
	DataRoot   string `yaml:"data_root"`
	// Timezone names the IANA location used for calendar boundary labels.
	Timezone string      `yaml:"timezone"`
	Chart    ChartConfig `yaml:"chart"`
}

// DefaultConfig returns the service configuration used when no config file
// overrides it.
func DefaultConfig() Config {
	cc := chart.DefaultConfig()
	return Config{
		ListenPort: 7420,
		DataRoot:   ".",
		Timezone:   "UTC",
		Chart: ChartConfig{
			WidthPx:         cc.WidthPx,
			HeightPx:        cc.HeightPx,
			BucketCount:     cc.BucketCount,
			GridlineCount:   cc.GridlineCount,
			LookbackPeriods: 10,
			Division:        string(division.Days),
		},
	}
}

// LoadConfig reads the YAML file at path over the default configuration,
// then validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	contents, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if cfg.ListenPort <= 0 {
		return fmt.Errorf("listen_port %d is not a valid port", cfg.ListenPort)
	}
	if cfg.Chart.BucketCount <= 0 {
		return fmt.Errorf("bucket_count %d must be positive", cfg.Chart.BucketCount)
	}
	if cfg.Chart.LookbackPeriods <= 0 {
		return fmt.Errorf("lookback_periods %d must be positive", cfg.Chart.LookbackPeriods)
	}
	switch division.Kind(cfg.Chart.Division) {
	case division.FourHours, division.Days, division.Weeks, division.Months:
	default:
		return fmt.Errorf("unknown division kind %q", cfg.Chart.Division)
	}
	if _, err := cfg.location(); err != nil {
		return err
	}
	if _, err := cfg.chartConfig(); err != nil {
		return err
	}
	return nil
}

func (cfg Config) location() (*time.Location, error) {
	return time.LoadLocation(cfg.Timezone)
}

// chartConfig lowers the service chart settings into a chart.Config,
// applying any palette overrides.
func (cfg Config) chartConfig() (chart.Config, error) {
	cc := chart.DefaultConfig()
	if cfg.Chart.WidthPx > 0 {
		cc.WidthPx = cfg.Chart.WidthPx
	}
	if cfg.Chart.HeightPx > 0 {
		cc.HeightPx = cfg.Chart.HeightPx
	}
	if cfg.Chart.BucketCount > 0 {
		cc.BucketCount = cfg.Chart.BucketCount
	}
	if cfg.Chart.GridlineCount > 0 {
		cc.GridlineCount = cfg.Chart.GridlineCount
	}
	for name, color := range cfg.Chart.Colors {
		switch name {
		case "consumption":
			cc.Palette.Consumption = color
		case "average":
			cc.Palette.Average = color
		case "quartile":
			cc.Palette.Quartile = color
		case "region":
			cc.Palette.Region = color
		case "block":
			cc.Palette.Block = color
		case "caption":
			cc.Palette.Caption = color
		case "gridline":
			cc.Palette.Gridline = color
		case "guide":
			cc.Palette.Guide = color
		default:
			return cc, fmt.Errorf("unknown palette entry %q", name)
		}
	}
	return cc, nil
}
