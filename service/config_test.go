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
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "energyviz.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config file: %s", err)
	}
	return path
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
listen_port: 8080
data_root: /var/lib/energyviz
chart:
  bucket_count: 24
  division: weeks
  colors:
    consumption: "#ff0000"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig yielded unexpected error: %s", err)
	}
	if cfg.ListenPort != 8080 {
		t.Errorf("got listen port %d, wanted 8080", cfg.ListenPort)
	}
	if cfg.DataRoot != "/var/lib/energyviz" {
		t.Errorf("got data root %q, wanted /var/lib/energyviz", cfg.DataRoot)
	}
	// Unset fields keep their defaults.
	if got, want := cfg.Chart.LookbackPeriods, DefaultConfig().Chart.LookbackPeriods; got != want {
		t.Errorf("got lookback periods %d, wanted default %d", got, want)
	}
	cc, err := cfg.chartConfig()
	if err != nil {
		t.Fatalf("chartConfig yielded unexpected error: %s", err)
	}
	if cc.BucketCount != 24 {
		t.Errorf("got bucket count %d, wanted 24", cc.BucketCount)
	}
	if cc.Palette.Consumption != "#ff0000" {
		t.Errorf("got consumption color %q, wanted #ff0000", cc.Palette.Consumption)
	}
	if want := DefaultConfig().Chart.WidthPx; cc.WidthPx != want {
		t.Errorf("got width %f, wanted default %f", cc.WidthPx, want)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	for _, test := range []struct {
		description string
		contents    string
	}{{
		description: "unknown division kind",
		contents:    "chart:\n  division: fortnights\n",
	}, {
		description: "unknown palette entry",
		contents:    "chart:\n  colors:\n    background: \"#ffffff\"\n",
	}, {
		description: "bad listen port",
		contents:    "listen_port: -1\n",
	}, {
		description: "unknown timezone",
		contents:    "timezone: Mars/Olympus_Mons\n",
	}, {
		description: "malformed yaml",
		contents:    "listen_port: [\n",
	}} {
		t.Run(test.description, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, test.contents)); err == nil {
				t.Errorf("LoadConfig succeeded, wanted error")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("LoadConfig over a missing file succeeded, wanted error")
	}
}
