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

package renderdispatcher

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testChartSource struct {
	supportedCharts []string
	renderedCharts  map[string]int
}

func newTestChartSource(supportedCharts []string) *testChartSource {
	return &testChartSource{
		supportedCharts: supportedCharts,
		renderedCharts:  map[string]int{},
	}
}

func (tcs *testChartSource) SupportedCharts() []string {
	return tcs.supportedCharts
}

func (tcs *testChartSource) RenderChart(ctx context.Context, name string) (string, error) {
	if name == "broken" {
		return "", errors.New("oops")
	}
	tcs.renderedCharts[name]++
	return fmt.Sprintf("<svg>%s</svg>", name), nil
}

var (
	charts = [][]string{
		[]string{"house.day", "house.week"},
		[]string{"office.day"},
		[]string{"broken"},
	}
)

func TestRenderDispatcherCreation(t *testing.T) {
	for _, test := range []struct {
		description string
		sources     []chartSource
		wantErr     bool
	}{{
		description: "single chart source",
		sources: []chartSource{
			newTestChartSource(charts[0]),
		},
	}, {
		description: "multiple chart sources",
		sources: []chartSource{
			newTestChartSource(charts[0]),
			newTestChartSource(charts[1]),
		},
	}, {
		description: "supported chart conflict",
		sources: []chartSource{
			newTestChartSource(charts[0]),
			newTestChartSource(charts[0]),
		},
		wantErr: true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			_, err := New(test.sources...)
			if test.wantErr != (err != nil) {
				t.Fatalf("Unexpected error creating RenderDispatcher: %s", err)
			}
		})
	}
}

func TestRenderCharts(t *testing.T) {
	for _, test := range []struct {
		description string
		sources     []chartSource
		names       []string
		wantErr     bool
		want        map[string]string
	}{{
		description: "single chart source",
		sources: []chartSource{
			newTestChartSource(charts[0]),
		},
		names: []string{"house.day"},
		want: map[string]string{
			"house.day": "<svg>house.day</svg>",
		},
	}, {
		description: "multiple chart sources",
		sources: []chartSource{
			newTestChartSource(charts[0]),
			newTestChartSource(charts[1]),
		},
		names: []string{"house.week", "office.day"},
		want: map[string]string{
			"house.week": "<svg>house.week</svg>",
			"office.day": "<svg>office.day</svg>",
		},
	}, {
		description: "render failure",
		sources: []chartSource{
			newTestChartSource(charts[0]),
			newTestChartSource(charts[2]),
		},
		names:   []string{"house.day", "broken"},
		wantErr: true,
	}, {
		description: "unknown chart",
		sources: []chartSource{
			newTestChartSource(charts[0]),
		},
		names:   []string{"garage.day"},
		wantErr: true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			rd, err := New(test.sources...)
			if err != nil {
				t.Fatalf("Unexpected error creating RenderDispatcher: %s", err)
			}
			got, err := rd.RenderCharts(context.Background(), test.names...)
			if test.wantErr != (err != nil) {
				t.Fatalf("RenderCharts() yielded unexpected error %s", err)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Got rendered charts diff (-want +got):\n%s", diff)
			}
		})
	}
}
