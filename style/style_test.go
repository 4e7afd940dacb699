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

package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAttrsEmitInFixedOrder(t *testing.T) {
	s := &Style{
		Stroke:        "#205081",
		Fill:          "none",
		StrokeWidth:   1.5,
		StrokeOpacity: 1,
		FillOpacity:   0.25,
	}
	want := []Attr{
		{Name: "stroke", Value: "#205081"},
		{Name: "fill", Value: "none"},
		{Name: "stroke-width", Value: "1.5"},
		{Name: "stroke-opacity", Value: "1"},
		{Name: "fill-opacity", Value: "0.25"},
	}
	if diff := cmp.Diff(want, s.Attrs()); diff != "" {
		t.Errorf("attrs diff (-want +got):\n%s", diff)
	}
}

func TestPx(t *testing.T) {
	for _, test := range []struct {
		valPx float64
		want  string
	}{{
		valPx: 0,
		want:  "0.00px",
	}, {
		valPx: 630,
		want:  "630.00px",
	}, {
		valPx: 12.345,
		want:  "12.35px",
	}} {
		if got := Px(test.valPx); got != test.want {
			t.Errorf("Px(%f) = %s, wanted %s", test.valPx, got, test.want)
		}
	}
}
