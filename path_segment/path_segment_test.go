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

package pathsegment

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func collect(t *testing.T, s Segment) []string {
	t.Helper()
	ret := []string{}
	it := s.Commands()
	for {
		cmd, ok := it.Next()
		if !ok {
			return ret
		}
		ret = append(ret, cmd.String())
	}
}

func TestLinearCommands(t *testing.T) {
	seg, err := NewLinear([]Point{{0, 0}, {10, 5}, {20, 0}})
	if err != nil {
		t.Fatalf("NewLinear yielded unexpected error: %s", err)
	}
	if got := seg.Start(); got != (Point{0, 0}) {
		t.Errorf("Start() = %+v, wanted {0 0}", got)
	}
	want := []string{"L 10 5", "L 20 0"}
	if diff := cmp.Diff(want, collect(t, seg)); diff != "" {
		t.Errorf("Linear commands diff (-want +got):\n%s", diff)
	}
}

func TestQuadraticCommands(t *testing.T) {
	seg, err := NewQuadratic([]Point{{0, 0}, {10, 4}, {20, 0}, {30, 4}})
	if err != nil {
		t.Fatalf("NewQuadratic yielded unexpected error: %s", err)
	}
	// The first curve's control is the midpoint of the first two points; the
	// rest are smooth continuations.
	want := []string{"Q 5 2 10 4", "T 20 0", "T 30 4"}
	if diff := cmp.Diff(want, collect(t, seg)); diff != "" {
		t.Errorf("Quadratic commands diff (-want +got):\n%s", diff)
	}
}

func TestCubicControlPoints(t *testing.T) {
	// Interior point (10, 10) has neighbors (0, 0) and (20, 0):
	// gradient = 0.5 · (0 − 0) / (20 − 0) = 0, offset = 10, so its incoming
	// control is (5, 10).  The final point (20, 0) is its own "next":
	// gradient = 0.5 · (0 − 10) / (20 − 10) = −0.5, offset = 10, so its
	// control is (15, 0 − 5·(−0.5)) = (15, 2.5).
	seg, err := NewCubic([]Point{{0, 0}, {10, 10}, {20, 0}})
	if err != nil {
		t.Fatalf("NewCubic yielded unexpected error: %s", err)
	}
	want := []string{"S 5 10 10 10", "S 15 2.5 20 0"}
	if diff := cmp.Diff(want, collect(t, seg)); diff != "" {
		t.Errorf("Cubic commands diff (-want +got):\n%s", diff)
	}
}

func TestCubicVerticalNeighborsDoNotDivideByZero(t *testing.T) {
	// Three colinear points with equal consecutive x-coordinates: the
	// tangent estimate is undefined, and the command stream must degrade to
	// a flat tangent rather than emit NaN.
	seg, err := NewCubic([]Point{{5, 0}, {5, 5}, {5, 10}})
	if err != nil {
		t.Fatalf("NewCubic yielded unexpected error: %s", err)
	}
	for _, cmd := range collect(t, seg) {
		if strings.Contains(cmd, "NaN") || strings.Contains(cmd, "Inf") {
			t.Errorf("command %q contains a non-finite coordinate", cmd)
		}
	}
	it := seg.Commands()
	for {
		cmd, ok := it.Next()
		if !ok {
			break
		}
		for _, arg := range cmd.Args {
			if math.IsNaN(arg) || math.IsInf(arg, 0) {
				t.Errorf("command %c has non-finite argument %g", cmd.Op, arg)
			}
		}
	}
}

func TestCubicValidateReportsUndefinedTangent(t *testing.T) {
	seg, err := NewCubic([]Point{{5, 0}, {5, 5}, {5, 10}})
	if err != nil {
		t.Fatalf("NewCubic yielded unexpected error: %s", err)
	}
	var ute *UndefinedTangentError
	if err := seg.Validate(); !errors.As(err, &ute) {
		t.Errorf("Validate() = %v, wanted *UndefinedTangentError", err)
	}
	monotone, err := NewCubic([]Point{{0, 0}, {10, 10}, {20, 0}})
	if err != nil {
		t.Fatalf("NewCubic yielded unexpected error: %s", err)
	}
	if err := monotone.Validate(); err != nil {
		t.Errorf("Validate() over monotone x yielded unexpected error: %s", err)
	}
}

func TestSinglePointSegmentsEmitNoCommands(t *testing.T) {
	for _, test := range []struct {
		description string
		build       func() (Segment, error)
	}{{
		description: "linear",
		build: func() (Segment, error) {
			return NewLinear([]Point{{1, 2}})
		},
	}, {
		description: "quadratic",
		build: func() (Segment, error) {
			return NewQuadratic([]Point{{1, 2}})
		},
	}, {
		description: "cubic",
		build: func() (Segment, error) {
			return NewCubic([]Point{{1, 2}})
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			seg, err := test.build()
			if err != nil {
				t.Fatalf("constructor yielded unexpected error: %s", err)
			}
			if got := seg.Start(); got != (Point{1, 2}) {
				t.Errorf("Start() = %+v, wanted {1 2}", got)
			}
			if cmds := collect(t, seg); len(cmds) != 0 {
				t.Errorf("single-point segment emitted commands %v, wanted none", cmds)
			}
		})
	}
}

func TestEmptyPointListRejected(t *testing.T) {
	if _, err := NewLinear(nil); err == nil {
		t.Errorf("NewLinear(nil) succeeded, wanted error")
	}
	if _, err := NewQuadratic(nil); err == nil {
		t.Errorf("NewQuadratic(nil) succeeded, wanted error")
	}
	if _, err := NewCubic(nil); err == nil {
		t.Errorf("NewCubic(nil) succeeded, wanted error")
	}
}

func TestCommandsAreReEvaluable(t *testing.T) {
	seg, err := NewLinear([]Point{{0, 0}, {1, 1}})
	if err != nil {
		t.Fatalf("NewLinear yielded unexpected error: %s", err)
	}
	first := collect(t, seg)
	second := collect(t, seg)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Commands() evaluations differ, diff (-first +second):\n%s", diff)
	}
}

func TestMoveTo(t *testing.T) {
	if got := MoveTo(Point{3.5, 7}).String(); got != "M 3.5 7" {
		t.Errorf("MoveTo = %q, wanted \"M 3.5 7\"", got)
	}
}
