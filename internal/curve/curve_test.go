package curve

import (
	"math"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func TestEvaluate_EaseIn(t *testing.T) {
	c := EaseIn()
	tests := []struct {
		t    float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.15625},
		{0.5, 0.5},
		{0.75, 0.84375},
		{1, 1},
		{3, 1},
	}
	for _, tt := range tests {
		approxEqual(t, c.Evaluate(tt.t), tt.want, 1e-12, "Evaluate")
	}
}

func TestEvaluate_EmptyAndSingleKey(t *testing.T) {
	if got := (Curve{}).Evaluate(0.5); got != 0 {
		t.Fatalf("empty curve = %v, want 0", got)
	}
	single := New(Keyframe{Time: 2, Value: 7})
	if got := single.Evaluate(-4); got != 7 {
		t.Fatalf("single-key curve = %v, want 7", got)
	}
}

func TestEvaluate_LinearTangents(t *testing.T) {
	c := New(
		Keyframe{Time: 0, Value: 0, OutTangent: 2},
		Keyframe{Time: 1, Value: 2, InTangent: 2, OutTangent: -1},
		Keyframe{Time: 3, Value: 0, InTangent: -1},
	)
	approxEqual(t, c.Evaluate(0.5), 1, 1e-12, "first segment")
	approxEqual(t, c.Evaluate(2), 1, 1e-12, "second segment")
}

func TestNew_SortsKeys(t *testing.T) {
	c := New(Keyframe{Time: 1, Value: 1}, Keyframe{Time: 0, Value: 0})
	keys := c.Keys()
	if keys[0].Time != 0 || keys[1].Time != 1 {
		t.Fatalf("keys not sorted: %+v", keys)
	}
	approxEqual(t, c.Evaluate(0.5), 0.5, 1e-12, "Evaluate")
}

func TestUnmarshalYAML(t *testing.T) {
	var doc struct {
		Falloff Curve `yaml:"falloff"`
	}
	src := `falloff:
  - {time: 1, value: 1}
  - {time: 0, value: 0, out_tangent: 0}
`
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.Falloff.Len() != 2 {
		t.Fatalf("len = %d, want 2", doc.Falloff.Len())
	}
	approxEqual(t, doc.Falloff.Evaluate(0.5), 0.5, 1e-12, "Evaluate")
}

func TestUnmarshalYAML_RejectsDuplicateTimes(t *testing.T) {
	var c Curve
	err := yaml.Unmarshal([]byte("- {time: 0, value: 0}\n- {time: 0, value: 1}\n"), &c)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("err = %v, want duplicate key error", err)
	}
}
