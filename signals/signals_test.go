package signals

import (
	"math"
	"testing"
	"time"
)

func TestPeriodic(t *testing.T) {
	type testcase struct {
		name     string
		kind     Kind
		elapsed  time.Duration
		expected float64
	}
	for _, tc := range []testcase{
		{name: "sine start", kind: Sine, elapsed: 0, expected: 1},
		{name: "sine quarter", kind: Sine, elapsed: time.Second, expected: 3},
		{name: "sine three quarters", kind: Sine, elapsed: 3 * time.Second, expected: -1},
		{name: "saw start", kind: Saw, elapsed: 0, expected: -1},
		{name: "saw half", kind: Saw, elapsed: 2 * time.Second, expected: 1},
		{name: "saw wraps", kind: Saw, elapsed: 6 * time.Second, expected: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewPeriodic(tc.name, tc.kind, 4*time.Second, 2, 1)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			v, _ := s.Read(tc.elapsed)
			if math.Abs(v-tc.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", tc.expected, v)
			}
		})
	}
}

func TestWalkStaysBounded(t *testing.T) {
	w := NewWalk("walk", 1, 5, 3)
	for i := 0; i < 1000; i++ {
		v, _ := w.Read(0)
		if v < -3 || v > 3 {
			t.Fatalf("expected walk within [-3, 3], got %v", v)
		}
	}
}

func TestParse(t *testing.T) {
	sigs, err := Parse("sine:2s, saw ,walk,sine", 7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var names []string
	for _, s := range sigs {
		names = append(names, s.Name())
	}
	expected := []string{"sine", "saw", "walk", "sine2"}
	if len(names) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, names)
		}
	}
	for _, bad := range []string{"", "square", "sine:soon", "saw:-1s"} {
		if _, err := Parse(bad, 0); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}
