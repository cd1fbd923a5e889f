package equal

import (
	"errors"
	"math"
	"testing"
	"time"
)

type point struct {
	X, Y int
}

type labeled struct {
	Name   string
	Point  *point
	Tags   []string
	hidden int
}

type ring struct {
	Value int
	Next  *ring
}

func TestIsEqual(t *testing.T) {
	shared := &point{1, 2}
	tests := []struct {
		name string
		x, y any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", nil, 0, false},
		{"equal ints", 3, 3, true},
		{"different ints", 3, 4, false},
		{"int vs int64", 3, int64(3), false},
		{"equal strings", "a", "a", true},
		{"empty map vs empty slice", map[string]any{}, []any{}, false},
		{"nil map vs empty map", map[string]any(nil), map[string]any{}, true},
		{"extra property on y", map[string]any{"a": 1}, map[string]any{"a": 1, "b": 2}, false},
		{"extra property on x", map[string]any{"a": 1, "b": 2}, map[string]any{"a": 1}, false},
		{"same keys different key", map[string]any{"a": 1}, map[string]any{"b": 1}, false},
		{"nested equal", map[string]any{"a": map[string]any{"b": 1}}, map[string]any{"a": map[string]any{"b": 1}}, true},
		{"nested different", map[string]any{"a": map[string]any{"b": 1}}, map[string]any{"a": map[string]any{"b": 2}}, false},
		{"nested scalar vs object", map[string]any{"a": 1}, map[string]any{"a": map[string]any{}}, false},
		{"slices equal", []int{1, 2, 3}, []int{1, 2, 3}, true},
		{"slices longer", []int{1, 2}, []int{1, 2, 3}, false},
		{"arrays differ", [2]int{1, 2}, [2]int{1, 3}, false},
		{"distinct pointers same content", &point{1, 2}, &point{1, 2}, true},
		{"distinct pointers different content", &point{1, 2}, &point{2, 1}, false},
		{"same pointer", shared, shared, true},
		{"unexported fields ignored", labeled{Name: "a", hidden: 1}, labeled{Name: "a", hidden: 2}, true},
		{"exported pointer field", labeled{Point: &point{1, 1}}, labeled{Point: &point{1, 1}}, true},
		{"nil vs non-nil pointer field", labeled{Point: nil}, labeled{Point: &point{}}, false},
		{"nil vs empty slice field", labeled{Tags: nil}, labeled{Tags: []string{}}, true},
		{"NaN", math.NaN(), math.NaN(), false},
		{"no exported fields", time.Unix(0, 0), time.Unix(1, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEqual(tt.x, tt.y); got != tt.want {
				t.Errorf("IsEqual(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
			if got := IsEqual(tt.y, tt.x); got != tt.want {
				t.Errorf("IsEqual(%v, %v) = %v, want %v (symmetry)", tt.y, tt.x, got, tt.want)
			}
		})
	}
}

func TestIsEqual_Reflexive(t *testing.T) {
	values := []any{
		0,
		"text",
		map[string]any{"a": map[string]any{"b": []any{1, "two", nil}}},
		[]map[string]int{{"x": 1}, {"y": 2}},
		&labeled{Name: "n", Point: &point{3, 4}, Tags: []string{"t"}},
		struct{ F func() }{F: func() {}},
	}
	for _, v := range values {
		if !IsEqual(v, v) {
			t.Errorf("IsEqual(%#v, itself) = false", v)
		}
	}
}

func TestCompare_Cycle(t *testing.T) {
	a := &ring{Value: 1}
	a.Next = a
	b := &ring{Value: 1}
	b.Next = b

	ok, err := Compare(a, b)
	if ok {
		t.Error("expected cyclic values to not compare equal")
	}
	if !errors.Is(err, ErrCycle) {
		t.Errorf("expected ErrCycle, got %v", err)
	}
	if IsEqual(a, b) {
		t.Error("IsEqual should report false for cyclic values")
	}

	// The same reference short-circuits before any traversal.
	if ok, err = Compare(a, a); !ok || err != nil {
		t.Errorf("Compare(a, a) = %v, %v; want true, nil", ok, err)
	}

	m := map[string]any{}
	m["self"] = m
	n := map[string]any{}
	n["self"] = n
	if _, err = Compare(m, n); !errors.Is(err, ErrCycle) {
		t.Errorf("expected ErrCycle for self-referencing maps, got %v", err)
	}
}

func TestCompare_MismatchBeforeCycle(t *testing.T) {
	a := &ring{Value: 1}
	a.Next = a
	b := &ring{Value: 2}
	b.Next = b

	ok, err := Compare(a, b)
	if ok || err != nil {
		t.Errorf("Compare = %v, %v; want false, nil", ok, err)
	}
}

func TestCompare_SharedSubstructure(t *testing.T) {
	leaf := &point{1, 1}
	x := []*point{leaf, leaf}
	y := []*point{{1, 1}, {1, 1}}
	ok, err := Compare(x, y)
	if !ok || err != nil {
		t.Errorf("Compare = %v, %v; want true, nil", ok, err)
	}
}

func TestCompare_MaxDepth(t *testing.T) {
	deep := func() any {
		return map[string]any{"a": map[string]any{"b": map[string]any{"c": map[string]any{"d": 1}}}}
	}

	if ok, err := Compare(deep(), deep(), WithMaxDepth(2)); ok || !errors.Is(err, ErrDepthExceeded) {
		t.Errorf("Compare with depth 2 = %v, %v; want false, ErrDepthExceeded", ok, err)
	}
	if ok, err := Compare(deep(), deep(), WithMaxDepth(16)); !ok || err != nil {
		t.Errorf("Compare with depth 16 = %v, %v; want true, nil", ok, err)
	}
	if ok, err := Compare(deep(), deep()); !ok || err != nil {
		t.Errorf("Compare unbounded = %v, %v; want true, nil", ok, err)
	}
}

func BenchmarkIsEqual_Nested(b *testing.B) {
	build := func() map[string]any {
		m := map[string]any{}
		for i := 0; i < 16; i++ {
			m[string(rune('a'+i))] = map[string]any{"n": i, "list": []any{i, "x", true}}
		}
		return m
	}
	x, y := build(), build()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = IsEqual(x, y)
	}
}
