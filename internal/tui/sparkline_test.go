package tui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHistory_PushAndValues(t *testing.T) {
	h := NewHistory(3)
	h.Push(1)
	h.Push(2)
	h.Push(3)

	if diff := cmp.Diff([]int{1, 2, 3}, h.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory_Overflow(t *testing.T) {
	h := NewHistory(3)
	for v := 1; v <= 5; v++ {
		h.Push(v)
	}

	if diff := cmp.Diff([]int{3, 4, 5}, h.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
	if h.Last() != 5 {
		t.Errorf("Last() = %d, want 5", h.Last())
	}
}

func TestHistory_EmptyAndReset(t *testing.T) {
	h := NewHistory(4)
	if h.Last() != 0 || h.Values() != nil {
		t.Fatal("new history must be empty")
	}
	h.Push(9)
	h.Push(9)
	h.Reset()
	if h.Len() != 0 {
		t.Errorf("Len() after reset = %d, want 0", h.Len())
	}
	if h.Values() != nil {
		t.Error("expected nil values after reset")
	}
}

func TestHistory_ZeroCapacity(t *testing.T) {
	h := NewHistory(0)
	if h.Cap() != 1 {
		t.Errorf("Cap() = %d, want 1", h.Cap())
	}
	h.Push(42)
	h.Push(43)
	if h.Last() != 43 {
		t.Errorf("Last() = %d, want 43", h.Last())
	}
}

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   string
	}{
		{"empty", nil, ""},
		{"all zero", []int{0, 0, 0}, "▁▁▁"},
		{"all equal", []int{5, 5}, "██"},
		{"scaled to peak", []int{0, 7, 14}, "▁▄█"},
		{"negative clamps", []int{-3, 10}, "▁█"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RenderSparkline(tt.values); got != tt.want {
				t.Errorf("RenderSparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}
