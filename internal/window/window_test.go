package window

import "testing"

func TestConfig_Compute(t *testing.T) {
	tests := []struct {
		name           string
		cfg            Config
		scrollOffset   int
		viewportHeight int
		want           Range
	}{
		{
			name:           "top of list",
			cfg:            Config{ItemHeight: 280, Buffer: 2},
			scrollOffset:   0,
			viewportHeight: 600,
			want:           Range{Start: 0, End: 5},
		},
		{
			name:           "buffer swallows small scroll",
			cfg:            Config{ItemHeight: 280, Buffer: 2},
			scrollOffset:   560,
			viewportHeight: 600,
			want:           Range{Start: 0, End: 5},
		},
		{
			name:           "deep scroll",
			cfg:            Config{ItemHeight: 280, Buffer: 2},
			scrollOffset:   2800,
			viewportHeight: 600,
			want:           Range{Start: 8, End: 13},
		},
		{
			name:           "exact viewport multiple",
			cfg:            Config{ItemHeight: 100, Buffer: 0},
			scrollOffset:   300,
			viewportHeight: 400,
			want:           Range{Start: 3, End: 7},
		},
		{
			name:           "zero viewport still renders buffer",
			cfg:            Config{ItemHeight: 100, Buffer: 2},
			scrollOffset:   0,
			viewportHeight: 0,
			want:           Range{Start: 0, End: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.Compute(tt.scrollOffset, tt.viewportHeight)
			if got != tt.want {
				t.Errorf("Compute(%d, %d) = %+v, want %+v",
					tt.scrollOffset, tt.viewportHeight, got, tt.want)
			}
		})
	}
}

func TestRange_Clamp(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		n    int
		want Range
	}{
		{"fits", Range{Start: 0, End: 5}, 10, Range{Start: 0, End: 5}},
		{"end past list", Range{Start: 0, End: 10}, 4, Range{Start: 0, End: 4}},
		{"fully past list", Range{Start: 8, End: 13}, 4, Range{Start: 4, End: 4}},
		{"empty list", Range{Start: 0, End: 10}, 0, Range{Start: 0, End: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Clamp(tt.n); got != tt.want {
				t.Errorf("Clamp(%d) = %+v, want %+v", tt.n, got, tt.want)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{10, 20, 30, 40, 50}

	got := Slice(items, Range{Start: 1, End: 3})
	if len(got) != 2 || got[0] != 20 || got[1] != 30 {
		t.Errorf("Slice = %v, want [20 30]", got)
	}

	if got := Slice(items, Range{Start: 3, End: 99}); len(got) != 2 {
		t.Errorf("overlong range: got %v, want 2 items", got)
	}
	if got := Slice([]int{}, Reset()); len(got) != 0 {
		t.Errorf("empty list: got %v, want none", got)
	}
}

func TestConfig_Offsets(t *testing.T) {
	cfg := Config{ItemHeight: 280, Buffer: 2}

	if got := cfg.OffsetFor(3); got != 840 {
		t.Errorf("OffsetFor(3) = %d, want 840", got)
	}
	if got := cfg.TotalHeight(7); got != 1960 {
		t.Errorf("TotalHeight(7) = %d, want 1960", got)
	}
}
