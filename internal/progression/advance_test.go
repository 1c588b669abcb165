package progression

import "testing"

func TestAdvance(t *testing.T) {
	tests := []struct {
		name    string
		current int
		correct int
		total   int
		want    int
	}{
		{"exactly at threshold levels up", 1, 8, 10, 2},
		{"below threshold unchanged", 1, 7, 10, 1},
		{"perfect score at cap stays capped", 3, 10, 10, 3},
		{"zero total is a no-op", 2, 0, 0, 2},
		{"zero total at min is a no-op", 1, 0, 0, 1},
		{"zero total at cap is a no-op", 3, 0, 0, 3},
		{"perfect score raises by exactly one", 1, 10, 10, 2},
		{"mid level advances", 2, 9, 10, 3},
		{"zero correct unchanged", 2, 0, 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Advance(tt.current, tt.correct, tt.total); got != tt.want {
				t.Errorf("Advance(%d, %d, %d) = %d, want %d",
					tt.current, tt.correct, tt.total, got, tt.want)
			}
		})
	}
}

func TestAdvanceIsIdempotent(t *testing.T) {
	// Same inputs, same output: no hidden counters.
	for i := 0; i < 3; i++ {
		if got := Advance(1, 8, 10); got != 2 {
			t.Fatalf("call %d: Advance(1, 8, 10) = %d, want 2", i+1, got)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 3},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		correct, total int
		want           float64
	}{
		{0, 0, 0},
		{8, 10, 80},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{21, 21, 100},
		// Exact halves round to even.
		{1, 16, 6.2},
		{3, 16, 18.8},
	}
	for _, tt := range tests {
		if got := Percent(tt.correct, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
		}
	}
}
