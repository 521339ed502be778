package apportion

import "testing"

func TestRoundingPolicies(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x        float64
		halfEven float64
		halfUp   float64
	}{
		{0.5, 0, 1},
		{1.5, 2, 2},
		{2.5, 2, 3},
		{2.4999, 2, 2},
		{2.5001, 3, 3},
		{0, 0, 0},
		{7, 7, 7},
	}

	for _, tt := range tests {
		if got := HalfEven.Round(tt.x); got != tt.halfEven {
			t.Errorf("HalfEven.Round(%v) = %v, want %v", tt.x, got, tt.halfEven)
		}
		if got := HalfUp.Round(tt.x); got != tt.halfUp {
			t.Errorf("HalfUp.Round(%v) = %v, want %v", tt.x, got, tt.halfUp)
		}
	}
}

func TestParseRounding(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		want    Rounding
		wantErr bool
	}{
		{"", HalfEven, false},
		{"half-even", HalfEven, false},
		{"HALF-EVEN", HalfEven, false},
		{"bankers", HalfEven, false},
		{"half-up", HalfUp, false},
		{" up ", HalfUp, false},
		{"ceil", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseRounding(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRounding(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRounding(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
