package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"50", 5000, false},
		{"0.01", 1, false},
		{"12.345", 1235, false}, // half-up on the third digit
		{"12.346", 1235, false},
		{"12.344", 1234, false},
		{"1.000", 100, false},   // thousands separators are not handled
		{"", 0, true},
		{"  ", 0, true},
		{"-5", 0, true},
		{"+5", 0, true},
		{"0", 0, true},
		{"0.00", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
		{"12a", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecimalToCents(%q) = %d, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalToCents(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyReais(t *testing.T) {
	m := Money{Cents: 1234}
	if got := m.Reais(); got != 12.34 {
		t.Errorf("Reais() = %v, want 12.34", got)
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		target  int64
		want    int
	}{
		{"zero target", 0, 0, 0},
		{"empty goal", 0, 100000, 0},
		{"half way", 50000, 100000, 50},
		{"complete", 100000, 100000, 100},
		{"overfunded clamps", 150000, 100000, 100},
		{"rounds half up", 125, 1000, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{CurrentAmount: Money{Cents: tt.current}, TargetAmount: Money{Cents: tt.target}}
			if got := Progress(g); got != tt.want {
				t.Errorf("Progress() = %d, want %d", got, tt.want)
			}
		})
	}
}
