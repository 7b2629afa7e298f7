package output

import "testing"

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.123456789, 0.123457},
		{1.0, 1.0},
		{0.9999999, 1.0},
		{-0.0000004, 0.0},
		{42.5, 42.5},
	}

	for _, tt := range tests {
		if got := RoundFloat(tt.in); got != tt.want {
			t.Errorf("RoundFloat(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.68, "0.68"},
		{1.0, "1"},
		{0.5000001, "0.5"},
		{123.456, "123.456"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.825); got != "82.5%" {
		t.Errorf("FormatPercent(0.825) = %q, want 82.5%%", got)
	}
}
