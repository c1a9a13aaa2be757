package calculator

import (
	"testing"

	"FightLedger/internal/model"
)

func TestKelly(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		odds float64
		want float64
	}{
		{"even money edge", 0.6, 2.0, 0.2},
		{"no edge", 0.5, 2.0, 0},
		{"negative edge clamps to zero", 0.3, 2.0, 0},
		{"certain win clamps to one", 1.0, 3.0, 1},
		{"odds of one means no bet", 0.9, 1.0, 0},
		{"odds below one means no bet", 0.9, 0.5, 0},
		{"underdog", 0.4, 3.0, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Kelly(tt.p, tt.odds)
			if !approx(got, tt.want, 1e-9) {
				t.Errorf("Kelly(%v, %v) = %v, want %v", tt.p, tt.odds, got, tt.want)
			}
		})
	}
}

func TestKellyCriterion_Formats(t *testing.T) {
	got, err := KellyCriterion(0.6, "+100", model.OddsAmerican)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(got, 0.2, 1e-9) {
		t.Errorf("KellyCriterion(0.6, +100) = %v, want 0.2", got)
	}
	got, err = KellyCriterion(0.6, "1/1", model.OddsFractional)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(got, 0.2, 1e-9) {
		t.Errorf("KellyCriterion(0.6, 1/1) = %v, want 0.2", got)
	}
	if _, err := KellyCriterion(0.6, "evens", model.OddsFractional); err == nil {
		t.Error("expected error for malformed fractional odds")
	}
}

func TestKellyStake(t *testing.T) {
	if got := KellyStake(1000, 0.5, 0.6, 2.0); !approx(got, 100, 1e-6) {
		t.Errorf("half Kelly stake = %v, want 100", got)
	}
	if got := KellyStake(1000, 0, 0.6, 2.0); !approx(got, 200, 1e-6) {
		t.Errorf("full Kelly stake = %v, want 200", got)
	}
}
