package execution

import (
	"testing"

	"github.com/deniscmrg/investia-api/internal/domain"
)

func testConstraints() *domain.SymbolConstraints {
	return &domain.SymbolConstraints{
		Symbol:         "EURUSD",
		MinVolume:      0.01,
		MaxVolume:      10,
		VolumeStep:     0.01,
		TickSize:       0.00001,
		StopLevelTicks: 100,
	}
}

func TestCheckVolume(t *testing.T) {
	cases := []struct {
		name string
		qty  float64
		want string
	}{
		{"at minimum", 0.01, ""},
		{"valid multiple", 0.07, ""},
		{"half lot", 0.5, ""},
		{"at maximum", 10, ""},
		{"below minimum", 0.005, domain.ReasonVolumeBelowMinimum},
		{"above maximum", 10.01, domain.ReasonVolumeAboveMaximum},
		{"off the step grid", 0.075, domain.ReasonVolumeInvalidStep},
		{"off grid above one", 1.003, domain.ReasonVolumeInvalidStep},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckVolume(tc.qty, testConstraints()); got != tc.want {
				t.Fatalf("CheckVolume(%v) = %q, want %q", tc.qty, got, tc.want)
			}
		})
	}
}

func TestCheckVolumeFloatNoise(t *testing.T) {
	// 0.01*29 accumulates binary float error; the tolerance must absorb it.
	qty := 0.0
	for i := 0; i < 29; i++ {
		qty += 0.01
	}
	if got := CheckVolume(qty, testConstraints()); got != "" {
		t.Fatalf("CheckVolume(%v) = %q, want admissible", qty, got)
	}
}

func TestCheckVolumeConstraintsUnavailable(t *testing.T) {
	cases := []struct {
		name string
		c    *domain.SymbolConstraints
	}{
		{"nil constraints", nil},
		{"missing min", &domain.SymbolConstraints{MaxVolume: 10, VolumeStep: 0.01}},
		{"missing max", &domain.SymbolConstraints{MinVolume: 0.01, VolumeStep: 0.01}},
		{"zero step", &domain.SymbolConstraints{MinVolume: 0.01, MaxVolume: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckVolume(1, tc.c); got != domain.ReasonConstraintsUnavailable {
				t.Fatalf("CheckVolume = %q, want %q", got, domain.ReasonConstraintsUnavailable)
			}
		})
	}
}
