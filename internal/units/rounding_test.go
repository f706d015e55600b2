package units

import "testing"

func TestDefaultRoundingPolicyBreakpoints(t *testing.T) {
	t.Parallel()

	policy := DefaultRoundingPolicy
	if policy.USVolume.FractionLimit != 8 {
		t.Fatalf("USVolume.FractionLimit = %v", policy.USVolume.FractionLimit)
	}
	if policy.USVolume.LargeIncrement != 0.5 {
		t.Fatalf("USVolume.LargeIncrement = %v", policy.USVolume.LargeIncrement)
	}
	if len(policy.USVolume.Fractions) != 6 {
		t.Fatalf("USVolume.Fractions has %d entries", len(policy.USVolume.Fractions))
	}
	if policy.USWeight.DecimalLimit != 2 {
		t.Fatalf("USWeight.DecimalLimit = %v", policy.USWeight.DecimalLimit)
	}
	if policy.Metric.DecimalLimit != 10 || policy.Metric.CoarseLimit != 20 || policy.Metric.CoarseIncrement != 5 {
		t.Fatalf("metric policy = %+v", policy.Metric)
	}
}

func TestRoundToPractical(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		quantity float64
		unit     Unit
		want     float64
	}{
		{"us volume snaps to eighth", 0.13, Cup, 0.125},
		{"us volume snaps to quarter", 0.22, Cup, 0.25},
		{"us volume snaps to third", 0.35, Cup, 1.0 / 3},
		{"us volume snaps to half", 0.52, Teaspoon, 0.5},
		{"us volume snaps whole plus fraction", 2.8, Cup, 2.75},
		{"us volume snaps up to whole", 1.95, Cup, 2},
		{"us volume large rounds to half", 9.3, Cup, 9.5},
		{"us weight small keeps one decimal", 1.24, Ounce, 1.2},
		{"us weight large rounds whole", 3.6, Pound, 4},
		{"metric tiny keeps one decimal", 1.26, Gram, 1.3},
		{"metric mid rounds whole", 12.4, Milliliter, 12},
		{"metric large rounds to five", 247, Milliliter, 245},
		{"metric large rounds up to five", 248, Gram, 250},
		{"imprecise unchanged", 2.345, Pinch, 2.345},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RoundToPractical(tt.quantity, tt.unit); !almostEqual(got, tt.want) {
				t.Fatalf("RoundToPractical(%v, %s) = %v, want %v", tt.quantity, tt.unit, got, tt.want)
			}
		})
	}
}
