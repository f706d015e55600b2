package units

import (
	_ "embed"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var policyDocument []byte

// USVolumePolicy controls rounding for customary volume units.
type USVolumePolicy struct {
	FractionLimit  float64   `yaml:"fraction_limit"`
	Fractions      []float64 `yaml:"fractions"`
	LargeIncrement float64   `yaml:"large_increment"`
}

// USWeightPolicy controls rounding for customary weight units.
type USWeightPolicy struct {
	DecimalLimit float64 `yaml:"decimal_limit"`
}

// MetricPolicy controls rounding for metric units of either category.
type MetricPolicy struct {
	DecimalLimit    float64 `yaml:"decimal_limit"`
	CoarseLimit     float64 `yaml:"coarse_limit"`
	CoarseIncrement float64 `yaml:"coarse_increment"`
}

// RoundingPolicy is the full breakpoint table applied by RoundToPractical.
type RoundingPolicy struct {
	USVolume USVolumePolicy `yaml:"us_volume"`
	USWeight USWeightPolicy `yaml:"us_weight"`
	Metric   MetricPolicy   `yaml:"metric"`
}

// DefaultRoundingPolicy is loaded from the embedded policy document at
// startup. Treat it as read-only.
var DefaultRoundingPolicy = mustLoadPolicy()

func mustLoadPolicy() RoundingPolicy {
	var policy RoundingPolicy
	if err := yaml.Unmarshal(policyDocument, &policy); err != nil {
		panic(fmt.Sprintf("units: invalid embedded rounding policy: %v", err))
	}
	return policy
}

// RoundToPractical rounds a quantity to a kitchen-friendly increment for
// the given unit using DefaultRoundingPolicy. Imprecise units pass through
// unchanged.
func RoundToPractical(quantity float64, unit Unit) float64 {
	return DefaultRoundingPolicy.Round(quantity, unit)
}

// Round applies the policy table to one quantity.
func (p RoundingPolicy) Round(quantity float64, unit Unit) float64 {
	if _, numeric := factorOf(unit); !numeric {
		return quantity
	}

	if SystemOf(unit) == Metric {
		return p.roundMetric(quantity)
	}
	if CategoryOf(unit) == Volume {
		return p.roundUSVolume(quantity)
	}
	return p.roundUSWeight(quantity)
}

func (p RoundingPolicy) roundUSVolume(quantity float64) float64 {
	if quantity >= p.USVolume.FractionLimit {
		return roundToIncrement(quantity, p.USVolume.LargeIncrement)
	}

	whole := math.Floor(quantity)
	frac := quantity - whole

	best := 0.0
	bestDistance := frac
	consider := func(candidate float64) {
		if distance := math.Abs(frac - candidate); distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	for _, candidate := range p.USVolume.Fractions {
		consider(candidate)
	}
	consider(1)
	return whole + best
}

func (p RoundingPolicy) roundUSWeight(quantity float64) float64 {
	if quantity >= p.USWeight.DecimalLimit {
		return math.Round(quantity)
	}
	return roundToIncrement(quantity, 0.1)
}

func (p RoundingPolicy) roundMetric(quantity float64) float64 {
	switch {
	case quantity >= p.Metric.CoarseLimit:
		return roundToIncrement(quantity, p.Metric.CoarseIncrement)
	case quantity >= p.Metric.DecimalLimit:
		return math.Round(quantity)
	default:
		return roundToIncrement(quantity, 0.1)
	}
}

func roundToIncrement(quantity, increment float64) float64 {
	return math.Round(quantity/increment) * increment
}
