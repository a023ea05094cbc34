package scoring

import "github.com/rehabstats/emgcore/internal/emg/session"

// CombineParams carries the per-component scores into the weighted sum.
// Symmetry, effort and game are optional: a nil component is excluded
// from the sum and its weight is redistributed proportionally among the
// components that are present. An absent component is never treated as
// a silent zero.
type CombineParams struct {
	Compliance float64
	Symmetry   *float64
	Effort     *float64
	Game       *float64
	BFRGate    float64
	Weights    session.Weights
}

type Combined struct {
	Overall         float64
	SymmetryOmitted bool
	EffortOmitted   bool
	GameOmitted     bool
}

// Combine produces the overall score. Weights are validated by the
// caller (the pipeline rejects a malformed configuration up front); the
// BFR gate multiplies into the compliance component only.
func Combine(p CombineParams) Combined {
	out := Combined{
		SymmetryOmitted: p.Symmetry == nil,
		EffortOmitted:   p.Effort == nil,
		GameOmitted:     p.Game == nil,
	}

	type component struct {
		weight float64
		value  float64
	}
	parts := []component{
		{p.Weights.Compliance, p.BFRGate * p.Compliance},
	}
	if p.Symmetry != nil {
		parts = append(parts, component{p.Weights.Symmetry, *p.Symmetry})
	}
	if p.Effort != nil {
		parts = append(parts, component{p.Weights.Effort, *p.Effort})
	}
	if p.Game != nil {
		parts = append(parts, component{p.Weights.Game, *p.Game})
	}

	var activeWeight float64
	for _, c := range parts {
		activeWeight += c.weight
	}
	if activeWeight == 0 {
		return out
	}

	var overall float64
	for _, c := range parts {
		overall += (c.weight / activeWeight) * c.value
	}
	out.Overall = overall

	return out
}
