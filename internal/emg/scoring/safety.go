package scoring

// BFRGate is the blood-flow-restriction safety gate: 1.0 when the
// applied cuff pressure (percent of arterial occlusion pressure) lies
// inside the therapeutic window, inclusive at both ends, 0.0 otherwise.
//
// The gate is binary on purpose. Pressure outside the window voids the
// safety claim of the whole exercise, no matter how well the
// contractions themselves were performed.
func BFRGate(appliedPressureAOP, rangeMin, rangeMax float64) float64 {
	if appliedPressureAOP >= rangeMin && appliedPressureAOP <= rangeMax {
		return 1.0
	}
	return 0.0
}
