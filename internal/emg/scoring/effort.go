package scoring

// EffortScore maps a post-exercise Borg CR10 rating onto [0,100] via
// the piecewise clinical table: the 4-6 band is the optimal training
// stimulus, bands further out degrade in steps.
func EffortScore(postRPE int) float64 {
	switch postRPE {
	case 4, 5, 6:
		return 100
	case 3, 7:
		return 80
	case 2, 8:
		return 60
	default:
		return 20
	}
}
