package scoring

import (
	"fmt"
	"math"

	"github.com/rehabstats/emgcore/internal/emg/session"
)

// Symmetry compares the compliance of a bilateral channel pair and maps
// it onto [0,100]. Two silent channels are perfectly symmetric by
// convention: with no signal on either side there is no asymmetry to
// observe, and dividing by zero would be wrong anyway.
func Symmetry(left, right session.ChannelCompliance) float64 {
	l, r := left.MuscleComplianceScore, right.MuscleComplianceScore
	if l == 0 && r == 0 {
		return 100
	}
	return 100 * (1 - math.Abs(l-r)/(l+r))
}

// SymmetryForChannels applies Symmetry when the channels form a
// recognized bilateral pair, i.e. exactly two of them. Anything else is
// degenerate input and symmetry is omitted rather than guessed.
func SymmetryForChannels(channels []session.ChannelCompliance) (float64, error) {
	if len(channels) != 2 {
		return 0, fmt.Errorf("%w: got %d", session.ErrDegenerateSymmetryInput, len(channels))
	}
	return Symmetry(channels[0], channels[1]), nil
}
