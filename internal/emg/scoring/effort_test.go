package scoring_test

import (
	"testing"

	"github.com/rehabstats/emgcore/internal/emg/scoring"

	"github.com/stretchr/testify/assert"
)

func TestEffortScore(t *testing.T) {
	expected := map[int]float64{
		0:  20,
		1:  20,
		2:  60,
		3:  80,
		4:  100,
		5:  100,
		6:  100,
		7:  80,
		8:  60,
		9:  20,
		10: 20,
	}

	for rpe, score := range expected {
		assert.Equal(t, score, scoring.EffortScore(rpe), "rpe %d", rpe)
	}
}
