package scoring_test

import (
	"testing"

	"github.com/rehabstats/emgcore/internal/emg/scoring"
	"github.com/rehabstats/emgcore/internal/emg/session"

	"github.com/stretchr/testify/assert"
)

func classifiedBatch(good, intensityOnly, durationOnly, poor int) []session.ClassifiedContraction {
	var out []session.ClassifiedContraction
	add := func(n int, intensity, duration bool) {
		for i := 0; i < n; i++ {
			out = append(out, session.ClassifiedContraction{
				MeetsIntensity: intensity,
				MeetsDuration:  duration,
			})
		}
	}
	add(good, true, true)
	add(intensityOnly, true, false)
	add(durationOnly, false, true)
	add(poor, false, false)
	return out
}

func TestAggregate(t *testing.T) {
	weights := session.DefaultRateWeights()

	t.Run("no contractions is a zero floor, not an error", func(t *testing.T) {
		c := scoring.Aggregate("left_quad", nil, 12, weights)
		assert.Zero(t, c.CompletionRate)
		assert.Zero(t, c.IntensityRate)
		assert.Zero(t, c.DurationRate)
		assert.Zero(t, c.MuscleComplianceScore)
		assert.Equal(t, 12, c.ExpectedContractions)
	})

	t.Run("completion rate is capped at 1", func(t *testing.T) {
		c := scoring.Aggregate("left_quad", classifiedBatch(15, 0, 0, 0), 12, weights)
		assert.InDelta(t, 1.0, c.CompletionRate, 1e-9)
		assert.InDelta(t, 1.0, c.MuscleComplianceScore, 1e-9)
	})

	t.Run("rates over performed contractions", func(t *testing.T) {
		// 6 of 12 expected, 4 strong, 3 long
		c := scoring.Aggregate("left_quad", classifiedBatch(2, 2, 1, 1), 12, weights)
		assert.InDelta(t, 0.5, c.CompletionRate, 1e-9)
		assert.InDelta(t, 4.0/6.0, c.IntensityRate, 1e-9)
		assert.InDelta(t, 3.0/6.0, c.DurationRate, 1e-9)
		expected := (0.5 + 4.0/6.0 + 3.0/6.0) / 3.0
		assert.InDelta(t, expected, c.MuscleComplianceScore, 1e-9)
		assert.Equal(t, 6, c.TotalContractions)
	})

	t.Run("custom rate weights", func(t *testing.T) {
		c := scoring.Aggregate("left_quad", classifiedBatch(12, 0, 0, 0), 12, session.RateWeights{
			Completion: 0.5, Intensity: 0.25, Duration: 0.25,
		})
		assert.InDelta(t, 1.0, c.MuscleComplianceScore, 1e-9)
	})
}
