package scoring_test

import (
	"testing"

	"github.com/rehabstats/emgcore/internal/emg/scoring"
	"github.com/rehabstats/emgcore/internal/emg/session"

	"github.com/stretchr/testify/assert"
)

func intensityThreshold(v float64) session.EffectiveThreshold {
	return session.EffectiveThreshold{
		Type:  session.ThresholdIntensity,
		Value: v,
	}
}

func durationThreshold(v float64) session.EffectiveThreshold {
	return session.EffectiveThreshold{
		Type:  session.ThresholdDuration,
		Value: v,
	}
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name            string
		durationMs      float64
		peakAmplitude   float64
		expectIntensity bool
		expectDuration  bool
		expectQuality   session.Quality
	}{
		{
			name:            "both met is good",
			durationMs:      2500,
			peakAmplitude:   0.08,
			expectIntensity: true,
			expectDuration:  true,
			expectQuality:   session.QualityGood,
		},
		{
			name:            "strong but short is adequate",
			durationMs:      1800,
			peakAmplitude:   0.08,
			expectIntensity: true,
			expectDuration:  false,
			expectQuality:   session.QualityAdequate,
		},
		{
			name:            "long but weak is adequate",
			durationMs:      2500,
			peakAmplitude:   0.03,
			expectIntensity: false,
			expectDuration:  true,
			expectQuality:   session.QualityAdequate,
		},
		{
			name:            "neither met is poor",
			durationMs:      1500,
			peakAmplitude:   0.03,
			expectIntensity: false,
			expectDuration:  false,
			expectQuality:   session.QualityPoor,
		},
		{
			name:            "exact threshold values count as met",
			durationMs:      2000,
			peakAmplitude:   0.06,
			expectIntensity: true,
			expectDuration:  true,
			expectQuality:   session.QualityGood,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			classified := scoring.Classify(session.ContractionRecord{
				Channel:       "left_quad",
				DurationMs:    tc.durationMs,
				PeakAmplitude: tc.peakAmplitude,
			}, intensityThreshold(0.06), durationThreshold(2000))

			assert.Equal(t, tc.expectIntensity, classified.MeetsIntensity)
			assert.Equal(t, tc.expectDuration, classified.MeetsDuration)
			assert.Equal(t, tc.expectQuality, classified.Quality)
		})
	}
}
