package scoring

import "github.com/rehabstats/emgcore/internal/emg/session"

// Classify applies the resolved thresholds to one contraction.
//
// The quality label is strictly three-tier: good needs both checks,
// poor means neither, and a contraction meeting exactly one of the two
// is adequate. Adequate must never be folded into good or poor, the
// partial-success tier is clinically meaningful on its own.
func Classify(
	c session.ContractionRecord,
	intensity, duration session.EffectiveThreshold,
) session.ClassifiedContraction {
	meetsIntensity := c.PeakAmplitude >= intensity.Value
	meetsDuration := c.DurationMs >= duration.Value

	var quality session.Quality
	switch {
	case meetsIntensity && meetsDuration:
		quality = session.QualityGood
	case meetsIntensity || meetsDuration:
		quality = session.QualityAdequate
	default:
		quality = session.QualityPoor
	}

	return session.ClassifiedContraction{
		ContractionRecord: c,
		MeetsIntensity:    meetsIntensity,
		MeetsDuration:     meetsDuration,
		Quality:           quality,
	}
}
