package scoring

import "github.com/rehabstats/emgcore/internal/emg/session"

// Aggregate reduces the classified contractions of one channel into its
// compliance rates. A channel with no contractions yet scores flat zero
// across the board, that is the "no data" floor and not an error.
func Aggregate(
	channel string,
	classified []session.ClassifiedContraction,
	expected int,
	weights session.RateWeights,
) session.ChannelCompliance {
	compliance := session.ChannelCompliance{
		Channel:              channel,
		TotalContractions:    len(classified),
		ExpectedContractions: expected,
	}

	total := len(classified)
	if total == 0 || expected <= 0 {
		return compliance
	}

	completionRate := float64(total) / float64(expected)
	if completionRate > 1 {
		// over-performing does not inflate the score
		completionRate = 1
	}

	var metIntensity, metDuration int
	for _, c := range classified {
		if c.MeetsIntensity {
			metIntensity++
		}
		if c.MeetsDuration {
			metDuration++
		}
	}

	compliance.CompletionRate = completionRate
	compliance.IntensityRate = float64(metIntensity) / float64(total)
	compliance.DurationRate = float64(metDuration) / float64(total)
	compliance.MuscleComplianceScore = weights.Completion*compliance.CompletionRate +
		weights.Intensity*compliance.IntensityRate +
		weights.Duration*compliance.DurationRate

	return compliance
}
