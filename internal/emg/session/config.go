package session

import (
	"fmt"

	"go.uber.org/multierr"
)

const (
	// DefaultMVCPercentage is the fraction of the MVC base used as the
	// intensity threshold when the clinician did not override it.
	DefaultMVCPercentage = 0.75

	// DefaultExpectedContractions per channel per session.
	DefaultExpectedContractions = 12

	// DefaultDurationThresholdMs is the clinical default minimal
	// contraction duration.
	DefaultDurationThresholdMs = 2000

	// DurationThresholdMinMs / DurationThresholdMaxMs bound the
	// clinically meaningful duration threshold range.
	DurationThresholdMinMs = 2000
	DurationThresholdMaxMs = 10000

	// MinIntensityBase is the minimal valid MVC base value. Anything
	// below it (including zero) is treated as an absent calibration,
	// not as a valid threshold of zero.
	MinIntensityBase = 0.01

	// BFR pressure window, in percent of arterial occlusion pressure.
	DefaultBFRPressureMin = 45
	DefaultBFRPressureMax = 55

	weightSumTolerance = 1e-6
)

// Weights of the overall score components. Must sum to 1.0.
type Weights struct {
	Compliance float64 `json:"compliance"`
	Symmetry   float64 `json:"symmetry"`
	Effort     float64 `json:"effort"`
	Game       float64 `json:"game"`
}

func DefaultWeights() Weights {
	return Weights{
		Compliance: 0.40,
		Symmetry:   0.25,
		Effort:     0.20,
		Game:       0.15,
	}
}

func (w Weights) Sum() float64 {
	return w.Compliance + w.Symmetry + w.Effort + w.Game
}

// Validate rejects malformed weights instead of renormalizing them, so
// that a misconfigured session is reported rather than silently fixed.
func (w Weights) Validate() error {
	var err error
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"compliance", w.Compliance},
		{"symmetry", w.Symmetry},
		{"effort", w.Effort},
		{"game", w.Game},
	} {
		if c.value < 0 || c.value > 1 {
			err = multierr.Append(err, fmt.Errorf("%w: %s weight %v out of [0,1]", ErrInvalidWeights, c.name, c.value))
		}
	}
	if sum := w.Sum(); sum < 1-weightSumTolerance || sum > 1+weightSumTolerance {
		err = multierr.Append(err, fmt.Errorf("%w: sum %v, expected 1.0", ErrInvalidWeights, sum))
	}
	return err
}

// RateWeights weigh the completion/intensity/duration rates inside a
// single muscle compliance score. Must sum to 1.0.
type RateWeights struct {
	Completion float64 `json:"completion"`
	Intensity  float64 `json:"intensity"`
	Duration   float64 `json:"duration"`
}

func DefaultRateWeights() RateWeights {
	third := 1.0 / 3.0
	return RateWeights{Completion: third, Intensity: third, Duration: third}
}

func (w RateWeights) Validate() error {
	sum := w.Completion + w.Intensity + w.Duration
	if sum < 1-weightSumTolerance || sum > 1+weightSumTolerance {
		return fmt.Errorf("%w: rate weights sum %v, expected 1.0", ErrInvalidWeights, sum)
	}
	return nil
}

// Config is the immutable per-session configuration. Every edit produces
// a new Config value, existing ones are never mutated, so concurrent
// recomputations can never observe a half-updated configuration.
type Config struct {
	SessionID string `json:"sessionId"`

	// MVCPercentage scales the resolved MVC base into the effective
	// intensity threshold.
	MVCPercentage float64 `json:"mvcPercentage"`

	// ExpectedContractions is the session-wide expected contraction
	// count, optionally overridden per channel.
	ExpectedContractions        int            `json:"expectedContractions"`
	ExpectedContractionsPerChan map[string]int `json:"expectedContractionsPerChannel,omitempty"`

	// DurationThresholdMs is the session-global duration threshold.
	// Per-channel overrides come in as seconds, the way clinicians
	// enter them.
	DurationThresholdMs      float64            `json:"durationThresholdMs"`
	DurationOverridesSeconds map[string]float64 `json:"durationOverridesSeconds,omitempty"`

	BFREnabled            bool    `json:"bfrEnabled"`
	AppliedPressureAOP    float64 `json:"appliedPressureAOP"`
	BFRPressureMinPercent float64 `json:"bfrPressureMinPercent"`
	BFRPressureMaxPercent float64 `json:"bfrPressureMaxPercent"`

	// PostRPE is the post-exercise Borg CR10 rating, nil when the
	// patient did not report one.
	PostRPE *int `json:"postRpe"`

	// GameScore is an optional engagement score supplied by the game
	// layer, nil when the session had no game component.
	GameScore *float64 `json:"gameScore"`

	Weights     Weights     `json:"weights"`
	RateWeights RateWeights `json:"rateWeights"`

	// Sources are all threshold candidates collected upstream
	// (calibration results, clinician overrides, session globals).
	Sources []ThresholdSource `json:"sources"`
}

// NewConfig returns a Config with all clinical defaults applied.
func NewConfig(sessionID string) Config {
	return Config{
		SessionID:             sessionID,
		MVCPercentage:         DefaultMVCPercentage,
		ExpectedContractions:  DefaultExpectedContractions,
		DurationThresholdMs:   DefaultDurationThresholdMs,
		BFRPressureMinPercent: DefaultBFRPressureMin,
		BFRPressureMaxPercent: DefaultBFRPressureMax,
		Weights:               DefaultWeights(),
		RateWeights:           DefaultRateWeights(),
	}
}

// Validate checks everything that makes a configuration unusable for
// scoring. Multiple problems are reported together.
func (c Config) Validate() error {
	err := c.Weights.Validate()
	err = multierr.Append(err, c.RateWeights.Validate())
	if c.MVCPercentage <= 0 || c.MVCPercentage > 1 {
		err = multierr.Append(err, fmt.Errorf("mvc percentage %v out of (0,1]", c.MVCPercentage))
	}
	if c.ExpectedContractions <= 0 {
		err = multierr.Append(err, fmt.Errorf("expected contractions %d, must be positive", c.ExpectedContractions))
	}
	if c.PostRPE != nil && (*c.PostRPE < 0 || *c.PostRPE > 10) {
		err = multierr.Append(err, fmt.Errorf("post RPE %d out of [0,10]", *c.PostRPE))
	}
	return err
}

// ExpectedFor returns the expected contraction count for a channel.
func (c Config) ExpectedFor(channel string) int {
	if n, ok := c.ExpectedContractionsPerChan[channel]; ok && n > 0 {
		return n
	}
	if c.ExpectedContractions > 0 {
		return c.ExpectedContractions
	}
	return DefaultExpectedContractions
}

// SourcesFor filters the collected threshold sources down to one
// channel and threshold type.
func (c Config) SourcesFor(channel string, t ThresholdType) []ThresholdSource {
	var out []ThresholdSource
	for _, s := range c.Sources {
		if s.Channel == channel && s.Type == t {
			out = append(out, s)
		}
	}
	return out
}
