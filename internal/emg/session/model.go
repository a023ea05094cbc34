package session

import "time"

type ThresholdType string

const (
	ThresholdIntensity ThresholdType = "intensity"
	ThresholdDuration  ThresholdType = "duration"
)

// SourceOrigin tells where a threshold value came from. The resolver
// picks exactly one source per channel per threshold type, by priority.
type SourceOrigin string

const (
	OriginBackendCalibrated SourceOrigin = "backend_calibrated"
	OriginUserPerMuscle     SourceOrigin = "user_per_muscle"
	OriginSessionGlobal     SourceOrigin = "session_global"
	OriginSystemFallback    SourceOrigin = "system_fallback"
	OriginSignalEstimated   SourceOrigin = "signal_estimated"
)

// ThresholdSource is one candidate value for a channel threshold.
// Value == nil means the source exists but carries no usable number
// (e.g. calibration ran and produced nothing).
type ThresholdSource struct {
	Channel    string        `json:"channel"`
	Type       ThresholdType `json:"type"`
	Origin     SourceOrigin  `json:"origin"`
	Value      *float64      `json:"value"`
	Confidence float64       `json:"confidence"`
}

// EffectiveThreshold is the resolved threshold actually used downstream,
// together with provenance for UI transparency. Confidence is exposed
// only, it never enters the scoring math.
type EffectiveThreshold struct {
	Channel    string        `json:"channel"`
	Type       ThresholdType `json:"type"`
	Value      float64       `json:"value"`
	Origin     SourceOrigin  `json:"origin"`
	Confidence float64       `json:"confidence"`
}

// ContractionRecord is one detected muscle contraction, produced by the
// upstream signal pipeline. Immutable once detected.
type ContractionRecord struct {
	Channel       string    `json:"channel"`
	StartTime     time.Time `json:"startTime"`
	DurationMs    float64   `json:"durationMs"`
	PeakAmplitude float64   `json:"peakAmplitude"`
}

type Quality string

const (
	QualityGood     Quality = "good"
	QualityAdequate Quality = "adequate"
	QualityPoor     Quality = "poor"
)

// ClassifiedContraction is a ContractionRecord with the threshold checks
// applied. Derived data, recomputed whenever thresholds change.
type ClassifiedContraction struct {
	ContractionRecord
	MeetsIntensity bool    `json:"meetsIntensity"`
	MeetsDuration  bool    `json:"meetsDuration"`
	Quality        Quality `json:"quality"`
}

// ChannelCompliance aggregates classified contractions of one channel.
type ChannelCompliance struct {
	Channel               string  `json:"channel"`
	TotalContractions     int     `json:"totalContractions"`
	ExpectedContractions  int     `json:"expectedContractions"`
	CompletionRate        float64 `json:"completionRate"`
	IntensityRate         float64 `json:"intensityRate"`
	DurationRate          float64 `json:"durationRate"`
	MuscleComplianceScore float64 `json:"muscleComplianceScore"`

	// Incomplete marks a channel that had to be excluded from session
	// aggregates because no usable threshold could be resolved for it.
	Incomplete bool `json:"incomplete"`

	IntensityThreshold *EffectiveThreshold `json:"intensityThreshold,omitempty"`
	DurationThreshold  *EffectiveThreshold `json:"durationThreshold,omitempty"`
}

// Score is the session-level result. Constructed fresh on every
// recomputation and replaced wholesale, never mutated in place.
type Score struct {
	ComplianceScore float64 `json:"complianceScore"`
	SymmetryScore   float64 `json:"symmetryScore"`
	EffortScore     float64 `json:"effortScore"`
	GameScore       float64 `json:"gameScore"`
	OverallScore    float64 `json:"overallScore"`

	Weights Weights `json:"weights"`
	BFRGate float64 `json:"bfrGate"`

	// SymmetryOmitted / EffortOmitted tell which optional components were
	// left out of the weighted sum (weight redistributed, not zeroed).
	SymmetryOmitted bool `json:"symmetryOmitted"`
	EffortOmitted   bool `json:"effortOmitted"`
	GameOmitted     bool `json:"gameOmitted"`

	// Degraded is set when one or more channels were excluded as
	// incomplete, so the score must not be presented as fully trusted.
	Degraded           bool     `json:"degraded"`
	IncompleteChannels []string `json:"incompleteChannels,omitempty"`

	Channels []ChannelCompliance `json:"channels"`

	CalculatedAt time.Time `json:"calculatedAt"`
}
