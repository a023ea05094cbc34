package thresholds

import (
	"fmt"

	"github.com/rehabstats/emgcore/internal/emg/session"

	log "github.com/sirupsen/logrus"
)

// intensityPriority and durationPriority order the source origins from
// most to least authoritative. SignalEstimated is an intensity-only
// last resort, below even the system fallback.
var intensityPriority = []session.SourceOrigin{
	session.OriginBackendCalibrated,
	session.OriginUserPerMuscle,
	session.OriginSessionGlobal,
	session.OriginSystemFallback,
	session.OriginSignalEstimated,
}

var durationPriority = []session.SourceOrigin{
	session.OriginBackendCalibrated,
	session.OriginUserPerMuscle,
	session.OriginSessionGlobal,
	session.OriginSystemFallback,
}

// originConfidence are fixed engineering constants, exposed for UI
// transparency only. They never enter the scoring math.
var originConfidence = map[session.SourceOrigin]float64{
	session.OriginBackendCalibrated: 0.8,
	session.OriginUserPerMuscle:     0.95,
	session.OriginSessionGlobal:     0.5,
	session.OriginSystemFallback:    0.2,
	session.OriginSignalEstimated:   0.3,
}

func ConfidenceFor(origin session.SourceOrigin) float64 {
	return originConfidence[origin]
}

type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveIntensity picks the effective intensity threshold for a channel.
// Sources carry MVC base values; the effective threshold is
// base * cfg.MVCPercentage. A base below session.MinIntensityBase is an
// absent calibration, not a valid zero, and resolution falls through to
// the next priority. No usable source at all means the channel cannot
// be scored (session.ErrMissingThreshold).
func (r *Resolver) ResolveIntensity(channel string, cfg session.Config) (session.EffectiveThreshold, error) {
	sources := cfg.SourcesFor(channel, session.ThresholdIntensity)

	for _, origin := range intensityPriority {
		base, ok := pickValid(sources, origin, session.MinIntensityBase)
		if !ok {
			continue
		}
		return session.EffectiveThreshold{
			Channel:    channel,
			Type:       session.ThresholdIntensity,
			Value:      base * cfg.MVCPercentage,
			Origin:     origin,
			Confidence: originConfidence[origin],
		}, nil
	}

	return session.EffectiveThreshold{}, fmt.Errorf(
		"%w: intensity, channel %q", session.ErrMissingThreshold, channel,
	)
}

// ResolveDuration picks the effective duration threshold in milliseconds.
// Besides explicit sources, the session configuration itself contributes:
// a per-channel override (entered in seconds) resolves as UserPerMuscle,
// the session-global threshold as SessionGlobal, and the clinical default
// as SystemFallback. Values outside the clinical range are accepted and
// flagged in logs, never silently corrected.
func (r *Resolver) ResolveDuration(channel string, cfg session.Config) (session.EffectiveThreshold, error) {
	sources := cfg.SourcesFor(channel, session.ThresholdDuration)
	sources = append(sources, configDurationSources(channel, cfg)...)

	for _, origin := range durationPriority {
		ms, ok := pickValid(sources, origin, 0)
		if !ok {
			continue
		}
		if ms < session.DurationThresholdMinMs || ms > session.DurationThresholdMaxMs {
			log.Warnf(
				"duration threshold %dms for channel [%s] (origin %s) outside clinical range [%d, %d]ms",
				int(ms), channel, origin,
				session.DurationThresholdMinMs, session.DurationThresholdMaxMs,
			)
		}
		return session.EffectiveThreshold{
			Channel:    channel,
			Type:       session.ThresholdDuration,
			Value:      ms,
			Origin:     origin,
			Confidence: originConfidence[origin],
		}, nil
	}

	return session.EffectiveThreshold{}, fmt.Errorf(
		"%w: duration, channel %q", session.ErrMissingThreshold, channel,
	)
}

func configDurationSources(channel string, cfg session.Config) []session.ThresholdSource {
	var out []session.ThresholdSource

	if sec, ok := cfg.DurationOverridesSeconds[channel]; ok && sec > 0 {
		ms := sec * 1000
		out = append(out, session.ThresholdSource{
			Channel: channel,
			Type:    session.ThresholdDuration,
			Origin:  session.OriginUserPerMuscle,
			Value:   &ms,
		})
	}

	if cfg.DurationThresholdMs > 0 {
		ms := cfg.DurationThresholdMs
		out = append(out, session.ThresholdSource{
			Channel: channel,
			Type:    session.ThresholdDuration,
			Origin:  session.OriginSessionGlobal,
			Value:   &ms,
		})
	}

	fallback := float64(session.DefaultDurationThresholdMs)
	out = append(out, session.ThresholdSource{
		Channel: channel,
		Type:    session.ThresholdDuration,
		Origin:  session.OriginSystemFallback,
		Value:   &fallback,
	})

	return out
}

// pickValid returns the first usable value of the given origin. A nil
// value is always absent; a value below minValid is treated as absent
// too, so resolution can fall through to the next priority.
func pickValid(sources []session.ThresholdSource, origin session.SourceOrigin, minValid float64) (float64, bool) {
	for _, s := range sources {
		if s.Origin != origin || s.Value == nil {
			continue
		}
		if *s.Value < minValid || *s.Value <= 0 {
			continue
		}
		return *s.Value, true
	}
	return 0, false
}
