package scoring

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rehabstats/emgcore/internal/emg/session"
	"github.com/rehabstats/emgcore/internal/emg/thresholds"
	"github.com/rehabstats/emgcore/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Pipeline runs the full session scoring computation. It is pure and
// stateless: it only reads the immutable inputs and returns a fresh
// Score, so concurrent invocations are safe.
type Pipeline struct {
	resolver *thresholds.Resolver
}

func NewPipeline() *Pipeline {
	return &Pipeline{
		resolver: thresholds.NewResolver(),
	}
}

// ComputeSessionScore scores one session from its per-channel
// contraction records and configuration.
//
// Channels for which no usable intensity threshold resolves are marked
// incomplete and excluded from the aggregates; the resulting score is
// then flagged degraded so it is never mistaken for a fully trusted one.
func (p *Pipeline) ComputeSessionScore(
	ctx context.Context,
	channels map[string][]session.ContractionRecord,
	cfg session.Config,
) (_ session.Score, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "emg.scoring.computeSessionScore")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("session.id", cfg.SessionID),
		attribute.Int("channels", len(channels)),
	)

	if err := cfg.Validate(); err != nil {
		return session.Score{}, fmt.Errorf("validate session config: %w", err)
	}

	channelNames := make([]string, 0, len(channels))
	for name := range channels {
		channelNames = append(channelNames, name)
	}
	sort.Strings(channelNames)

	score := session.Score{
		Weights:      cfg.Weights,
		BFRGate:      1.0,
		CalculatedAt: time.Now().UTC(),
	}

	var complete []session.ChannelCompliance
	for _, name := range channelNames {
		compliance, chErr := p.scoreChannel(name, channels[name], cfg)
		if chErr != nil {
			log.Warnf("session [%s] channel [%s] incomplete: %s", cfg.SessionID, name, chErr)
			score.Channels = append(score.Channels, session.ChannelCompliance{
				Channel:    name,
				Incomplete: true,
			})
			score.IncompleteChannels = append(score.IncompleteChannels, name)
			continue
		}
		score.Channels = append(score.Channels, compliance)
		complete = append(complete, compliance)
	}
	score.Degraded = len(score.IncompleteChannels) > 0

	if len(complete) > 0 {
		var sum float64
		for _, c := range complete {
			sum += c.MuscleComplianceScore
		}
		score.ComplianceScore = 100 * sum / float64(len(complete))
	}

	var symmetry *float64
	if sym, symErr := SymmetryForChannels(complete); symErr == nil {
		symmetry = &sym
		score.SymmetryScore = sym
	} else {
		log.Debugf("session [%s]: symmetry omitted: %s", cfg.SessionID, symErr)
	}

	if cfg.BFREnabled {
		score.BFRGate = BFRGate(
			cfg.AppliedPressureAOP,
			cfg.BFRPressureMinPercent,
			cfg.BFRPressureMaxPercent,
		)
	}

	var effort *float64
	if cfg.PostRPE != nil {
		e := EffortScore(*cfg.PostRPE)
		effort = &e
		score.EffortScore = e
	}

	if cfg.GameScore != nil {
		score.GameScore = *cfg.GameScore
	}

	result := Combine(CombineParams{
		Compliance: score.ComplianceScore,
		Symmetry:   symmetry,
		Effort:     effort,
		Game:       cfg.GameScore,
		BFRGate:    score.BFRGate,
		Weights:    cfg.Weights,
	})

	score.OverallScore = result.Overall
	score.SymmetryOmitted = result.SymmetryOmitted
	score.EffortOmitted = result.EffortOmitted
	score.GameOmitted = result.GameOmitted

	span.SetAttributes(
		attribute.Float64("score.overall", score.OverallScore),
		attribute.Bool("score.degraded", score.Degraded),
	)

	return score, nil
}

func (p *Pipeline) scoreChannel(
	name string,
	contractions []session.ContractionRecord,
	cfg session.Config,
) (session.ChannelCompliance, error) {
	intensity, err := p.resolver.ResolveIntensity(name, cfg)
	if err != nil {
		return session.ChannelCompliance{}, err
	}
	duration, err := p.resolver.ResolveDuration(name, cfg)
	if err != nil {
		return session.ChannelCompliance{}, err
	}

	classified := make([]session.ClassifiedContraction, 0, len(contractions))
	for _, c := range contractions {
		classified = append(classified, Classify(c, intensity, duration))
	}

	compliance := Aggregate(name, classified, cfg.ExpectedFor(name), cfg.RateWeights)
	compliance.IntensityThreshold = &intensity
	compliance.DurationThreshold = &duration
	return compliance, nil
}
