package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rehabstats/emgcore/internal/emg/recalc"
	"github.com/rehabstats/emgcore/internal/emg/scoring"
	"github.com/rehabstats/emgcore/internal/emg/session"
	"github.com/rehabstats/emgcore/internal/telemetry/metrics"
	"github.com/rehabstats/emgcore/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	scoreCacheTTLSeconds = 3600
	persistTimeout       = 10 * time.Second
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=sessions_test

type sessionsRepo interface {
	Get(ctx context.Context, id string) (*Session, error)
	ListContractions(ctx context.Context, sessionID string) (map[string][]session.ContractionRecord, error)
	GetConfig(ctx context.Context, sessionID string) (session.Config, error)
	SaveConfig(ctx context.Context, cfg session.Config) (int, error)
	SaveScore(ctx context.Context, sessionID string, score session.Score) error
	GetScore(ctx context.Context, sessionID string) (session.Score, error)
}

// Service ties the pure scoring pipeline to storage and to the
// per-session recalculation coordinators. The pipeline itself stays
// stateless; all session state lives in the repo and the coordinators.
type Service struct {
	repo     sessionsRepo
	pipeline *scoring.Pipeline
	cache    *freecache.Cache
	metrics  *metrics.Manager
	debounce time.Duration

	mu           sync.Mutex
	coordinators map[string]*recalc.Coordinator
}

type ServiceParams struct {
	Repo      sessionsRepo
	CacheSize int
	Metrics   *metrics.Manager
	Debounce  time.Duration
}

func NewService(params ServiceParams) *Service {
	cacheSize := params.CacheSize
	if cacheSize <= 0 {
		cacheSize = 10 * 1024 * 1024
	}
	return &Service{
		repo:         params.Repo,
		pipeline:     scoring.NewPipeline(),
		cache:        freecache.NewCache(cacheSize),
		metrics:      params.Metrics,
		debounce:     params.Debounce,
		coordinators: make(map[string]*recalc.Coordinator),
	}
}

// Compute runs the scoring pipeline on caller-supplied inputs. Nothing
// is persisted; this is the synchronous, pure entry point.
func (s *Service) Compute(ctx context.Context, req ComputeRequest) (_ session.Score, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.emg.sessions.compute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.runPipeline(ctx, req.Channels, req.Config)
}

// ComputeStored loads a session's contractions and latest configuration,
// scores them and persists the result.
func (s *Service) ComputeStored(ctx context.Context, sessionID string) (_ session.Score, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.emg.sessions.computeStored")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	if _, err := s.repo.Get(ctx, sessionID); err != nil {
		return session.Score{}, fmt.Errorf("get session: %w", err)
	}

	cfg, err := s.repo.GetConfig(ctx, sessionID)
	if err != nil {
		return session.Score{}, fmt.Errorf("get session config: %w", err)
	}

	channels, err := s.repo.ListContractions(ctx, sessionID)
	if err != nil {
		return session.Score{}, fmt.Errorf("list contractions: %w", err)
	}

	score, err := s.runPipeline(ctx, channels, cfg)
	if err != nil {
		return session.Score{}, err
	}

	if err := s.storeScore(ctx, sessionID, score); err != nil {
		return session.Score{}, err
	}
	return score, nil
}

// UpdateConfig persists a new immutable configuration revision and
// triggers a debounced recomputation. The returned revision number is
// for the caller's bookkeeping; the recomputed score arrives
// asynchronously (GET score, or a Subscribe observer).
func (s *Service) UpdateConfig(ctx context.Context, cfg session.Config) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.emg.sessions.updateConfig")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", cfg.SessionID))

	if err := cfg.Validate(); err != nil {
		return 0, fmt.Errorf("validate session config: %w", err)
	}
	if _, err := s.repo.Get(ctx, cfg.SessionID); err != nil {
		return 0, fmt.Errorf("get session: %w", err)
	}

	revision, err := s.repo.SaveConfig(ctx, cfg)
	if err != nil {
		return 0, fmt.Errorf("save session config: %w", err)
	}

	s.coordinatorFor(cfg.SessionID).Trigger(cfg)
	return revision, nil
}

// NotifyConfigChanged feeds an externally published configuration-change
// event (e.g. from the redis channel) into the session's coordinator.
func (s *Service) NotifyConfigChanged(ctx context.Context, sessionID string) error {
	cfg, err := s.repo.GetConfig(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("get session config: %w", err)
	}
	s.coordinatorFor(sessionID).Trigger(cfg)
	return nil
}

// LatestScore returns the most recently applied score of a session,
// served from cache when possible.
func (s *Service) LatestScore(ctx context.Context, sessionID string) (_ session.Score, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.emg.sessions.latestScore")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	if raw, cacheErr := s.cache.Get(scoreCacheKey(sessionID)); cacheErr == nil {
		var score session.Score
		if err := json.Unmarshal(raw, &score); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return score, nil
		}
		log.Warnf("session [%s]: dropping unreadable cached score", sessionID)
		s.cache.Del(scoreCacheKey(sessionID))
	}

	return s.repo.GetScore(ctx, sessionID)
}

// Close shuts down all per-session coordinators and waits for their
// in-flight computations.
func (s *Service) Close() {
	s.mu.Lock()
	coordinators := make([]*recalc.Coordinator, 0, len(s.coordinators))
	for _, c := range s.coordinators {
		coordinators = append(coordinators, c)
	}
	s.coordinators = make(map[string]*recalc.Coordinator)
	s.mu.Unlock()

	for _, c := range coordinators {
		c.Close()
	}
}

func (s *Service) runPipeline(
	ctx context.Context,
	channels map[string][]session.ContractionRecord,
	cfg session.Config,
) (session.Score, error) {
	start := time.Now()
	score, err := s.pipeline.ComputeSessionScore(ctx, channels, cfg)
	if err != nil {
		return session.Score{}, err
	}

	if s.metrics != nil {
		s.metrics.CounterScoreComputations.Inc()
		s.metrics.HistPipelineDuration.Observe(time.Since(start).Seconds())
		if score.Degraded {
			s.metrics.CounterIncompleteChannels.Add(float64(len(score.IncompleteChannels)))
		}
	}
	return score, nil
}

func (s *Service) storeScore(ctx context.Context, sessionID string, score session.Score) error {
	if err := s.repo.SaveScore(ctx, sessionID, score); err != nil {
		return fmt.Errorf("save session score: %w", err)
	}

	raw, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("marshal session score: %w", err)
	}
	if err := s.cache.Set(scoreCacheKey(sessionID), raw, scoreCacheTTLSeconds); err != nil {
		// cache is best effort, the repo holds the truth
		log.Warnf("session [%s]: cache score: %s", sessionID, err)
	}
	return nil
}

// coordinatorFor lazily creates the session's recalculation coordinator.
// Its computation loads the stored contractions and scores them against
// the configuration the trigger carried; applied results are persisted
// by the subscribe observer.
func (s *Service) coordinatorFor(sessionID string) *recalc.Coordinator {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.coordinators[sessionID]; ok {
		return c
	}

	c := recalc.NewCoordinator(recalc.CoordinatorParams{
		Compute: func(ctx context.Context, cfg session.Config) (session.Score, error) {
			channels, err := s.repo.ListContractions(ctx, sessionID)
			if err != nil {
				return session.Score{}, fmt.Errorf("list contractions: %w", err)
			}
			return s.runPipeline(ctx, channels, cfg)
		},
		Debounce: s.debounce,
		Metrics:  s.metrics,
	})
	c.Subscribe(func(score session.Score) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.storeScore(ctx, sessionID, score); err != nil {
			log.Errorf("session [%s]: persist recalculated score: %s", sessionID, err)
		}
	})

	s.coordinators[sessionID] = c
	return c
}

func scoreCacheKey(sessionID string) []byte {
	return []byte("score:" + sessionID)
}
