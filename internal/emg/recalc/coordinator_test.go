package recalc_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rehabstats/emgcore/internal/emg/recalc"
	"github.com/rehabstats/emgcore/internal/emg/session"
	"github.com/rehabstats/emgcore/internal/telemetry/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCoordinator_NoResultBeforeAnyTrigger(t *testing.T) {
	c := recalc.NewCoordinator(recalc.CoordinatorParams{
		Compute: func(_ context.Context, cfg session.Config) (session.Score, error) {
			return session.Score{}, nil
		},
		Debounce: 10 * time.Millisecond,
	})
	defer c.Close()

	_, ok := c.Current()
	assert.False(t, ok)
	assert.Equal(t, recalc.StateIdle, c.State())
}

func TestCoordinator_DebounceCoalescesBursts(t *testing.T) {
	var computations int64
	var mu sync.Mutex
	var computedSessions []string

	c := recalc.NewCoordinator(recalc.CoordinatorParams{
		Compute: func(_ context.Context, cfg session.Config) (session.Score, error) {
			atomic.AddInt64(&computations, 1)
			mu.Lock()
			computedSessions = append(computedSessions, cfg.SessionID)
			mu.Unlock()
			return session.Score{OverallScore: 42}, nil
		},
		Debounce: 100 * time.Millisecond,
		Metrics:  metrics.NewTestManager(),
	})
	defer c.Close()

	// three edits within 50ms must coalesce into one computation,
	// running with the configuration of the last edit
	c.Trigger(session.NewConfig("edit-1"))
	time.Sleep(20 * time.Millisecond)
	c.Trigger(session.NewConfig("edit-2"))
	time.Sleep(20 * time.Millisecond)
	c.Trigger(session.NewConfig("edit-3"))

	require.Eventually(t, func() bool {
		_, ok := c.Current()
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, int64(1), atomic.LoadInt64(&computations))
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, computedSessions, 1)
	assert.Equal(t, "edit-3", computedSessions[0])
}

func TestCoordinator_LastRequestWinsOverCompletionOrder(t *testing.T) {
	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})

	c := recalc.NewCoordinator(recalc.CoordinatorParams{
		Compute: func(_ context.Context, cfg session.Config) (session.Score, error) {
			if cfg.SessionID == "slow" {
				close(slowStarted)
				<-slowRelease
				return session.Score{OverallScore: 1}, nil
			}
			return session.Score{OverallScore: 2}, nil
		},
		Debounce: 10 * time.Millisecond,
		Metrics:  metrics.NewTestManager(),
	})
	defer c.Close()

	var mu sync.Mutex
	var observed []float64
	c.Subscribe(func(s session.Score) {
		mu.Lock()
		observed = append(observed, s.OverallScore)
		mu.Unlock()
	})

	c.Trigger(session.NewConfig("slow"))

	// wait until the slow computation is in flight, then supersede it
	select {
	case <-slowStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("slow computation never started")
	}
	c.Trigger(session.NewConfig("fast"))

	require.Eventually(t, func() bool {
		score, ok := c.Current()
		return ok && score.OverallScore == 2
	}, 2*time.Second, 5*time.Millisecond)

	// the slow one finishes last in wall-clock time; its result must
	// still be discarded, sequence number governs
	close(slowRelease)
	time.Sleep(50 * time.Millisecond)

	score, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, float64(2), score.OverallScore)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []float64{2}, observed)
}

func TestCoordinator_SubsequentEditsRecompute(t *testing.T) {
	c := recalc.NewCoordinator(recalc.CoordinatorParams{
		Compute: func(_ context.Context, cfg session.Config) (session.Score, error) {
			return session.Score{OverallScore: float64(len(cfg.SessionID))}, nil
		},
		Debounce: 10 * time.Millisecond,
	})
	defer c.Close()

	results := make(chan session.Score, 4)
	c.Subscribe(func(s session.Score) { results <- s })

	c.Trigger(session.NewConfig("a"))
	require.Eventually(t, func() bool { return len(results) == 1 }, 2*time.Second, 5*time.Millisecond)

	c.Trigger(session.NewConfig("ab"))
	require.Eventually(t, func() bool { return len(results) == 2 }, 2*time.Second, 5*time.Millisecond)

	first, second := <-results, <-results
	assert.Equal(t, float64(1), first.OverallScore)
	assert.Equal(t, float64(2), second.OverallScore)

	score, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, float64(2), score.OverallScore)
}

func TestCoordinator_ComputeErrorLeavesPreviousResult(t *testing.T) {
	var fail atomic.Bool

	c := recalc.NewCoordinator(recalc.CoordinatorParams{
		Compute: func(_ context.Context, cfg session.Config) (session.Score, error) {
			if fail.Load() {
				return session.Score{}, assert.AnError
			}
			return session.Score{OverallScore: 7}, nil
		},
		Debounce: 10 * time.Millisecond,
	})
	defer c.Close()

	c.Trigger(session.NewConfig("ok"))
	require.Eventually(t, func() bool {
		_, ok := c.Current()
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	fail.Store(true)
	c.Trigger(session.NewConfig("broken"))
	require.Eventually(t, func() bool {
		return c.State() == recalc.StateIdle
	}, 2*time.Second, 5*time.Millisecond)

	// wait out the debounce plus some slack, the old score must survive
	time.Sleep(50 * time.Millisecond)
	score, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, float64(7), score.OverallScore)
}

func TestCoordinator_CloseIsIdempotent(t *testing.T) {
	c := recalc.NewCoordinator(recalc.CoordinatorParams{
		Compute: func(_ context.Context, cfg session.Config) (session.Score, error) {
			return session.Score{}, nil
		},
	})

	c.Close()
	c.Close()

	// triggers after close are dropped, not blocking
	c.Trigger(session.NewConfig("late"))
}
