package recalc

import (
	"context"
	"sync"
	"time"

	"github.com/rehabstats/emgcore/internal/emg/session"
	"github.com/rehabstats/emgcore/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

const DefaultDebounce = 300 * time.Millisecond

// State of the coordinator, exposed for observability.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateRunning State = "running"
)

// Computation is the wrapped scoring pipeline. It must be pure: the
// coordinator may run it concurrently with a superseded invocation and
// will discard stale results.
type Computation func(ctx context.Context, cfg session.Config) (session.Score, error)

type trigger struct {
	cfg session.Config
}

type result struct {
	seq   uint64
	score session.Score
	err   error
}

// Coordinator coalesces bursts of configuration-change events into
// debounced, single-flight recomputations. Every trigger gets a
// monotonically increasing sequence number and only the result of the
// latest issued request is ever applied; anything older is discarded
// when it completes, regardless of wall-clock completion order.
//
// All state lives in the event loop goroutine, the public methods only
// pass messages to it.
type Coordinator struct {
	compute  Computation
	debounce time.Duration
	metrics  *metrics.Manager

	triggerCh   chan trigger
	resultCh    chan result
	subscribeCh chan func(session.Score)

	quit      chan struct{}
	loopDone  chan struct{}
	closeOnce sync.Once
	inFlight  sync.WaitGroup

	// observers is only touched from the event loop goroutine
	observers []func(session.Score)

	mu      sync.RWMutex
	current *session.Score
	state   State
}

type CoordinatorParams struct {
	Compute  Computation
	Debounce time.Duration
	Metrics  *metrics.Manager
}

func NewCoordinator(params CoordinatorParams) *Coordinator {
	debounce := params.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	c := &Coordinator{
		compute:     params.Compute,
		debounce:    debounce,
		metrics:     params.Metrics,
		triggerCh:   make(chan trigger),
		resultCh:    make(chan result),
		subscribeCh: make(chan func(session.Score)),
		quit:        make(chan struct{}),
		loopDone:    make(chan struct{}),
		state:       StateIdle,
	}

	go c.loop()

	return c
}

// Trigger signals that the session configuration changed. Rapid
// repeated triggers are coalesced: only the configuration of the last
// one is computed, after the debounce window passes.
func (c *Coordinator) Trigger(cfg session.Config) {
	select {
	case c.triggerCh <- trigger{cfg: cfg}:
	case <-c.quit:
	}
}

// Subscribe registers an observer called on every applied score, in
// application order. Observers never see a score older than the most
// recently applied configuration.
func (c *Coordinator) Subscribe(fn func(session.Score)) {
	select {
	case c.subscribeCh <- fn:
	case <-c.quit:
	}
}

// Current returns the latest applied score, if any.
func (c *Coordinator) Current() (session.Score, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return session.Score{}, false
	}
	return *c.current, true
}

// State reports the coordinator state, for observability only.
func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Close stops the event loop and waits for any in-flight computation
// goroutine to finish. Results still in flight are dropped.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() {
		close(c.quit)
		<-c.loopDone
		c.inFlight.Wait()
	})
}

func (c *Coordinator) loop() {
	defer close(c.loopDone)

	var (
		seq       uint64
		latestCfg session.Config
		cancelRun context.CancelFunc
	)

	timer := time.NewTimer(c.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	cancelInFlight := func() {
		if cancelRun != nil {
			cancelRun()
			cancelRun = nil
		}
	}
	defer cancelInFlight()

	for {
		select {
		case t := <-c.triggerCh:
			seq++
			latestCfg = t.cfg
			// a new request supersedes anything already computing
			cancelInFlight()
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(c.debounce)
			c.setState(StatePending)
			if c.metrics != nil {
				c.metrics.CounterRecalcRequests.Inc()
			}

		case <-timer.C:
			runCtx, cancel := context.WithCancel(context.Background())
			cancelRun = cancel
			c.setState(StateRunning)
			c.run(runCtx, seq, latestCfg)

		case res := <-c.resultCh:
			if res.seq != seq {
				// stale: a newer request was issued while this one ran
				log.Debugf("recalc: discarding stale result seq=%d, latest=%d", res.seq, seq)
				if c.metrics != nil {
					c.metrics.CounterStaleResults.Inc()
				}
				continue
			}
			cancelInFlight()
			if res.err != nil {
				log.Errorf("recalc: computation seq=%d failed: %s", res.seq, res.err)
				c.setState(StateIdle)
				continue
			}
			c.apply(res.score)

		case fn := <-c.subscribeCh:
			c.observers = append(c.observers, fn)

		case <-c.quit:
			return
		}
	}
}

func (c *Coordinator) run(ctx context.Context, seq uint64, cfg session.Config) {
	c.inFlight.Add(1)
	go func() {
		defer c.inFlight.Done()
		score, err := c.compute(ctx, cfg)
		select {
		case c.resultCh <- result{seq: seq, score: score, err: err}:
		case <-c.quit:
		}
	}()
}

func (c *Coordinator) apply(score session.Score) {
	c.mu.Lock()
	c.current = &score
	c.state = StateIdle
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.CounterRecalcApplied.Inc()
	}

	for _, fn := range c.observers {
		fn(score)
	}
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
