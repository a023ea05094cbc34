package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// ConfigChangedEvent is the payload other services publish on the
// configuration-events redis channel when they edit a session's
// configuration (calibration updates, clinician edits from another
// client, batch imports).
type ConfigChangedEvent struct {
	SessionID string `json:"sessionId"`
	Source    string `json:"source,omitempty"`
}

type configListener interface {
	NotifyConfigChanged(ctx context.Context, sessionID string) error
}

// RedisSubscriber forwards configuration-change events from a redis
// pub/sub channel into the recalculation path. Transport failures and
// retry policy stay on this boundary; the scoring core never sees them.
type RedisSubscriber struct {
	rdb      *redis.Client
	channel  string
	listener configListener

	stop chan struct{}
	done chan struct{}
}

func NewRedisSubscriber(rdb *redis.Client, channel string, listener configListener) *RedisSubscriber {
	return &RedisSubscriber{
		rdb:      rdb,
		channel:  channel,
		listener: listener,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start subscribes and consumes events until Stop or ctx cancellation.
func (s *RedisSubscriber) Start(ctx context.Context) error {
	pubsub := s.rdb.Subscribe(ctx, s.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", s.channel, err)
	}

	log.Debugf("subscribed to config events channel [%s]", s.channel)

	go func() {
		defer close(s.done)
		defer func() {
			if err := pubsub.Close(); err != nil {
				log.Errorf("close config events subscription: %s", err)
			}
		}()

		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				s.handlePayload(ctx, msg.Payload)
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (s *RedisSubscriber) Stop() {
	close(s.stop)
	<-s.done
}

func (s *RedisSubscriber) handlePayload(ctx context.Context, payload string) {
	var event ConfigChangedEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		log.Errorf("config event: unmarshal payload [%s]: %s", payload, err)
		return
	}
	if event.SessionID == "" {
		log.Warnf("config event without session id, dropping: [%s]", payload)
		return
	}

	if err := s.listener.NotifyConfigChanged(ctx, event.SessionID); err != nil {
		log.Errorf("config event: notify for session [%s]: %s", event.SessionID, err)
	}
}
