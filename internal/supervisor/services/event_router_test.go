// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/cinematch/internal/events"
)

type fakeRunner struct {
	runErr error
	block  bool
	closed atomic.Bool
}

func (r *fakeRunner) Run(ctx context.Context) error {
	if r.block {
		<-ctx.Done()
		return nil
	}
	return r.runErr
}

func (r *fakeRunner) Close() error {
	r.closed.Store(true)
	return nil
}

func TestEventRouterService_Serve(t *testing.T) {
	t.Parallel()

	factoryErr := errors.New("subscriber unavailable")
	runErr := errors.New("handler setup failed")

	tests := []struct {
		name    string
		runner  *fakeRunner
		factory error
		want    error
	}{
		{"factory error", nil, factoryErr, factoryErr},
		{"run error", &fakeRunner{runErr: runErr}, nil, runErr},
		{"unexpected stop", &fakeRunner{}, nil, errRouterStopped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewEventRouterService(func() (EventRunner, error) {
				if tt.factory != nil {
					return nil, tt.factory
				}
				return tt.runner, nil
			}, zerolog.Nop())

			err := svc.Serve(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("Serve = %v, want %v", err, tt.want)
			}
			if tt.runner != nil && !tt.runner.closed.Load() {
				t.Error("router not closed")
			}
		})
	}
}

func TestEventRouterService_FreshRouterPerRestart(t *testing.T) {
	t.Parallel()

	var builds atomic.Int32
	svc := NewEventRouterService(func() (EventRunner, error) {
		if builds.Add(1) < 3 {
			return &fakeRunner{runErr: errors.New("crash")}, nil
		}
		return &fakeRunner{block: true}, nil
	}, zerolog.Nop())

	sup := suture.New("test-messaging", suture.Spec{
		FailureThreshold: 10,
		FailureBackoff:   time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for builds.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-errCh

	if got := builds.Load(); got != 3 {
		t.Errorf("factory calls = %d, want 3", got)
	}
}

// Full path: watcher publishes on the bus, the supervised router delivers.
func TestEventRouterService_WithBus(t *testing.T) {
	t.Parallel()

	bus := events.NewBus(nil)
	defer bus.Close()

	delivered := make(chan events.DatasetChanged, 1)
	built := make(chan *events.Router, 1)
	svc := NewEventRouterService(func() (EventRunner, error) {
		r, err := events.NewRouter(nil, nil)
		if err != nil {
			return nil, err
		}
		r.AddConsumerHandler("test", events.TopicDatasetChanged, bus.Subscriber(), func(msg *message.Message) error {
			var evt events.DatasetChanged
			if err := events.Decode(msg, &evt); err != nil {
				return err
			}
			delivered <- evt
			return nil
		})
		built <- r
		return r, nil
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Serve(ctx) }()

	// Publishing before the subscription exists would drop the message.
	select {
	case r := <-built:
		<-r.Running()
	case <-time.After(2 * time.Second):
		t.Fatal("router not built")
	}
	if err := bus.Publish(ctx, events.TopicDatasetChanged, events.DatasetChanged{Reason: "test"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case evt := <-delivered:
		if evt.Reason != "test" {
			t.Errorf("Reason = %q", evt.Reason)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}
