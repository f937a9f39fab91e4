// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/dataset"
	"github.com/tomtom215/cinematch/internal/recommend"
)

type fakeLoader struct {
	calls atomic.Int32
	err   error
}

func (f *fakeLoader) Load(context.Context) (*dataset.Dataset, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &dataset.Dataset{
		Movies: []catalog.RawMovie{
			{ID: 1, Title: "Matrix, The (1999)", Genres: "Action|Sci-Fi"},
			{ID: 2, Title: "Heat (1995)", Genres: "Crime"},
		},
		Ratings: []catalog.Rating{
			{UserID: 1, MovieID: 1, Value: 5},
			{UserID: 2, MovieID: 2, Value: 3},
		},
	}, nil
}

type fakeInstaller struct {
	mu      sync.Mutex
	version int64
	last    *recommend.Snapshot
}

func (f *fakeInstaller) Reload(snap *recommend.Snapshot) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.version++
	f.last = snap
	return f.version
}

func (f *fakeInstaller) installed() (int64, *recommend.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.version, f.last
}

func TestMessageRoundTrip(t *testing.T) {
	t.Parallel()

	in := DatasetChanged{Reason: "mtime", ModifiedAt: time.Unix(100, 0).UTC()}
	msg, err := NewMessage(in)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if msg.UUID == "" {
		t.Error("message has no UUID")
	}
	if got := msg.Metadata.Get("content_type"); got != "application/json" {
		t.Errorf("content_type = %q", got)
	}

	var out DatasetChanged
	if err := Decode(msg, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Reason != in.Reason || !out.ModifiedAt.Equal(in.ModifiedAt) {
		t.Errorf("Decode = %+v, want %+v", out, in)
	}

	bad := message.NewMessage(watermill.NewUUID(), []byte("{"))
	if err := Decode(bad, &out); err == nil {
		t.Error("Decode accepted malformed payload")
	}
}

func TestReloader_Reload(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{}
	installer := &fakeInstaller{}
	r := NewReloader(loader, installer, nil, ReloadConfig{Warm: true}, zerolog.Nop())

	for want := int64(1); want <= 2; want++ {
		got, err := r.Reload(context.Background(), "test")
		if err != nil {
			t.Fatalf("Reload: %v", err)
		}
		if got != want {
			t.Errorf("version = %d, want %d", got, want)
		}
	}

	_, snap := installer.installed()
	if snap == nil || snap.Catalog().Len() != 2 {
		t.Fatalf("installed snapshot = %v", snap)
	}
}

func TestReloader_LoadErrorKeepsSnapshot(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{err: errors.New("disk gone")}
	installer := &fakeInstaller{}
	r := NewReloader(loader, installer, nil, ReloadConfig{}, zerolog.Nop())

	if _, err := r.Reload(context.Background(), "test"); err == nil {
		t.Fatal("Reload succeeded with failing loader")
	}
	if v, _ := installer.installed(); v != 0 {
		t.Errorf("installer called %d times, want 0", v)
	}
}

func TestReloader_MalformedEventDropped(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{}
	r := NewReloader(loader, &fakeInstaller{}, nil, ReloadConfig{}, zerolog.Nop())

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	if err := r.HandleDatasetChanged(msg); err != nil {
		t.Errorf("HandleDatasetChanged = %v, want nil", err)
	}
	if loader.calls.Load() != 0 {
		t.Error("loader called for malformed event")
	}
}

func TestRouter_DatasetChangedTriggersReload(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil)
	defer bus.Close()

	installer := &fakeInstaller{}
	reloader := NewReloader(&fakeLoader{}, installer, bus, ReloadConfig{}, zerolog.Nop())

	cfg := DefaultRouterConfig()
	cfg.CloseTimeout = time.Second
	router, err := NewRouter(&cfg, nil)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	reloaded := make(chan SnapshotReloaded, 1)
	router.AddConsumerHandler("reload", TopicDatasetChanged, bus.Subscriber(), reloader.HandleDatasetChanged)
	router.AddConsumerHandler("observe", TopicSnapshotReloaded, bus.Subscriber(), func(msg *message.Message) error {
		var evt SnapshotReloaded
		if err := Decode(msg, &evt); err != nil {
			return err
		}
		reloaded <- evt
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = router.Run(ctx) }()

	select {
	case <-router.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}
	if !router.IsRunning() {
		t.Error("IsRunning = false after Running closed")
	}

	if err := bus.Publish(ctx, TopicDatasetChanged, DatasetChanged{Reason: "test", DetectedAt: time.Now()}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case evt := <-reloaded:
		if evt.Version != 1 || evt.Movies != 2 || evt.Ratings != 2 {
			t.Errorf("SnapshotReloaded = %+v", evt)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot.reloaded event")
	}

	if err := router.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil)
	defer bus.Close()

	cfg := DefaultRouterConfig()
	cfg.CloseTimeout = time.Second
	cfg.RetryMaxRetries = 1
	cfg.RetryInitialInterval = time.Millisecond
	cfg.RetryMaxInterval = time.Millisecond
	router, err := NewRouter(&cfg, nil)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	var attempts atomic.Int32
	done := make(chan struct{})
	router.AddConsumerHandler("panicky", "test.panic", bus.Subscriber(), func(*message.Message) error {
		if attempts.Add(1) == 1 {
			panic("boom")
		}
		close(done)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = router.Run(ctx) }()
	<-router.Running()

	if err := bus.Publish(ctx, "test.panic", struct{}{}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("handler not retried after panic (attempts=%d)", attempts.Load())
	}
	_ = router.Close()
}
