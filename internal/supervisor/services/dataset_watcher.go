// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/events"
)

// ModTimeSource reports the newest modification time of the dataset files.
// Satisfied by dataset.Paths.
type ModTimeSource interface {
	LastModified() (time.Time, error)
}

// EventPublisher is satisfied by *events.Bus.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// DatasetWatcherService polls the dataset files and publishes
// events.DatasetChanged when they become newer than the last seen version.
//
// since is the modification time of the snapshot already installed, so the
// watcher does not trigger a redundant reload right after startup. A zero
// since makes the first successful poll publish.
type DatasetWatcherService struct {
	source    ModTimeSource
	publisher EventPublisher
	interval  time.Duration
	logger    zerolog.Logger

	since time.Time
}

// NewDatasetWatcherService creates the watcher. A non-positive interval means 30s.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout the codebase
func NewDatasetWatcherService(source ModTimeSource, publisher EventPublisher, interval time.Duration, since time.Time, logger zerolog.Logger) *DatasetWatcherService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &DatasetWatcherService{
		source:    source,
		publisher: publisher,
		interval:  interval,
		since:     since,
		logger:    logger.With().Str("service", "dataset-watcher").Logger(),
	}
}

// Serve implements suture.Service. The last seen modification time survives
// restarts because it lives on the service, not in Serve.
func (w *DatasetWatcherService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *DatasetWatcherService) poll(ctx context.Context) {
	modified, err := w.source.LastModified()
	if err != nil {
		// Files may be mid-replace; try again next tick.
		w.logger.Warn().Err(err).Msg("cannot stat dataset files")
		return
	}
	if !modified.After(w.since) {
		return
	}

	evt := events.DatasetChanged{
		Reason:     "dataset files modified",
		ModifiedAt: modified,
		DetectedAt: time.Now().UTC(),
	}
	if err := w.publisher.Publish(ctx, events.TopicDatasetChanged, evt); err != nil {
		w.logger.Error().Err(err).Msg("failed to publish dataset.changed")
		return
	}
	w.logger.Info().Time("modified_at", modified).Msg("dataset change detected")
	w.since = modified
}

func (w *DatasetWatcherService) String() string {
	return "dataset-watcher"
}
