// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/dataset"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Installer receives freshly built snapshots. *recommend.Engine implements it.
type Installer interface {
	Reload(snap *recommend.Snapshot) int64
}

// ReloadConfig controls snapshot rebuilds.
type ReloadConfig struct {
	// Workers bounds similarity computation. Zero uses GOMAXPROCS.
	Workers int

	// Warm builds both similarity matrices before the snapshot is installed,
	// so the first personalized request after a reload does not pay for it.
	Warm bool
}

// Reloader loads the dataset and installs a new snapshot. Reloads are
// serialized; a failed reload leaves the current snapshot in place.
type Reloader struct {
	loader    dataset.Loader
	installer Installer
	publisher *Bus
	cfg       ReloadConfig
	logger    zerolog.Logger

	mu sync.Mutex
}

// NewReloader creates a reloader. publisher may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloader(loader dataset.Loader, installer Installer, publisher *Bus, cfg ReloadConfig, logger zerolog.Logger) *Reloader {
	return &Reloader{
		loader:    loader,
		installer: installer,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger.With().Str("component", "reloader").Logger(),
	}
}

// Reload runs one load and install cycle.
func (r *Reloader) Reload(ctx context.Context, reason string) (version int64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	defer func() { metrics.RecordSnapshotReload(err) }()

	ds, err := r.loader.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load dataset: %w", err)
	}

	snap := ds.Snapshot(r.cfg.Workers)
	if r.cfg.Warm {
		if err := snap.Warm(ctx); err != nil {
			return 0, fmt.Errorf("warm snapshot: %w", err)
		}
	}

	version = r.installer.Reload(snap)
	elapsed := time.Since(start)

	r.logger.Info().
		Str("reason", reason).
		Int64("version", version).
		Dur("duration", elapsed).
		Msg("dataset reloaded")

	if r.publisher != nil {
		evt := SnapshotReloaded{
			Version:    version,
			Movies:     snap.Catalog().Len(),
			Ratings:    len(snap.Ratings()),
			DurationMS: elapsed.Milliseconds(),
			LoadedAt:   snap.LoadedAt(),
		}
		if perr := r.publisher.Publish(ctx, TopicSnapshotReloaded, evt); perr != nil {
			r.logger.Warn().Err(perr).Msg("failed to publish snapshot.reloaded")
		}
	}
	return version, nil
}

// HandleDatasetChanged is the router handler for TopicDatasetChanged.
// A returned error makes the router retry the message.
func (r *Reloader) HandleDatasetChanged(msg *message.Message) error {
	var evt DatasetChanged
	if err := Decode(msg, &evt); err != nil {
		// A malformed event never succeeds; drop it instead of retrying.
		r.logger.Error().Err(err).Str("message_uuid", msg.UUID).Msg("dropping malformed event")
		return nil
	}

	if _, err := r.Reload(msg.Context(), evt.Reason); err != nil {
		r.logger.Error().Err(err).Str("reason", evt.Reason).Msg("dataset reload failed")
		return err
	}
	return nil
}
