// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package events carries dataset lifecycle events over an in-process
// Watermill bus.
//
// The dataset watcher publishes DatasetChanged when the files on disk change.
// The reload handler consumes it, rebuilds the snapshot, installs it in the
// engine and publishes SnapshotReloaded.
package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
)

// Topics.
const (
	TopicDatasetChanged   = "dataset.changed"
	TopicSnapshotReloaded = "snapshot.reloaded"
)

// DatasetChanged announces new dataset files.
type DatasetChanged struct {
	Reason     string    `json:"reason"`
	ModifiedAt time.Time `json:"modified_at"`
	DetectedAt time.Time `json:"detected_at"`
}

// SnapshotReloaded announces a newly installed snapshot.
type SnapshotReloaded struct {
	Version    int64     `json:"version"`
	Movies     int       `json:"movies"`
	Ratings    int       `json:"ratings"`
	DurationMS int64     `json:"duration_ms"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// NewMessage encodes payload as a JSON Watermill message.
func NewMessage(payload interface{}) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("content_type", "application/json")
	return msg, nil
}

// Decode unmarshals a message payload into v.
func Decode(msg *message.Message, v interface{}) error {
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("unmarshal event %s: %w", msg.UUID, err)
	}
	return nil
}
