// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/cinematch/internal/metrics"
)

// Bus is the in-process publisher and subscriber shared by producers and
// the router.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates an in-memory bus. Messages are delivered to subscribers
// only; nothing is persisted.
func NewBus(logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 16,
		}, logger),
	}
}

// Publish encodes payload and publishes it on topic.
func (b *Bus) Publish(ctx context.Context, topic string, payload interface{}) error {
	msg, err := NewMessage(payload)
	if err != nil {
		return err
	}
	msg.SetContext(ctx)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	metrics.RecordEventPublished(topic)
	return nil
}

// Publisher returns the underlying Watermill publisher.
func (b *Bus) Publisher() message.Publisher { return b.pubsub }

// Subscriber returns the underlying Watermill subscriber.
func (b *Bus) Subscriber() message.Subscriber { return b.pubsub }

// Close stops delivery to every subscriber.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
