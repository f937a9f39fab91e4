// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// EventRunner is satisfied by *events.Router.
type EventRunner interface {
	Run(ctx context.Context) error
	Close() error
}

// RouterFactory builds a router with all handlers registered.
type RouterFactory func() (EventRunner, error)

var errRouterStopped = errors.New("event router stopped unexpectedly")

// EventRouterService supervises the Watermill router that drives snapshot
// reloads. A closed Watermill router cannot run again, so every Serve call
// builds a fresh one through the factory.
type EventRouterService struct {
	factory RouterFactory
	logger  zerolog.Logger
}

//nolint:gocritic // zerolog.Logger is passed by value throughout the codebase
func NewEventRouterService(factory RouterFactory, logger zerolog.Logger) *EventRouterService {
	return &EventRouterService{
		factory: factory,
		logger:  logger.With().Str("service", "event-router").Logger(),
	}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	router, err := s.factory()
	if err != nil {
		return fmt.Errorf("build event router: %w", err)
	}
	defer func() {
		if cerr := router.Close(); cerr != nil {
			s.logger.Warn().Err(cerr).Msg("event router close failed")
		}
	}()

	err = router.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("event router: %w", err)
	}
	return errRouterStopped
}

func (s *EventRouterService) String() string {
	return "event-router"
}
