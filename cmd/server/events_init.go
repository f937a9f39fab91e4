// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/events"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

// eventRouterFactory returns the factory the supervised router service
// calls on every (re)start.
func eventRouterFactory(cfg *config.Config, bus *events.Bus, reloader *events.Reloader) services.RouterFactory {
	routerCfg := buildRouterConfig(cfg)
	return func() (services.EventRunner, error) {
		router, err := events.NewRouter(&routerCfg, logging.NewWatermillLogger())
		if err != nil {
			return nil, err
		}
		router.AddConsumerHandler("reload-on-dataset-change", events.TopicDatasetChanged, bus.Subscriber(), reloader.HandleDatasetChanged)
		return router, nil
	}
}

func buildRouterConfig(cfg *config.Config) events.RouterConfig {
	rc := events.DefaultRouterConfig()
	rc.CloseTimeout = cfg.Events.CloseTimeout
	rc.RetryMaxRetries = cfg.Events.RetryCount
	rc.RetryInitialInterval = cfg.Events.RetryInterval
	return rc
}
