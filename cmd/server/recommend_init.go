// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
)

// initRecommend creates the engine and registers every strategy. The engine
// has no snapshot yet; the reloader installs one.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, error) {
	engineCfg := buildEngineConfig(cfg)

	logger.Info().
		Int("default_n", engineCfg.Limits.DefaultN).
		Int("max_n", engineCfg.Limits.MaxN).
		Int("min_shared_raters", engineCfg.Correlation.MinSharedRaters).
		Bool("cache", engineCfg.Cache.Enabled).
		Msg("initializing recommendation engine")

	engine, err := recommend.NewEngine(engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	for _, r := range []recommend.Recommender{
		algorithms.NewPopularity(),
		algorithms.NewItemSimilarity(),
		algorithms.NewUserSimilarity(),
		algorithms.NewCorrelation(),
	} {
		engine.Register(r)
		logger.Debug().Str("strategy", string(r.Strategy())).Msg("registered recommendation strategy")
	}
	return engine, nil
}

// buildEngineConfig maps application config onto the engine config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	rc := cfg.Recommend
	return &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultN:       rc.DefaultN,
			MaxN:           rc.MaxN,
			MinYear:        rc.MinYear,
			MaxYear:        rc.MaxYear,
			RequestTimeout: rc.RequestTimeout,
		},
		Similarity: recommend.SimilarityConfig{
			Workers: rc.SimilarityWorkers,
		},
		Correlation: recommend.CorrelationConfig{
			MinSharedRaters: rc.MinSharedRaters,
		},
		Cache: recommend.CacheConfig{
			Enabled:    rc.CacheEnabled,
			TTL:        rc.CacheTTL,
			MaxEntries: rc.CacheSize,
		},
	}
}
