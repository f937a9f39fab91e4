// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package main is the entry point for the CineMatch server.

CineMatch serves movie recommendations over HTTP from a MovieLens-style
dataset: popular titles, titles similar to a given one, titles liked by
similar users, and titles whose ratings correlate with a given one. Results
can be decorated with streaming availability per country.

# Application Architecture

	RootSupervisor ("cinematch")
	├── DataSupervisor ("data-layer")
	│   └── Dataset watcher (DATASET_WATCH=true)
	├── MessagingSupervisor ("messaging-layer")
	│   └── Event router (dataset.changed -> reload)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Startup order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, bridged to slog for suture and to Watermill
 3. Engine: recommendation strategies and result cache
 4. Dataset: initial load and snapshot install
 5. Availability (optional): client, circuit breaker, BadgerDB cache
 6. Supervisor tree and HTTP server

A failed initial load does not stop the process. Readiness reports 503
until a later reload succeeds.

# Configuration

	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	DATASET_LOADER=csv           # csv or duckdb
	MOVIES_PATH=data/movies.csv
	RATINGS_PATH=data/ratings.csv
	LINKS_PATH=data/links.csv
	DATASET_WATCH=true
	DATASET_WATCH_INTERVAL=30s

	RECOMMEND_DEFAULT_N=5
	RECOMMEND_MAX_N=10

	AVAILABILITY_ENABLED=true
	RAPIDAPI_KEY=<key>
	AVAILABILITY_COUNTRIES=de,us

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops every
service; the HTTP server drains in-flight requests for
HTTP_SHUTDOWN_TIMEOUT before closing.
*/
package main
