// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor provides process supervision for CineMatch using suture v4.

# Overview

Long-running services are organized into three layers so that a failure in
one does not restart the others:

	RootSupervisor ("cinematch")
	├── DataSupervisor ("data-layer")
	│   └── DatasetWatcherService (if DATASET_WATCH is on)
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventRouterService (dataset.changed -> snapshot reload)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A reload that panics or keeps failing is retried by the messaging layer
while the API keeps answering from the last installed snapshot.

The rating snapshot itself is not supervised. It is immutable data swapped
atomically by the engine; there is nothing to restart.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddMessagingService(services.NewEventRouterService(buildRouter, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second, logger))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh

# Failure Handling

Suture keeps a failure counter per supervisor that decays over
FailureDecay seconds. Once it exceeds FailureThreshold the supervisor waits
FailureBackoff before the next restart. Defaults match suture's own:
5 failures, 30s decay, 15s backoff, 10s shutdown timeout.

Supervisor events are logged through sutureslog on the slog logger handed
to NewSupervisorTree.

# Debugging Shutdown Issues

	report, _ := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    logging.Warn().Str("service", svc.Name).Msg("service did not stop")
	}
*/
package supervisor
