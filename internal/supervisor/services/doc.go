// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services provides suture.Service wrappers for CineMatch components.

Each wrapper translates a component's own lifecycle into suture's
context-aware Serve method:

  - HTTPServerService: ListenAndServe/Shutdown of the recommendation API.
  - EventRouterService: the Watermill router that consumes dataset.changed
    and reloads the snapshot. A fresh router is built on every restart.
  - DatasetWatcherService: polls the dataset files and publishes
    dataset.changed when they are replaced.

# Return Values

	nil or error -> supervisor restarts the service
	ctx.Err()    -> shutdown requested, normal termination

Every service implements fmt.Stringer; suture uses the name in its log
events.
*/
package services
