// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api provides the HTTP REST API layer for CineMatch.

The API is a thin shell over recommend.Engine. Handlers parse and validate
query parameters, call the engine, optionally decorate the ranked rows with
streaming availability, and answer in the models.APIResponse envelope.

Key Components:

  - Router: chi route configuration and middleware stack
  - Handler: request handlers for recommendations, catalog and health
  - ChiMiddleware: CORS (go-chi/cors) and rate limiting (go-chi/httprate)
  - Error mapping: engine sentinels to HTTP status codes

Endpoints (all under /api/v1):

	GET /health/live                      liveness
	GET /health/ready                     readiness (snapshot loaded)
	GET /health/performance               per-route latency percentiles
	GET /recommendations/popular          popularity ranking
	GET /recommendations/similar          item-based, ?title=
	GET /recommendations/user/{userID}    user-based
	GET /recommendations/correlated       Pearson correlation, ?title=&min_shared=
	GET /catalog/genres                   genre list
	GET /catalog/search                   ?q=&limit=
	GET /catalog/movies/{movieID}         one movie

Recommendation endpoints share the parameters n, genres (comma separated),
min_year, max_year and country. When country is set and availability
enrichment is configured, every row gains an availability list.

Error Mapping:

	recommend.ErrInvalidArgument  400 INVALID_ARGUMENT
	parameter validation          400 VALIDATION_ERROR
	recommend.ErrNotFound         404 NOT_FOUND
	recommend.ErrNotReady         503 NOT_READY
	anything else                 500 RECOMMENDATION_ERROR

Usage Example:

	handler := api.NewHandler(engine, api.HandlerOptions{Version: version})
	router := api.NewRouter(handler, api.NewChiMiddleware(cfg))
	http.ListenAndServe(":8080", router.SetupChi())
*/
package api
