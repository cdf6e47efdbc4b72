// Package forkify provides an HTTP client for the Forkify recipe API.
//
// # Overview
//
// This package defines the API client used to look up, search and upload
// recipes. It handles HTTP communication, JSON serialization, and the
// classification of failures into the error kinds the rest of the
// application reasons about.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the Forkify API schema
//   - errors.go: Error kinds and the APIError type
//
// # Client Usage
//
//	client, err := forkify.NewClient(cfg.APIURL, cfg.APIKey, cfg.RequestTimeout())
//	if err != nil {
//		return fmt.Errorf("init forkify client: %w", err)
//	}
//
//	recipe, err := client.FetchRecipe(ctx, "5ed6604591c37cdc054bc886")
//	results, err := client.SearchRecipes(ctx, "pizza")
//	created, err := client.CreateRecipe(ctx, forkify.NewRecipe{...})
//
// # API Endpoints
//
//   - GET <base>/<id>?key=<token>: a single recipe
//   - GET <base>?search=<query>&key=<token>: every recipe matching query
//   - POST <base>?key=<token>: upload a user recipe
//
// Every response is wrapped in an envelope of the form
//
//	{"status": "success", "results": 3, "data": {...}}
//
// and failures carry a message:
//
//	{"status": "fail", "message": "Invalid _id: abc"}
//
// # Error Handling
//
// Errors unwrap to one of three kinds:
//
//   - ErrNetwork: connection refused, timeout, DNS failure, 4xx/5xx statuses
//   - ErrNotFound: the API answered 404
//   - ErrApplication: a 2xx answer whose status field reports fail/error
//
// Status and application failures are returned as *APIError so callers can
// show the API's own message. Malformed JSON in a successful response is
// reported as "decode response: ...".
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json and User-Agent: forkify/0.1
//   - Carry the API key as the "key" query parameter
//   - Have a 10-second timeout unless configured otherwise
//
// The client performs no retries and no caching.
package forkify
