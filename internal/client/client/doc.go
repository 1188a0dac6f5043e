// Package client contains the CLI's side of the VoltDrive API.
//
// # Overview
//
//  1. Client is the transport-agnostic API contract: account operations,
//     car listing and creation, bookings, avatar upload and health.
//  2. HTTPClient implements it over REST. A TokenSource supplies the bearer
//     token per request, so the session may change between calls.
//  3. InitDatabase and RunMigrations bootstrap the local SQLite store that
//     keeps the session between runs.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx answers are returned as
// *APIError, which unwraps to ErrUnauthorized, ErrForbidden or
// ErrRateLimited for the matching status codes.
package client
