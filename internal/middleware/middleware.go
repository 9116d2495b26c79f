// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as request
// IDs, request logging, CORS, rate limiting, timeouts and panic recovery.
package middleware
