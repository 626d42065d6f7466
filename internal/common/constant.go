// Package common contains shared constants and sentinel errors used across
// beautybook components.
package common

// RequestIDHeader carries the per-call correlation id on outbound requests.
const RequestIDHeader = "X-Request-ID"

// DefaultAPIBaseURL is where the booking service listens in development.
const DefaultAPIBaseURL = "http://localhost:8000"
