// Package services holds the client workflows: booking, authentication,
// profile and the read-only catalog. Each workflow calls the API client
// sequentially, never retries, and turns every failure into a message for
// the view that started it.
package services
