// Package types holds the small shared shapes of the HTTP API.
package types

// Response is the generic huma response wrapper used by every handler.
type Response[T any] struct {
	Body T
}
