// Package storage defines the key-value abstraction behind the session store and error tracker.
package storage

import "context"

// KeyValue is durable string storage addressed by key.
type KeyValue interface {
	// Get returns the value stored under key; found is false when the key is absent
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing anything already there
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error
	Remove(ctx context.Context, key string) error
}
