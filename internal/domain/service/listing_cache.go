package service

// ListingCache is a process-wide cache for full listing results. Mutations
// invalidate wholesale rather than per key; simplicity over granularity.
type ListingCache interface {
	// Get returns the cached value for the key, if present.
	Get(key string) (any, bool)

	// Set stores a value under the key until the next Flush.
	Set(key string, value any)

	// Flush drops every cached entry.
	Flush()
}
