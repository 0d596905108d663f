package cachestore

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The store calls them on hot paths.
type Hooks interface {
	// Get found / did not find storageKey.
	Hit(storageKey string)
	Miss(storageKey string)

	// Payload under storageKey exists but failed to decode.
	DecodeFailed(storageKey string, err error)

	// Provider returned ok=false on Set (in-process backends under pressure).
	ProviderSetRejected(storageKey string)

	// A Del/Clear pattern matched n keys and all of them were deleted.
	BulkDeleted(pattern string, n int)

	// A Del/Clear pattern failed; matched is -1 when enumeration itself failed.
	BulkDeleteFailed(pattern string, matched int, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(string)                          {}
func (NopHooks) Miss(string)                         {}
func (NopHooks) DecodeFailed(string, error)          {}
func (NopHooks) ProviderSetRejected(string)          {}
func (NopHooks) BulkDeleted(string, int)             {}
func (NopHooks) BulkDeleteFailed(string, int, error) {}
