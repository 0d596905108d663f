package cachestore

import "time"

const (
	DefaultPrefix    = "cacheman:"
	DefaultTTL       = 60 * time.Second
	DefaultScanCount = 10

	// NoExpiration passed as ttl stores an entry without expiry.
	NoExpiration time.Duration = -1
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// resolveTTL maps a caller ttl to the provider ttl, where 0 means no expiry.
func resolveTTL(ttl, def time.Duration) (time.Duration, error) {
	switch {
	case ttl == NoExpiration:
		return 0, nil
	case ttl == 0:
		if def == NoExpiration {
			return 0, nil
		}
		return def, nil
	case ttl < 0:
		return 0, ErrInvalidTTL
	}
	return ttl, nil
}
