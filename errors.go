package cachestore

import (
	"errors"
	"fmt"

	rp "github.com/unkn0wn-root/cachestore/provider/redis"
)

var ErrInvalidTTL = errors.New("cachestore: ttl must be positive, 0 (default) or NoExpiration")

// ConnectionError is returned by New when the backend rejects AUTH or SELECT
// or cannot be reached while verifying them.
type ConnectionError = rp.ConnectionError

// BackendError wraps a provider failure. Op is one of get, set, del, keys, scan.
// Key holds the backing key or pattern involved.
type BackendError struct {
	Op  string
	Key string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("cachestore: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// EncodeError means the value could not be serialized; nothing was written.
type EncodeError struct {
	Key string
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("cachestore: encode %q: %v", e.Key, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError means a stored payload exists but is not valid for the codec.
// It is never reported as a miss.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cachestore: decode %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
