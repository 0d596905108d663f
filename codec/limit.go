package codec

import (
	"errors"
	"fmt"
)

var ErrTooLarge = errors.New("codec: payload too large")

// Limit wraps another codec and refuses payloads larger than Max bytes in
// both directions. Max <= 0 disables the check.
//
// Guards against oversized entries written into a shared namespace by
// another process.
type Limit[V any] struct {
	Inner Codec[V]
	Max   int
}

func (c Limit[V]) Encode(v V) ([]byte, error) {
	b, err := c.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	if c.Max > 0 && len(b) > c.Max {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(b), c.Max)
	}
	return b, nil
}

func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.Max > 0 && len(b) > c.Max {
		var zero V
		return zero, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(b), c.Max)
	}
	return c.Inner.Decode(b)
}
