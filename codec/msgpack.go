package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is a Codec that serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Use `msgpack:"fieldName"` tags if struct field names must differ from Go names.
// Maps decoded into any come back as map[string]any.
type Msgpack[V any] struct{}

var _ Codec[any] = Msgpack[any]{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
