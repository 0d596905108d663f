package codec

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errTrailingData = errors.New("codec: trailing data after JSON value")

// JSON is the default codec. The zero value is ready to use.
//
// With V = any, numbers come back as float64 unless UseNumber is set, in
// which case they are json.Number. NaN, Inf, channels and funcs fail to encode.
type JSON[V any] struct {
	UseNumber bool
}

var _ Codec[any] = JSON[any]{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }

func (c JSON[V]) Decode(b []byte) (V, error) {
	var v V
	if !c.UseNumber {
		err := json.Unmarshal(b, &v)
		return v, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	if dec.More() {
		var zero V
		return zero, errTrailingData
	}
	return v, nil
}
