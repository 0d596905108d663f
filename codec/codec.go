// Package codec converts cache values to and from the payload stored under a
// backing key. Stores written by other cacheman adapters hold JSON, so JSON is
// the default; the binary codecs are for namespaces owned by Go services only.
package codec

// Codec encodes/decodes values V to []byte for storage.
// Decode must fail on payloads it cannot parse instead of returning a zero V.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
