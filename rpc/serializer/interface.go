package serializer

import "errors"

// ErrWriteOnly is returned by serializers that cannot be decoded again
var ErrWriteOnly = errors.New("serializer is write only")

// IResultSerializer is the interface for all result serializers
type IResultSerializer interface {
	// Serialize renders an RPC result (or any value built from records, lists and scalars)
	// It returns the rendered bytes and an error if any
	Serialize(v interface{}) ([]byte, error)
	// Deserialize parses bytes produced by Serialize into v
	// It returns ErrWriteOnly if the format cannot be read back
	Deserialize(b []byte, v interface{}) error
}
