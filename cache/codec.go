package cache

import "encoding/json"

// Codec marshals and unmarshals namespace values to and from the
// opaque byte sequences the Engine stores. Namespaces are homogeneous
// in value type: one Codec (reified by Namespace[V]) serves every
// entry in a given namespace.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, out any) error
}

// JSONCodec is the default Codec, backed by encoding/json.
type JSONCodec struct{}

func (JSONCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Decode(data []byte, out any) error {
	return json.Unmarshal(data, out)
}
