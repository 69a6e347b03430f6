package cache

import "context"

// Namespace is a typed handle onto one Engine namespace. It marshals
// values through Codec so callers work with V instead of raw bytes.
type Namespace[V any] struct {
	engine    *Engine
	namespace string
	codec     Codec
}

// NewNamespace binds a typed handle to namespace, configuring its
// policy on the underlying Engine. codec defaults to JSONCodec{} when
// nil.
func NewNamespace[V any](e *Engine, namespace string, policy Policy, codec Codec) Namespace[V] {
	if codec == nil {
		codec = JSONCodec{}
	}
	e.ConfigureNamespace(namespace, policy)
	return Namespace[V]{engine: e, namespace: namespace, codec: codec}
}

// Get decodes the live value for key, if present and unexpired.
func (n Namespace[V]) Get(key string) (V, bool, error) {
	var zero V
	raw, ok := n.engine.Get(n.namespace, key)
	if !ok {
		return zero, false, nil
	}
	var v V
	if err := n.codec.Decode(raw, &v); err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Set encodes value and stores it under key per opts.
func (n Namespace[V]) Set(ctx context.Context, key string, value V, opts SetOptions) (bool, error) {
	raw, err := n.codec.Encode(value)
	if err != nil {
		return false, err
	}
	return n.engine.Set(ctx, n.namespace, key, raw, opts), nil
}

func (n Namespace[V]) Has(key string) bool {
	return n.engine.Has(n.namespace, key)
}

func (n Namespace[V]) Remove(key string) {
	n.engine.Remove(n.namespace, key)
}

func (n Namespace[V]) Clear() {
	n.engine.ClearNamespace(n.namespace)
}

func (n Namespace[V]) Stats() Stats {
	return n.engine.Stats(n.namespace)
}
