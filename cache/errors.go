package cache

import "errors"

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations. Get/Set never surface these to
// callers. ValidateKey returns ErrInvalidKey and ErrKeyTooLong;
// ErrNamespaceFull and ErrNotPersistent are not returned by any
// function in this package.
var (
	ErrInvalidKey    = errors.New("cache: key is invalid")
	ErrKeyTooLong    = errors.New("cache: key exceeds max length")
	ErrNamespaceFull = errors.New("cache: namespace is full of critical-priority entries")
	ErrNotPersistent = errors.New("cache: namespace is not marked persistent")
)
