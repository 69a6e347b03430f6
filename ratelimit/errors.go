package ratelimit

import "errors"

// ErrNoKeysRegistered's message is carried by the ConfigMissing
// *errtax.Error that Execute returns for a provider with no registered key
// pool; that error does not wrap this value. A registered pool with no keys
// returns an error that does wrap it.
var ErrNoKeysRegistered = errors.New("ratelimit: no keys registered for provider")

// ErrAllKeysInvalidated is returned when every key in a provider's pool
// has been invalidated.
var ErrAllKeysInvalidated = errors.New("ratelimit: all keys invalidated for provider")
