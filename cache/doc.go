// Package cache provides a namespaced caching engine with priority
// eviction, tag invalidation, semantic similarity lookup, and
// stale-while-revalidate background refresh.
//
// # Core Components
//
//   - [Engine]: namespace registry, background sweeper, and the single
//     entry point for Get/Set/Has/Remove and the tag/similarity lookups
//   - [Namespace]: a generic, typed handle onto one Engine namespace
//   - [DefaultKeyer]: SHA-256-based deterministic key derivation from
//     canonical JSON
//   - [Policy]: per-namespace TTL, size, and refresh configuration
//   - [PersistentStore], [FileStore], [RedisStore]: optional durability
//     backends for namespaces marked Policy.Persistent
//
// # Key Generation
//
// [DefaultKeyer] derives keys of the form namespace:operation:hash,
// where hash is the first 16 hex characters of
// SHA-256(canonical JSON(params)). Canonical JSON sorts map keys so
// equivalent parameter structures collapse to the same key regardless
// of map iteration order; array order is preserved.
//
// # Eviction
//
// Namespaces configured with Policy.MaxSize evict the lowest-priority
// entry (ties broken by oldest access) to make room for a new one.
// Critical-priority entries are never evicted; a namespace full of
// Critical entries silently rejects new sets.
//
// # Background Refresh
//
// An entry set with SetOptions.Refresh is eligible for
// stale-while-revalidate: once its age crosses
// Policy.BackgroundRefreshThreshold (default 80%) of its TTL, a Get
// still returns the current value but schedules exactly one
// single-flighted background refresh per key.
//
// # Thread Safety
//
// Engine and every exported type are safe for concurrent use.
package cache
