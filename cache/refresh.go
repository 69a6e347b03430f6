package cache

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// scheduleRefresh launches a background, single-flighted refresh of
// (namespace, key) using ent's RefreshFunc. If a refresh for this key is
// already in flight, this call attaches to it instead of starting a
// second one. The caller is never blocked: the wait for the result
// happens in a detached goroutine.
func (e *Engine) scheduleRefresh(ns *namespaceStore, key string, ent *entry) {
	dedupKey := ns.name + ":" + key

	resultCh := e.refreshGroup.DoChan(dedupKey, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), e.refreshTimeout)
		defer cancel()
		return ent.refresh(ctx)
	})

	go func() {
		res := <-resultCh
		if res.Err != nil {
			atomic.AddInt64(&e.failedRefreshes, 1)
			return
		}
		newVal, ok := res.Val.([]byte)
		if !ok {
			atomic.AddInt64(&e.failedRefreshes, 1)
			return
		}

		ns.mu.Lock()
		defer ns.mu.Unlock()
		cur, stillPresent := ns.entries[key]
		if !stillPresent {
			return
		}
		fresh := &entry{
			value:       newVal,
			createdAt:   time.Now(),
			ttl:         cur.ttl,
			lastAccess:  cur.lastAccess,
			accessCount: cur.accessCount,
			priority:    cur.priority,
			tags:        cur.tags,
			fingerprint: cur.fingerprint,
			refresh:     cur.refresh,
		}
		ns.entries[key] = fresh
	}()
}

// refreshGroup is the shared dedup primitive for all namespaces; keys
// are namespace-qualified so distinct namespaces never collide.
type refreshGroup = singleflight.Group
