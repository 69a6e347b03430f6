package cache

import "time"

// Stats is a read-only snapshot of one namespace's statistics.
type Stats struct {
	Namespace            string
	Hits                 int64
	Misses               int64
	Puts                 int64
	Evictions            int64
	Size                 int
	OldestEntry          time.Time
	NewestEntry          time.Time
	AverageTTL           time.Duration
	HitRate              float64
	PriorityDistribution map[Priority]int
}

// stats computes a snapshot of the namespace's current statistics.
func (ns *namespaceStore) stats() Stats {
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	s := Stats{
		Namespace:             ns.name,
		Hits:                  ns.hits,
		Misses:                ns.misses,
		Puts:                  ns.puts,
		Evictions:             ns.evictions,
		Size:                  len(ns.entries),
		PriorityDistribution: make(map[Priority]int, 4),
	}

	var ttlSum time.Duration
	for _, e := range ns.entries {
		if s.OldestEntry.IsZero() || e.createdAt.Before(s.OldestEntry) {
			s.OldestEntry = e.createdAt
		}
		if e.createdAt.After(s.NewestEntry) {
			s.NewestEntry = e.createdAt
		}
		ttlSum += e.ttl
		s.PriorityDistribution[e.priority]++
	}
	if len(ns.entries) > 0 {
		s.AverageTTL = ttlSum / time.Duration(len(ns.entries))
	}

	total := s.Hits + s.Misses
	if total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}

	return s
}
