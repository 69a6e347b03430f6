package cache

import (
	"fmt"
	"sort"
	"strings"
)

// Fingerprint is a structured summary of a key's input content shape,
// used for approximate lookup. Discriminator partitions fingerprints by
// data kind (e.g. "text", "array", "object"); fingerprints with
// different discriminators are never considered similar.
type Fingerprint struct {
	Discriminator string
	Ints          map[string]int
	Bools         map[string]bool
}

// scale bounds the integer-component distance normalization; chosen to
// keep bucketed counts (word/char counts, array lengths, key counts) in
// a comparable range without per-component tuning.
const scale = 100

// ComputeFingerprint computes a content-shape summary of v, suitable for
// FindSimilar lookups. It never errors: unrecognized shapes fall back to
// a generic "scalar" discriminator with no components, which only
// matches other unrecognized scalars.
func ComputeFingerprint(v any) Fingerprint {
	switch val := v.(type) {
	case string:
		return Fingerprint{
			Discriminator: "text",
			Ints: map[string]int{
				"wordBucket": bucket(len(strings.Fields(val))),
				"charBucket": bucket(len(val)),
			},
			Bools: map[string]bool{
				"hasDigits": strings.ContainsAny(val, "0123456789"),
				"hasPunct":  strings.ContainsAny(val, ".,;:!?"),
			},
		}
	case []any:
		types := make(map[string]int)
		for _, elem := range val {
			types[fmt.Sprintf("%T", elem)]++
		}
		return Fingerprint{
			Discriminator: "array",
			Ints: map[string]int{
				"lengthBucket": bucket(len(val)),
				"typeCount":    len(types),
			},
		}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return Fingerprint{
			Discriminator: "object",
			Ints: map[string]int{
				"keyCount":     len(keys),
				"sortedKeyLen": len(strings.Join(keys, ",")),
			},
		}
	default:
		return Fingerprint{Discriminator: "scalar"}
	}
}

// bucket coarsens a count into a fixed bucket so near-equal sizes
// collapse to the same value (and so Similarity's integer distance has
// a meaningful, bounded scale).
func bucket(n int) int {
	switch {
	case n <= 0:
		return 0
	case n < 10:
		return n
	case n < 100:
		return 10 + n/10
	default:
		return 20
	}
}

// Similarity computes the component-wise similarity of two
// fingerprints in [0,1]. Fingerprints with different discriminators are
// never similar (0). Each integer component contributes
// 1 - min(1, |a-b|/scale); each boolean component contributes 1 or 0.
// Components present in only one fingerprint contribute 0. The result
// is the average across the union of components.
func (f Fingerprint) Similarity(other Fingerprint) float64 {
	if f.Discriminator != other.Discriminator {
		return 0
	}

	total := 0.0
	count := 0

	intKeys := unionIntKeys(f.Ints, other.Ints)
	for _, k := range intKeys {
		a, aok := f.Ints[k]
		b, bok := other.Ints[k]
		count++
		if !aok || !bok {
			continue
		}
		diff := a - b
		if diff < 0 {
			diff = -diff
		}
		ratio := float64(diff) / float64(scale)
		if ratio > 1 {
			ratio = 1
		}
		total += 1 - ratio
	}

	boolKeys := unionBoolKeys(f.Bools, other.Bools)
	for _, k := range boolKeys {
		a, aok := f.Bools[k]
		b, bok := other.Bools[k]
		count++
		if !aok || !bok {
			continue
		}
		if a == b {
			total += 1
		}
	}

	if count == 0 {
		return 1 // two component-less fingerprints of the same discriminator match exactly
	}
	return total / float64(count)
}

func unionIntKeys(a, b map[string]int) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for k := range a {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func unionBoolKeys(a, b map[string]bool) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for k := range a {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
