package cache

import (
	"context"
	"testing"
	"time"
)

func TestFingerprintDifferentDiscriminatorsNeverSimilar(t *testing.T) {
	a := ComputeFingerprint("hello world")
	b := ComputeFingerprint([]any{1, 2, 3})

	if sim := a.Similarity(b); sim != 0 {
		t.Errorf("similarity = %v, want 0 for mismatched discriminators", sim)
	}
}

func TestFingerprintIdenticalTextIsPerfectMatch(t *testing.T) {
	a := ComputeFingerprint("the quick brown fox")
	b := ComputeFingerprint("the quick brown fox")

	if sim := a.Similarity(b); sim != 1 {
		t.Errorf("similarity = %v, want 1 for identical input", sim)
	}
}

func TestFingerprintSimilarTextScoresHigherThanDissimilar(t *testing.T) {
	base := ComputeFingerprint("please summarize this short document")
	near := ComputeFingerprint("please summarize this brief document")
	far := ComputeFingerprint("12345 !!! ???")

	simClose := base.Similarity(near)
	simFar := base.Similarity(far)

	if simClose <= simFar {
		t.Errorf("similarity(close) = %v should exceed similarity(far) = %v", simClose, simFar)
	}
}

func TestFingerprintComponentLessMatchesExactly(t *testing.T) {
	a := Fingerprint{Discriminator: "scalar"}
	b := Fingerprint{Discriminator: "scalar"}

	if sim := a.Similarity(b); sim != 1 {
		t.Errorf("similarity = %v, want 1 for two component-less fingerprints", sim)
	}
}

func TestFingerprintMissingComponentContributesZero(t *testing.T) {
	a := Fingerprint{Discriminator: "object", Ints: map[string]int{"keyCount": 5}}
	b := Fingerprint{Discriminator: "object"}

	sim := a.Similarity(b)
	if sim != 0 {
		t.Errorf("similarity = %v, want 0 when one side lacks the only component", sim)
	}
}

func TestFingerprintBoolComponentsContributeBinary(t *testing.T) {
	a := Fingerprint{Discriminator: "text", Bools: map[string]bool{"hasDigits": true}}
	b := Fingerprint{Discriminator: "text", Bools: map[string]bool{"hasDigits": false}}

	if sim := a.Similarity(b); sim != 0 {
		t.Errorf("similarity = %v, want 0 for mismatched bool component", sim)
	}
}

func TestFindSimilarFiltersByThreshold(t *testing.T) {
	e := NewEngine(Config{})
	defer e.Close()
	ctx := context.Background()

	e.Set(ctx, "tools", "doc1", []byte("v"), SetOptions{
		TTL:           5 * time.Minute,
		FingerprintOf: "please summarize this short document",
	})
	e.Set(ctx, "tools", "doc2", []byte("v"), SetOptions{
		TTL:           5 * time.Minute,
		FingerprintOf: "12345 !!! ???",
	})

	matches := e.FindSimilar("tools", "please summarize this brief document", 0.6)

	var foundDoc1, foundDoc2 bool
	for _, m := range matches {
		switch m.Key {
		case "doc1":
			foundDoc1 = true
		case "doc2":
			foundDoc2 = true
		}
	}
	if !foundDoc1 {
		t.Error("expected doc1 (similar text) to match")
	}
	if foundDoc2 {
		t.Error("expected doc2 (dissimilar text) not to match")
	}
}
