package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPRNGDeterminism(t *testing.T) {
	a := NewPRNG(42)
	b := NewPRNG(42)
	for i := 0; i < 1000; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sequences diverged at draw %d", i)
		}
	}
}

func TestPRNGZeroSeedFallback(t *testing.T) {
	zero := NewPRNG(0)
	fallback := NewPRNG(seedFallback)
	for i := 0; i < 100; i++ {
		assert.Equal(t, fallback.Float64(), zero.Float64())
	}
}

func TestPRNGRange(t *testing.T) {
	r := NewPRNG(7)
	for i := 0; i < 10000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, v)
		}
	}
}

func TestPRNGIntn(t *testing.T) {
	r := NewPRNG(99)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		n := r.Intn(7)
		if n < 0 || n >= 7 {
			t.Fatalf("Intn(7) returned %d", n)
		}
		seen[n] = true
	}
	assert.Len(t, seen, 7, "1000 draws should hit every bucket")
}
