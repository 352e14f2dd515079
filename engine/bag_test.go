package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBagIsPermutation(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		bag := drawBag(NewPRNG(seed))
		require.Len(t, bag, 7, "seed %d", seed)
		assert.ElementsMatch(t, Shapes[:], bag, "seed %d: bag must contain every shape once", seed)
	}
}

func TestBagDeterminism(t *testing.T) {
	a := NewPRNG(1234)
	b := NewPRNG(1234)
	for i := 0; i < 10; i++ {
		assert.Equal(t, drawBag(a), drawBag(b))
	}
}

func TestRefillQueue(t *testing.T) {
	s := &State{rng: NewPRNG(1)}

	s.refillQueue()
	require.GreaterOrEqual(t, len(s.Queue), bagSize)
	assert.ElementsMatch(t, Shapes[:], s.Queue[:7])

	// draining below one full bag tops it up without reordering the rest
	head := append([]Shape(nil), s.Queue[1:7]...)
	s.Queue = s.Queue[1:]
	s.refillQueue()
	require.GreaterOrEqual(t, len(s.Queue), bagSize)
	assert.Equal(t, head, s.Queue[:6], "existing queue order must be preserved")
}
