package engine

// bagSize is one full set of piece types.
const bagSize = len(Shapes)

// drawBag produces a permutation of all seven shapes. The shuffle swaps
// position i with a position chosen uniformly from [0, i], walking i from
// the last index down to 1, so the order is fully determined by the
// draws consumed from r.
func drawBag(r *PRNG) []Shape {
	bag := make([]Shape, bagSize)
	copy(bag, Shapes[:])
	for i := bagSize - 1; i >= 1; i-- {
		j := r.Intn(i + 1)
		bag[i], bag[j] = bag[j], bag[i]
	}
	return bag
}

// refillQueue tops the upcoming-piece queue up with fresh bags until it
// holds at least one full bag. Existing queue order is preserved.
func (s *State) refillQueue() {
	for len(s.Queue) < bagSize {
		s.Queue = append(s.Queue, drawBag(s.rng)...)
	}
}
