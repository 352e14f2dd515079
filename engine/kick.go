package engine

// KickPolicy decides how a rotation attempt probes for a legal placement.
// fits must report whether the piece fits at the candidate rotation with
// the candidate column/row offset applied. Attempt returns the first
// placement that fits, or ok=false leaving rotation and position to the
// caller unchanged.
//
// The policy is injected through Params so a full per-orientation kick
// table can replace the default without touching the state machine.
type KickPolicy interface {
	Attempt(fits func(rotation, dx, dy int) bool, rotation, direction int) (newRotation, dx, dy int, ok bool)
}

// offsetKicks probes a fixed offset list against the target rotation.
type offsetKicks struct {
	offsets []Cell
}

// DefaultKicks is the reduced kick table: origin first, then one column
// either side, then one row up and down. It is a uniform approximation
// applied identically to every shape, not a per-orientation system.
var DefaultKicks KickPolicy = offsetKicks{offsets: []Cell{
	{0, 0},
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}}

func (k offsetKicks) Attempt(fits func(rotation, dx, dy int) bool, rotation, direction int) (int, int, int, bool) {
	target := ((rotation+direction)%4 + 4) % 4
	for _, o := range k.offsets {
		if fits(target, o.X, o.Y) {
			return target, o.X, o.Y, true
		}
	}
	return rotation, 0, 0, false
}
