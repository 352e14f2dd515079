package engine

import "math"

// Piece is the active tetromino. Its occupied cells are derived from the
// shape table on demand and never stored.
type Piece struct {
	Shape    Shape
	Col, Row int
	Rotation int // 0..3, clockwise quarter turns from spawn
}

// Cells returns the piece's normalized footprint, relative to (Col, Row).
func (p *Piece) Cells() [4]Cell {
	return CellsFor(p.Shape, p.Rotation)
}

// Copy returns an independent copy of the piece, or nil.
func (p *Piece) Copy() *Piece {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// Inputs are the already-normalized intents for one Step invocation.
// Rotation, hard drop, hold and respawn are one-shot: the caller is
// responsible for edge detection. Movement and soft drop are held.
type Inputs struct {
	Left      bool
	Right     bool
	RotateCW  bool
	RotateCCW bool
	SoftDrop  bool
	HardDrop  bool
	Hold      bool
	Respawn   bool
}

// Params configures one Step invocation. The engine never stores or
// mutates it, so concurrent games cannot cross-contaminate configuration.
// Validating values is the caller's job; Step assumes they make sense.
type Params struct {
	// Gravity returns the fall speed in cells per second for a level.
	Gravity func(level int) float64
	// LockDelayMs is the grace period a grounded piece gets before it
	// locks.
	LockDelayMs float64
	// DASMs is the hold duration before horizontal auto-repeat begins.
	DASMs float64
	// ARRMs is the interval between auto-repeated horizontal moves.
	// Zero or negative means instant: one repeat per invocation.
	ARRMs float64
	// SoftDropBonus is added to the fall speed, in cells per second,
	// while soft drop is held.
	SoftDropBonus float64
	// LineScore returns the points awarded for clearing n lines at once.
	LineScore func(cleared, level int) int
	// LevelUp derives the level from the total lines cleared.
	LevelUp func(totalLines int) int
	// Kicks resolves rotation attempts. Nil selects DefaultKicks.
	Kicks KickPolicy
}

// DefaultParams returns the marathon-style defaults. Callers tune fields
// freely; none of them is consulted outside the Step call it is passed to.
func DefaultParams() *Params {
	return &Params{
		Gravity:       MarathonGravity,
		LockDelayMs:   500,
		DASMs:         160,
		ARRMs:         30,
		SoftDropBonus: 15,
		LineScore:     GuidelineLineScore,
		LevelUp:       func(totalLines int) int { return totalLines / 10 },
	}
}

// MarathonGravity converts the marathon curve, seconds per row =
// (0.8-(level*0.007))^level, into cells per second. Based on
// https://tetris.wiki/Marathon with a 0-based level.
func MarathonGravity(level int) float64 {
	switch {
	case level < 0:
		level = 0
	case level > 19:
		level = 19
	}
	seconds := math.Pow(0.8-float64(level)*0.007, float64(level))
	return 1 / seconds
}

// GuidelineLineScore awards 100/300/500/800 points for 1..4 lines,
// multiplied by level+1.
func GuidelineLineScore(cleared, level int) int {
	base := [...]int{0, 100, 300, 500, 800}
	if cleared <= 0 {
		return 0
	}
	if cleared > 4 {
		cleared = 4
	}
	return base[cleared] * (level + 1)
}

// dasTimer tracks one horizontal direction: how long the key has been
// held and the auto-repeat accumulator once past the DAS threshold.
type dasTimer struct {
	pressed bool
	held    float64
	repeat  float64
}

func (t *dasTimer) reset() { *t = dasTimer{} }

// State is the full game state aggregate. It has exactly one mutable
// owner; Step is the sole mutation entry point. Renderers and other
// collaborators read the exported fields and never write them.
type State struct {
	Board  *Board
	Active *Piece  // nil between lock and spawn, and after a top-out
	Held   Shape   // "" while nothing is held
	Queue  []Shape // upcoming pieces, first in spawns first

	CanHold  bool
	Score    int
	Lines    int
	Level    int
	GameOver bool
	Tick     uint64

	rng       *PRNG
	gravity   float64 // fractional cells accumulated towards the next fall
	lockTimer float64 // ms spent grounded since the last successful move
	dasLeft   dasTimer
	dasRight  dasTimer
}

// New creates a game with an empty width×height board (plus the hidden
// spawn band above it), seeds the bag, and spawns the first piece.
// Restarting is a wholesale replacement: discard the old State and call
// New again.
func New(width, height int, seed uint64) *State {
	s := &State{
		Board: NewBoard(width, height),
		rng:   NewPRNG(seed),
	}
	s.refillQueue()
	s.spawnNext()
	return s
}

// RandState exposes the PRNG state for replay verification.
func (s *State) RandState() uint64 { return s.rng.State() }

// Step advances the game by one discrete time slice. It applies the
// given intents, accumulates elapsedMs of gravity and timer progress,
// and mutates s in place. Once GameOver is set the call is a no-op.
func (s *State) Step(in Inputs, elapsedMs float64, p *Params) {
	if s.GameOver {
		return
	}
	s.Tick++

	if in.Hold {
		s.holdActive()
	}
	if in.Respawn {
		s.respawn()
	}
	if in.RotateCW {
		s.rotate(p, 1)
	}
	if in.RotateCCW {
		s.rotate(p, -1)
	}

	s.stepHorizontal(in, elapsedMs, p)

	if in.HardDrop && s.Active != nil {
		var fell int
		for s.tryMove(0, 1) {
			fell++
		}
		s.Score += 2 * fell
		s.lockActive(p)
		return
	}

	s.stepGravity(in, elapsedMs, p)
}

// rotate runs one rotation attempt through the kick policy. A failed
// attempt leaves rotation and position untouched.
func (s *State) rotate(p *Params, direction int) {
	piece := s.Active
	if piece == nil {
		return
	}
	kicks := p.Kicks
	if kicks == nil {
		kicks = DefaultKicks
	}
	fits := func(rotation, dx, dy int) bool {
		test := Piece{Shape: piece.Shape, Col: piece.Col + dx, Row: piece.Row + dy, Rotation: rotation}
		return !s.Board.Collides(&test)
	}
	if rotation, dx, dy, ok := kicks.Attempt(fits, piece.Rotation, direction); ok {
		piece.Rotation = rotation
		piece.Col += dx
		piece.Row += dy
	}
}

// stepHorizontal resolves DAS/ARR for the left/right intents. Each
// direction keeps its own hold timer and repeat accumulator; holding
// both directions, or neither, resets both.
func (s *State) stepHorizontal(in Inputs, elapsedMs float64, p *Params) {
	if in.Left == in.Right {
		s.dasLeft.reset()
		s.dasRight.reset()
		return
	}
	dx, timer, other := 1, &s.dasRight, &s.dasLeft
	if in.Left {
		dx, timer, other = -1, &s.dasLeft, &s.dasRight
	}
	other.reset()

	if !timer.pressed {
		// first press moves immediately and starts the hold timer
		timer.pressed = true
		s.shift(dx)
		return
	}
	prev := timer.held
	timer.held += elapsedMs
	if timer.held < p.DASMs {
		return
	}
	if p.ARRMs <= 0 {
		// instant repeat, throttled to one move per invocation
		s.shift(dx)
		return
	}
	if prev < p.DASMs {
		// the first repeat lands exactly on the DAS threshold
		s.shift(dx)
		timer.repeat = timer.held - p.DASMs
	} else {
		timer.repeat += elapsedMs
	}
	for timer.repeat >= p.ARRMs {
		timer.repeat -= p.ARRMs
		s.shift(dx)
	}
}

// stepGravity accumulates fall progress and the grounded lock delay.
func (s *State) stepGravity(in Inputs, elapsedMs float64, p *Params) {
	if s.Active == nil {
		return
	}
	speed := p.Gravity(s.Level)
	if in.SoftDrop {
		speed += p.SoftDropBonus
	}
	s.gravity += speed * elapsedMs / 1000

	for s.gravity >= 1 && s.Active != nil {
		if !s.tryMove(0, 1) {
			break
		}
		s.gravity--
		s.lockTimer = 0
		if in.SoftDrop {
			s.Score++
		}
	}

	if s.Active == nil || s.tryFits(0, 1) {
		return
	}
	// grounded: the accumulator stops converting into moves and the lock
	// delay runs. Capping at one cell keeps a piece that slides off a
	// ledge from dropping several rows at once.
	if s.gravity > 1 {
		s.gravity = 1
	}
	s.lockTimer += elapsedMs
	if s.lockTimer >= p.LockDelayMs {
		s.lockActive(p)
	}
}

// shift attempts a one-cell horizontal move. Success resets the lock
// delay.
func (s *State) shift(dx int) {
	if s.tryMove(dx, 0) {
		s.lockTimer = 0
	}
}

// tryFits reports whether the active piece could move by (dx, dy).
func (s *State) tryFits(dx, dy int) bool {
	test := *s.Active
	test.Col += dx
	test.Row += dy
	return !s.Board.Collides(&test)
}

// tryMove applies a (dx, dy) move if it fits. A colliding move is
// silently rejected.
func (s *State) tryMove(dx, dy int) bool {
	if s.Active == nil || !s.tryFits(dx, dy) {
		return false
	}
	s.Active.Col += dx
	s.Active.Row += dy
	return true
}

// lockActive fixes the active piece to the board and runs the shared
// lock transition: top-out check, line clears, scoring, level, spawn.
func (s *State) lockActive(p *Params) {
	piece := s.Active
	s.Active = nil
	s.gravity = 0
	s.lockTimer = 0

	var topOut bool
	for _, c := range piece.Cells() {
		if piece.Row+c.Y < 0 {
			topOut = true
			break
		}
	}
	s.Board.Lock(piece)
	if topOut {
		// a cell locked above the visible playfield
		s.GameOver = true
		return
	}

	if rows := s.Board.FullRows(); len(rows) > 0 {
		s.Board.ClearRows(rows)
		s.Lines += len(rows)
		s.Score += p.LineScore(len(rows), s.Level)
		s.Level = p.LevelUp(s.Lines)
	}
	s.spawnNext()
}

// spawnNext pulls the next shape from the queue and spawns it. A natural
// spawn re-enables holding.
func (s *State) spawnNext() {
	s.refillQueue()
	shape := s.Queue[0]
	s.Queue = s.Queue[1:]
	s.spawn(shape)
	if s.Active != nil {
		s.CanHold = true
	}
}

// spawn centers the shape over the board with its bottom cells on row 0,
// so taller shapes reach into the hidden rows. Spawning into an occupied
// cell is the top-out condition: the board is left untouched and no
// piece becomes active.
func (s *State) spawn(shape Shape) {
	cells := CellsFor(shape, 0)
	w, h := boundsOf(cells)
	piece := &Piece{Shape: shape, Col: (s.Board.Width - w) / 2, Row: -(h - 1)}
	if s.Board.Collides(piece) {
		s.GameOver = true
		s.Active = nil
		return
	}
	s.Active = piece
	s.lockTimer = 0
}

// holdActive swaps the active piece with the held shape, once per
// placement. The swapped-in piece starts from the spawn position.
func (s *State) holdActive() {
	if !s.CanHold || s.Active == nil {
		return
	}
	held := s.Held
	s.Held = s.Active.Shape
	s.CanHold = false
	s.Active = nil
	s.gravity = 0
	s.lockTimer = 0
	if held == "" {
		s.refillQueue()
		held = s.Queue[0]
		s.Queue = s.Queue[1:]
	}
	s.spawn(held)
}

// respawn discards the active piece and spawns the next one from the
// queue regardless of gravity or lock state. Manual reset aid, not part
// of normal play.
func (s *State) respawn() {
	s.Active = nil
	s.gravity = 0
	s.lockTimer = 0
	s.spawnNext()
}

// DropRow returns the row the active piece would land on if hard
// dropped, e.g. for ghost-piece rendering. Returns the current row when
// no piece is active.
func (s *State) DropRow() int {
	if s.Active == nil {
		return 0
	}
	test := *s.Active
	for {
		test.Row++
		if s.Board.Collides(&test) {
			return test.Row - 1
		}
	}
}
