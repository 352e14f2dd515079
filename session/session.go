// Package session keeps a registry of independently running games, so
// several rounds (e.g. local multiplayer) can coexist without sharing
// configuration or state. Each session is the single writer of its game
// state; readers get deep-copy snapshots.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"blockfall/engine"
)

// ErrNotFound is returned when a session id is not in the registry.
var ErrNotFound = errors.New("session not found")

// Options configures a new session. Zero values fall back to a standard
// 10×20 board, the default parameters, and a random-ish nonzero seed
// derived from the session id.
type Options struct {
	Width  int
	Height int
	Seed   uint64
	Params *engine.Params
}

// Session owns one game. All access to the underlying state goes through
// its mutex; Step is the only writer.
type Session struct {
	ID string

	mu     sync.Mutex
	state  *engine.State
	params *engine.Params
}

// Step advances the game by one time slice.
func (s *Session) Step(in engine.Inputs, elapsedMs float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Step(in, elapsedMs, s.params)
}

// Restart replaces the whole game state with a fresh one. There is no
// partial reset.
func (s *Session) Restart(seed uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = engine.New(s.state.Board.Width, s.state.Board.Height, seed)
}

// Snapshot returns a deep copy of the game state that is safe to read
// while the session keeps stepping.
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	cells := make([][]engine.Shape, st.Board.Height)
	for row := range cells {
		cells[row] = make([]engine.Shape, st.Board.Width)
		for col := range cells[row] {
			cells[row][col] = st.Board.Cell(col, row)
		}
	}
	queue := make([]engine.Shape, len(st.Queue))
	copy(queue, st.Queue)

	snap := &Snapshot{
		Width:    st.Board.Width,
		Height:   st.Board.Height,
		Cells:    cells,
		Active:   st.Active.Copy(),
		Held:     st.Held,
		Queue:    queue,
		Score:    st.Score,
		Lines:    st.Lines,
		Level:    st.Level,
		GameOver: st.GameOver,
		Tick:     st.Tick,
	}
	if st.Active != nil {
		snap.GhostRow = st.DropRow()
	}
	return snap
}

// Snapshot is a read-only copy of the observable game state, the shape
// renderers and HUDs consume.
type Snapshot struct {
	Width, Height int
	Cells         [][]engine.Shape
	Active        *engine.Piece
	GhostRow      int
	Held          engine.Shape
	Queue         []engine.Shape
	Score         int
	Lines         int
	Level         int
	GameOver      bool
	Tick          uint64
}

// Registry is a uuid-keyed collection of sessions.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create starts a new game and registers it under a fresh uuid.
func (r *Registry) Create(o Options) *Session {
	if o.Width == 0 {
		o.Width = 10
	}
	if o.Height == 0 {
		o.Height = 20
	}
	if o.Params == nil {
		o.Params = engine.DefaultParams()
	}
	id := uuid.New().String()
	if o.Seed == 0 {
		o.Seed = seedFromID(id)
	}
	s := &Session{
		ID:     id,
		state:  engine.New(o.Width, o.Height, o.Seed),
		params: o.Params,
	}
	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return s
}

// Get looks a session up by id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Remove drops a session from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// IDs returns the ids of all registered sessions.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}

// seedFromID folds the uuid bytes into a nonzero engine seed.
func seedFromID(id string) uint64 {
	var seed uint64
	for _, b := range []byte(id) {
		seed = seed*131 + uint64(b)
	}
	if seed == 0 {
		seed = 1
	}
	return seed
}
