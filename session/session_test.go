package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockfall/engine"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	s := r.Create(Options{})

	require.NotEmpty(t, s.ID)
	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, []string{s.ID}, r.IDs())

	r.Remove(s.ID)
	_, err = r.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, r.IDs())
}

func TestCreateDefaults(t *testing.T) {
	r := NewRegistry()
	s := r.Create(Options{})

	snap := s.Snapshot()
	assert.Equal(t, 10, snap.Width)
	assert.Equal(t, 20, snap.Height)
	require.NotNil(t, snap.Active)
	assert.False(t, snap.GameOver)
}

func TestSnapshotIsolation(t *testing.T) {
	r := NewRegistry()
	s := r.Create(Options{Seed: 7})

	snap := s.Snapshot()
	require.NotNil(t, snap.Active)

	// scribbling over the snapshot must not leak into the live game
	snap.Cells[19][0] = engine.Z
	snap.Queue[0] = engine.Z
	snap.Active.Row = 99
	snap.Score = 12345

	fresh := s.Snapshot()
	assert.Empty(t, fresh.Cells[19][0])
	assert.NotEqual(t, 99, fresh.Active.Row)
	assert.Zero(t, fresh.Score)
}

func TestSessionsAreIndependent(t *testing.T) {
	r := NewRegistry()
	a := r.Create(Options{Seed: 1})
	b := r.Create(Options{Seed: 1})

	for i := 0; i < 100; i++ {
		a.Step(engine.Inputs{SoftDrop: true}, 16)
	}

	assert.NotEqual(t, a.Snapshot().Tick, b.Snapshot().Tick)
	assert.Zero(t, b.Snapshot().Score, "stepping one game must not touch the other")
}

func TestRestartReplacesState(t *testing.T) {
	r := NewRegistry()
	s := r.Create(Options{Seed: 3})

	for i := 0; i < 50; i++ {
		s.Step(engine.Inputs{SoftDrop: true, HardDrop: i%10 == 9}, 16)
	}
	s.Restart(3)

	snap := s.Snapshot()
	assert.Zero(t, snap.Score)
	assert.Zero(t, snap.Lines)
	assert.Zero(t, snap.Tick)
	for row := range snap.Cells {
		for col := range snap.Cells[row] {
			require.Empty(t, snap.Cells[row][col])
		}
	}
}

func TestConcurrentSessions(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			s := r.Create(Options{Seed: seed})
			for j := 0; j < 50; j++ {
				s.Step(engine.Inputs{SoftDrop: true}, 16)
				_ = s.Snapshot()
			}
			r.Remove(s.ID)
		}(uint64(i + 1))
	}
	wg.Wait()
	assert.Empty(t, r.IDs())
}
