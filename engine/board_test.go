package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollides(t *testing.T) {
	// J at spawn on a 10×20 board:
	//
	//  -1   . . . O . . . . . .   (hidden row)
	//   0   . . . O O O . . . .
	//   1   . . . . . C . . . .   C = stone
	tests := []struct {
		name           string
		deltaX, deltaY int
		wantCollision  bool
	}{
		{
			name: "no collision",
		},
		{
			name:          "stack collision",
			deltaY:        1,
			wantCollision: true,
		},
		{
			name:          "left bound collision",
			deltaX:        -4,
			wantCollision: true,
		},
		{
			name:          "right bound collision",
			deltaX:        5,
			wantCollision: true,
		},
		{
			name:          "bottom bound collision",
			deltaY:        20,
			wantCollision: true,
		},
		{
			name: "negative rows are exempt from occupancy",
			// the whole piece sits above the board; only the
			// horizontal bounds still apply.
			deltaY: -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(10, 20)
			b.SetCell(5, 1, Z)
			p := &Piece{Shape: J, Col: 3 + tt.deltaX, Row: -1 + tt.deltaY}

			assert.Equal(t, tt.wantCollision, b.Collides(p))
		})
	}
}

func TestLock(t *testing.T) {
	b := NewBoard(10, 20)
	// J half inside the hidden band: only the row-0 cells land.
	b.Lock(&Piece{Shape: J, Col: 3, Row: -2})

	var occupied int
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			if b.Cell(col, row) != "" {
				occupied++
			}
		}
	}
	require.Equal(t, 3, occupied, "only the non-negative rows lock")
	assert.Equal(t, J, b.Cell(3, 0))
	assert.Equal(t, J, b.Cell(4, 0))
	assert.Equal(t, J, b.Cell(5, 0))
}

func TestFullRows(t *testing.T) {
	b := NewBoard(4, 6)
	fillRow(b, 1)
	fillRow(b, 4)
	fillRow(b, 5)
	b.SetCell(0, 3, T) // partial row

	assert.Equal(t, []int{1, 4, 5}, b.FullRows(), "ascending order")
}

func TestClearRowsPreservesHeight(t *testing.T) {
	b := NewBoard(4, 6)
	b.SetCell(0, 0, L) // marker above the cleared rows
	fillRow(b, 2)
	fillRow(b, 3)
	fillRow(b, 5)
	b.SetCell(1, 4, T) // survivor between cleared rows

	rows := b.FullRows()
	require.Equal(t, []int{2, 3, 5}, rows)
	b.ClearRows(rows)

	// the k new top rows are empty
	for row := 0; row < 3; row++ {
		for col := 0; col < b.Width; col++ {
			assert.Empty(t, b.Cell(col, row), "row %d col %d", row, col)
		}
	}
	// survivors shifted down by the number of cleared rows below them
	assert.Equal(t, L, b.Cell(0, 3), "marker fell three rows")
	assert.Equal(t, T, b.Cell(1, 5), "partial row fell past the cleared ones")
	assert.Empty(t, b.FullRows(), "no full rows remain")
}

func fillRow(b *Board, row int) {
	for col := 0; col < b.Width; col++ {
		b.SetCell(col, row, Z)
	}
}
