package engine

// HiddenRows is the depth of the spawn buffer above the visible
// playfield. Those rows use negative row coordinates and carry no
// occupancy; a piece that locks with a cell still up there tops the
// game out.
const HiddenRows = 2

// Board is the occupancy grid. Row 0 is the top visible row, rows grow
// downwards. Cells are stored flat, addressed row*Width+col, so clearing
// rows is a plain copy instead of per-row reallocation.
type Board struct {
	Width  int
	Height int

	cells []Shape
}

// NewBoard allocates an empty width×height grid.
func NewBoard(width, height int) *Board {
	return &Board{
		Width:  width,
		Height: height,
		cells:  make([]Shape, width*height),
	}
}

// Cell returns the shape occupying (col, row), or "" when empty or when
// the coordinates are outside the stored grid.
func (b *Board) Cell(col, row int) Shape {
	if col < 0 || col >= b.Width || row < 0 || row >= b.Height {
		return ""
	}
	return b.cells[row*b.Width+col]
}

// SetCell writes one cell. Out-of-grid coordinates are ignored.
func (b *Board) SetCell(col, row int, s Shape) {
	if col < 0 || col >= b.Width || row < 0 || row >= b.Height {
		return
	}
	b.cells[row*b.Width+col] = s
}

// Collides reports whether any of the piece's cells leaves [0,Width)
// horizontally, reaches Height or below vertically, or overlaps an
// occupied cell at row >= 0. Negative rows are exempt from the occupancy
// check but not from the horizontal bounds.
func (b *Board) Collides(p *Piece) bool {
	for _, c := range p.Cells() {
		col, row := p.Col+c.X, p.Row+c.Y
		if col < 0 || col >= b.Width || row >= b.Height {
			return true
		}
		if row >= 0 && b.cells[row*b.Width+col] != "" {
			return true
		}
	}
	return false
}

// Lock marks the piece's in-bounds, non-negative-row cells as occupied.
// Cells with negative row are left alone.
func (b *Board) Lock(p *Piece) {
	for _, c := range p.Cells() {
		b.SetCell(p.Col+c.X, p.Row+c.Y, p.Shape)
	}
}

// FullRows returns the indices of completely occupied rows in ascending
// order.
func (b *Board) FullRows() []int {
	var full []int
	for row := 0; row < b.Height; row++ {
		filled := true
		for col := 0; col < b.Width; col++ {
			if b.cells[row*b.Width+col] == "" {
				filled = false
				break
			}
		}
		if filled {
			full = append(full, row)
		}
	}
	return full
}

// ClearRows removes each listed row and inserts an empty row at the top,
// keeping the total row count. Rows must be given in ascending order;
// removing top-down keeps the remaining indices valid while several rows
// clear at once.
func (b *Board) ClearRows(rows []int) {
	for _, row := range rows {
		copy(b.cells[b.Width:(row+1)*b.Width], b.cells[:row*b.Width])
		for col := 0; col < b.Width; col++ {
			b.cells[col] = ""
		}
	}
}
