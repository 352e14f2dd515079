// Package engine contains the deterministic falling-block game state.
// It is single-writer and synchronous: the caller owns a State, feeds it
// inputs and elapsed time through Step, and reads the resulting fields.
package engine

// Shape identifies one of the seven piece types. The empty string marks
// an empty board cell.
type Shape string

const (
	I Shape = "I"
	J Shape = "J"
	L Shape = "L"
	O Shape = "O"
	S Shape = "S"
	T Shape = "T"
	Z Shape = "Z"
)

// Shapes lists every piece type in bag order.
var Shapes = [7]Shape{I, J, L, O, S, T, Z}

// Cell is a column/row offset. X grows rightwards, Y grows downwards.
type Cell struct {
	X, Y int
}

// Spawn-orientation footprints. Exactly 4 cells per shape, already
// normalized so the minimum X and Y are 0.
var shapeCells = map[Shape][4]Cell{
	I: {{0, 0}, {1, 0}, {2, 0}, {3, 0}},
	J: {{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	L: {{2, 0}, {0, 1}, {1, 1}, {2, 1}},
	O: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	S: {{1, 0}, {2, 0}, {0, 1}, {1, 1}},
	T: {{1, 0}, {0, 1}, {1, 1}, {2, 1}},
	Z: {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
}

// Rotate turns cells by steps*90° clockwise about the origin. The result
// is not normalized; step counts are taken modulo 4.
func Rotate(cells [4]Cell, steps int) [4]Cell {
	steps = ((steps % 4) + 4) % 4
	out := cells
	for i, c := range cells {
		switch steps {
		case 1: // 90°: (x,y) -> (-y,x)
			out[i] = Cell{X: -c.Y, Y: c.X}
		case 2: // 180°: (x,y) -> (-x,-y)
			out[i] = Cell{X: -c.X, Y: -c.Y}
		case 3: // 270°: (x,y) -> (y,-x)
			out[i] = Cell{X: c.Y, Y: -c.X}
		default:
			out[i] = c
		}
	}
	return out
}

// Normalize translates cells so the minimum X and Y become 0.
func Normalize(cells [4]Cell) [4]Cell {
	minX, minY := cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
	}
	for i := range cells {
		cells[i].X -= minX
		cells[i].Y -= minY
	}
	return cells
}

// CellsFor returns the normalized footprint of a shape at a rotation
// index. The same (shape, rotation) pair always yields the same cells.
func CellsFor(shape Shape, rotation int) [4]Cell {
	return Normalize(Rotate(shapeCells[shape], rotation))
}

// boundsOf returns the width and height of a normalized footprint.
func boundsOf(cells [4]Cell) (w, h int) {
	for _, c := range cells {
		if c.X+1 > w {
			w = c.X + 1
		}
		if c.Y+1 > h {
			h = c.Y + 1
		}
	}
	return w, h
}
