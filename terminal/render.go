// Package terminal is the presentation glue: it renders game snapshots
// to an ANSI terminal and turns keyboard events into engine intents. It
// only ever reads the engine's state through session snapshots.
package terminal

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"blockfall/engine"
	"blockfall/session"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos = "\033[H" // Reset cursor position to 0,0
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[engine.Shape]string{
	engine.I: Cyan,
	engine.J: Blue,
	engine.L: Orange,
	engine.O: Yellow,
	engine.S: Green,
	engine.Z: Red,
	engine.T: Magenta,
}

const emptyCell = "  "

type templateData struct {
	Snap    *session.Snapshot
	NoGhost bool
}

type Renderer struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	noGhost  bool
}

func NewRenderer(w io.Writer, l *slog.Logger, noGhost bool) (*Renderer, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &Renderer{
		writer:   w,
		logger:   l,
		template: tmp,
		noGhost:  noGhost,
	}, nil
}

// Render draws one snapshot over the previous frame.
func (r *Renderer) Render(snap *session.Snapshot) {
	fmt.Fprint(r.writer, resetPos)
	td := &templateData{Snap: snap, NoGhost: r.noGhost}
	if err := r.template.Execute(r.writer, td); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"playfield": playfield,
		"hborder":   hborder,
		"sidebar":   sidebar,
	}

	// we use the console raw so new lines don't automatically transform
	// into carriage return. to fix that we add a carriage return to
	// every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func paint(s engine.Shape) string {
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", colorMap[s])
}

func hborder(t *templateData) string {
	return strings.Repeat("──", t.Snap.Width)
}

// playfield renders the visible rows: locked cells, then the ghost, then
// the active piece on top. Cells of the active piece that still sit in
// the hidden rows are simply not drawn.
func playfield(t *templateData) []string {
	snap := t.Snap
	cells := make([][]string, snap.Height)
	for row := range cells {
		cells[row] = make([]string, snap.Width)
		for col := range cells[row] {
			out := emptyCell
			if s := snap.Cells[row][col]; s != "" {
				out = paint(s)
			}
			cells[row][col] = out
		}
	}

	if p := snap.Active; p != nil {
		for _, c := range p.Cells() {
			if !t.NoGhost {
				gRow := snap.GhostRow + c.Y
				if gRow >= 0 && gRow < snap.Height {
					cells[gRow][p.Col+c.X] = "[]"
				}
			}
		}
		for _, c := range p.Cells() {
			row := p.Row + c.Y
			if row >= 0 && row < snap.Height {
				cells[row][p.Col+c.X] = paint(p.Shape)
			}
		}
	}

	rows := make([]string, snap.Height)
	for i := range cells {
		rows[i] = strings.Join(cells[i], "")
	}
	return rows
}

// sidebar returns the HUD fragment printed next to a playfield row.
func sidebar(t *templateData, row int) string {
	snap := t.Snap
	switch row {
	case 0:
		return fmt.Sprintf("   score %d", snap.Score)
	case 1:
		return fmt.Sprintf("   lines %d", snap.Lines)
	case 2:
		return fmt.Sprintf("   level %d", snap.Level)
	case 4:
		return "   next"
	case 5, 6:
		if len(snap.Queue) == 0 {
			return ""
		}
		return "   " + previewRow(snap.Queue[0], row-5)
	case 8:
		return "   hold"
	case 9, 10:
		if snap.Held == "" {
			return ""
		}
		return "   " + previewRow(snap.Held, row-9)
	case 12:
		if snap.GameOver {
			return "   GAME OVER, (r)estart"
		}
	}
	return ""
}

// previewRow renders one of the two spawn-orientation rows of a shape.
func previewRow(s engine.Shape, row int) string {
	out := []string{emptyCell, emptyCell, emptyCell, emptyCell}
	for _, c := range engine.CellsFor(s, 0) {
		if c.Y == row {
			out[c.X] = paint(s)
		}
	}
	return strings.Join(out, "")
}
