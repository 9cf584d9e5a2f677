package graph

import (
	"strings"
	"time"

	"github.com/rdrkr/contribution-writer/internal/font"
)

// Grid dimensions of the contribution graph. Columns are weeks, rows are
// days of the week with row 0 = Sunday at the top.
const (
	Rows = 7
	Cols = 52
)

// gap is the number of blank columns between adjacent glyphs.
const gap = 1

// Bitmap is one word rendered onto the 52x7 graph grid.
type Bitmap struct {
	cells [Rows][Cols]bool

	// Clipped is the number of glyph columns that fell off the right edge.
	Clipped int

	// Dropped lists the runes that had no glyph and were rendered blank.
	Dropped []rune
}

// Lit reports whether the cell at (col, row) is set.
func (b *Bitmap) Lit(col, row int) bool {
	if col < 0 || col >= Cols || row < 0 || row >= Rows {
		return false
	}
	return b.cells[row][col]
}

// set marks the cell at (col, row), ignoring out-of-range coordinates.
func (b *Bitmap) set(col, row int) {
	if col < 0 || col >= Cols || row < 0 || row >= Rows {
		return
	}
	b.cells[row][col] = true
}

// LitCount returns the number of set cells.
func (b *Bitmap) LitCount() int {
	n := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b.cells[row][col] {
				n++
			}
		}
	}
	return n
}

// RenderWord draws word onto a fresh bitmap, centered horizontally on the
// grid. Characters are uppercased before glyph lookup; runes without a glyph
// render blank and are recorded in Dropped. Glyph columns that do not fit
// the 52-column grid are clipped and counted in Clipped.
func RenderWord(word string) *Bitmap {
	b := &Bitmap{}

	runes := []rune(strings.ToUpper(word))
	if len(runes) == 0 {
		return b
	}

	width := len(runes)*(font.Width+gap) - gap
	offset := 0
	if width < Cols {
		offset = (Cols - width) / 2
	} else {
		b.Clipped = width - Cols
	}

	x := offset
	for _, r := range runes {
		g, ok := font.Lookup(r)
		if !ok {
			b.Dropped = append(b.Dropped, r)
			g = font.Blank
		}
		for gx := 0; gx < font.Width; gx++ {
			for gy := 0; gy < font.Height; gy++ {
				if g.Lit(gx, gy) {
					b.set(x+gx, gy)
				}
			}
		}
		x += font.Width + gap
	}

	return b
}

// YearStart returns the first Sunday on or before January 1 of year, at
// midnight UTC. The contribution graph for a year starts on this date,
// which can fall in December of the previous year.
func YearStart(year int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	// time.Weekday counts Sunday as 0, so this is the days since last Sunday.
	return jan1.AddDate(0, 0, -int(jan1.Weekday()))
}

// PixelDate maps the cell at (col, row) to its calendar date for the given
// year: the year's origin plus col weeks and row days.
func PixelDate(year, col, row int) time.Time {
	return YearStart(year).AddDate(0, 0, col*7+row)
}

// Dates returns the date of every lit cell in chronological order.
// Iterating columns outermost and rows innermost yields ascending dates
// directly, since each cell's date is origin + 7*col + row days.
func (b *Bitmap) Dates(year int) []time.Time {
	var dates []time.Time
	for col := 0; col < Cols; col++ {
		for row := 0; row < Rows; row++ {
			if b.cells[row][col] {
				dates = append(dates, PixelDate(year, col, row))
			}
		}
	}
	return dates
}

// PlanEntry is one lit pixel scheduled for commits.
type PlanEntry struct {
	Date  time.Time
	Count int
}

// Plan converts the bitmap into a chronologically ordered commit plan with
// commitsPerPixel commits at every lit pixel's date.
func (b *Bitmap) Plan(year, commitsPerPixel int) []PlanEntry {
	dates := b.Dates(year)
	plan := make([]PlanEntry, 0, len(dates))
	for _, d := range dates {
		plan = append(plan, PlanEntry{Date: d, Count: commitsPerPixel})
	}
	return plan
}
