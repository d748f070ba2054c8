package sampler

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	Rows       = 3
	Cols       = 5
	GameSize   = Rows * Cols
	MinNumber  = 1
	MaxNumber  = 25
	ColumnSize = Rows
)

// Draw is one historical result as recorded: 15 numbers, ascending.
type Draw []int

// Game is a generated set of 15 distinct numbers, ascending.
type Game [GameSize]int

// Key returns the batch dedup key of g.
func (g Game) Key() string {
	return joinInts(g[:])
}

func (g Game) String() string {
	parts := make([]string, len(g))
	for i, n := range g {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, " ")
}

// Grid lays out 15 numbers as 3 rows by 5 columns, row-major.
type Grid struct {
	cells [Rows][Cols]int
}

// NewGrid validates d and places it on a grid.
func NewGrid(d Draw) (Grid, error) {
	var g Grid
	if len(d) != GameSize {
		return g, fmt.Errorf("%w: expected %d numbers, got %d", ErrInvalidDraw, GameSize, len(d))
	}
	var seen [MaxNumber + 1]bool
	for i, n := range d {
		if n < MinNumber || n > MaxNumber {
			return g, fmt.Errorf("%w: number %d out of range", ErrInvalidDraw, n)
		}
		if seen[n] {
			return g, fmt.Errorf("%w: number %d repeated", ErrInvalidDraw, n)
		}
		seen[n] = true
		g.cells[i/Cols][i%Cols] = n
	}
	return g, nil
}

// GridFromColumns places five column triples side by side.
func GridFromColumns(cols [Cols][ColumnSize]int) Grid {
	var g Grid
	for c, col := range cols {
		for r, n := range col {
			g.cells[r][c] = n
		}
	}
	return g
}

func (g Grid) Column(i int) [ColumnSize]int {
	var out [ColumnSize]int
	for r := range Rows {
		out[r] = g.cells[r][i]
	}
	return out
}

func (g Grid) Row(i int) [Cols]int {
	return g.cells[i]
}

// Values flattens the grid row by row.
func (g Grid) Values() [GameSize]int {
	var out [GameSize]int
	for r := range Rows {
		row := g.Row(r)
		copy(out[r*Cols:], row[:])
	}
	return out
}

// Game returns the grid values sorted ascending.
func (g Grid) Game() Game {
	game := Game(g.Values())
	slices.Sort(game[:])
	return game
}

// IsValid reports whether d can be placed on a grid.
func (d Draw) IsValid() bool {
	_, err := NewGrid(d)
	return err == nil
}

func joinInts(values []int) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
