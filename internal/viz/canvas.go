package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cells are 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in dot coordinates, so a
// canvas of Width x Height cells holds (2*Width) x (4*Height) dots. Dot
// (0, 0) is the top left corner.
type Canvas struct {
	Width, Height int
	cells         [][]rune
	tints         map[[2]int]lipgloss.Style
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for row := range c.cells {
		c.cells[row] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) cell(x, y int) (col, row int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	return col, row, col < c.Width && row < c.Height
}

// Set turns on the dot at (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if col, row, ok := c.cell(x, y); ok {
		c.cells[row][col] |= dotBits[y%4][x%2]
	}
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	col, row, ok := c.cell(x, y)
	return ok && c.cells[row][col]&dotBits[y%4][x%2] != 0
}

func (c *Canvas) Unset(x, y int) {
	if col, row, ok := c.cell(x, y); ok {
		c.cells[row][col] &^= dotBits[y%4][x%2]
	}
}

// Tint renders the cell holding dot (x, y) with style.
func (c *Canvas) Tint(x, y int, style lipgloss.Style) {
	if col, row, ok := c.cell(x, y); ok {
		c.tints[[2]int{col, row}] = style
	}
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for i := range row {
			row[i] = brailleBlank
		}
	}
	c.tints = map[[2]int]lipgloss.Style{}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		if e2 := 2 * err; e2 >= dy {
			err += dy
			x0 += sx
		} else {
			err += dx
			y0 += sy
		}
	}
}

// DrawDot draws a 3x3 block of dots centred on (x, y).
func (c *Canvas) DrawDot(x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row, cells := range c.cells {
		for col, r := range cells {
			if style, ok := c.tints[[2]int{col, row}]; ok {
				b.WriteString(style.Render(string(r)))
				continue
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
