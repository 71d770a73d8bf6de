package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type cell struct {
	r       rune
	width   int
	isSpace bool
}

func toCells(s string) []cell {
	out := make([]cell, 0, len(s))
	for _, r := range s {
		out = append(out, cell{r: r, width: runewidth.RuneWidth(r), isSpace: r == ' '})
	}
	return out
}

func renderCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteRune(c.r)
	}
	return b.String()
}

// wrapText breaks s into lines no wider than width terminal cells, preferring
// to break at spaces. Existing newlines are kept.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return strings.Split(s, "\n")
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, wrapCells(toCells(para), width)...)
	}
	return lines
}

func wrapCells(cells []cell, width int) []string {
	var out []string
	line := make([]cell, 0, len(cells))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(cells); {
		item := cells[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out = append(out, renderCells(line[:lastSpaceIdx]))
				line = append([]cell{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out = append(out, renderCells(line))
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	return append(out, renderCells(line))
}

func lineWidthOf(line []cell) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []cell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}

// truncate shortens s to width cells with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
