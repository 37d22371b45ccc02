package render

import (
	"strconv"
	"strings"

	"github.com/note2tabs/note2tabsWeb-sub001/constants"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
)

const restRune = '-'

type placement struct {
	bar    int
	str    int
	column int
	text   string
}

// Render lays the lane's events out as fixed-width ASCII tab: six lines per
// bar, one per string, grouped into rows of barsPerRow bars with tuning
// labels and bar separators. Events that cannot be placed without touching
// an already written fret number are skipped, never overwritten.
func Render(l *model.Lane, barsPerRow int) string {
	if barsPerRow < 1 {
		barsPerRow = constants.DefaultBarsPerRow
	}
	numBars := l.NumBars()
	if numBars < 1 {
		numBars = 1
	}

	grid := make([][][]byte, numBars)
	for b := range grid {
		grid[b] = make([][]byte, constants.NumStrings)
		for s := range grid[b] {
			line := make([]byte, constants.BarTextWidth)
			for i := range line {
				line[i] = restRune
			}
			grid[b][s] = line
		}
	}

	for _, p := range placements(l, numBars) {
		place(grid[p.bar][p.str], p.column, p.text)
	}

	var rows []string
	for rowStart := 0; rowStart < numBars; rowStart += barsPerRow {
		rowEnd := rowStart + barsPerRow
		if rowEnd > numBars {
			rowEnd = numBars
		}
		var lines []string
		for s := 0; s < constants.NumStrings; s++ {
			var sb strings.Builder
			sb.WriteString(constants.TuningLabels[s])
			sb.WriteByte('|')
			for b := rowStart; b < rowEnd; b++ {
				sb.Write(grid[b][s])
				sb.WriteByte('|')
			}
			lines = append(lines, sb.String())
		}
		rows = append(rows, strings.Join(lines, "\n"))
	}
	return strings.Join(rows, "\n\n") + "\n"
}

func placements(l *model.Lane, numBars int) []placement {
	var res []placement
	add := func(start int, tab model.TabCoord) {
		b := start / constants.FramesPerBar
		if b < 0 || b >= numBars || tab.Str < 0 || tab.Str >= constants.NumStrings {
			return
		}
		offset := start - b*constants.FramesPerBar
		col := offset * constants.BarTextWidth / constants.FramesPerBar
		res = append(res, placement{
			bar:    b,
			str:    tab.Str,
			column: col,
			text:   strconv.Itoa(tab.Fret),
		})
	}
	for _, n := range l.Notes {
		add(n.StartTime, n.Tab)
	}
	for _, c := range l.Chords {
		for _, t := range c.CurrentTabs {
			add(c.StartTime, t)
		}
	}
	return res
}

// place writes text at the nearest free span to column, probing forward
// first and then backward. Written digits are never clobbered; with no free
// span the event is silently skipped.
func place(line []byte, column int, text string) {
	if col, ok := probe(line, column, len(text), +1); ok {
		copy(line[col:], text)
		return
	}
	if col, ok := probe(line, column-1, len(text), -1); ok {
		copy(line[col:], text)
	}
}

func probe(line []byte, from int, width int, dir int) (int, bool) {
	for col := from; col >= 0 && col+width <= len(line); col += dir {
		if spanFree(line, col, width) {
			return col, true
		}
	}
	return 0, false
}

func spanFree(line []byte, col int, width int) bool {
	for i := col; i < col+width; i++ {
		if line[i] != restRune {
			return false
		}
	}
	return true
}
