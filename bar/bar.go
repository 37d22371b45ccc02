package bar

import (
	"fmt"
	"sort"
	"time"

	"github.com/note2tabs/note2tabsWeb-sub001/constants"
	"github.com/note2tabs/note2tabsWeb-sub001/cutseg"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
	"github.com/note2tabs/note2tabsWeb-sub001/util"
)

// AddBars appends whole bars to the end of the timeline.
func AddBars(l *model.Lane, count int) {
	if count < 1 {
		return
	}
	l.TotalFrames += count * constants.FramesPerBar
	cutseg.ExtendTo(l, l.TotalFrames)
	touch(l)
}

// RemoveBar deletes one whole bar. Events living entirely inside the bar go
// with it; events past the bar shift back one bar length. Events straddling
// either boundary have no representable position afterwards and are dropped
// too. Cut segments are re-partitioned by subtracting the removed range.
func RemoveBar(l *model.Lane, index int) error {
	if l.NumBars() <= 1 {
		return fmt.Errorf("cannot remove the only bar: %w", model.ErrInvalidOperation)
	}
	index = util.Clamp(index, 0, l.NumBars()-1)
	s := index * constants.FramesPerBar
	e := s + constants.FramesPerBar

	notes := l.Notes[:0]
	for _, n := range l.Notes {
		switch {
		case n.End() <= s:
			notes = append(notes, n)
		case n.StartTime >= e:
			n.StartTime -= constants.FramesPerBar
			notes = append(notes, n)
		}
	}
	l.Notes = notes

	chords := l.Chords[:0]
	for _, c := range l.Chords {
		switch {
		case c.End() <= s:
			chords = append(chords, c)
		case c.StartTime >= e:
			c.StartTime -= constants.FramesPerBar
			chords = append(chords, c)
		}
	}
	l.Chords = chords

	cutseg.SubtractRange(l, s, e)
	l.TotalFrames -= constants.FramesPerBar
	touch(l)
	return nil
}

// ReorderBar moves one bar to another slot, remove-then-reinsert style: the
// events fully inside the source bar travel with it, everything displaced is
// remapped, and the cut partition resets to the default single segment.
func ReorderBar(l *model.Lane, from int, to int) error {
	n := l.NumBars()
	if n <= 1 {
		return fmt.Errorf("cannot reorder a single bar: %w", model.ErrInvalidOperation)
	}
	from = util.Clamp(from, 0, n-1)
	to = util.Clamp(to, 0, n-1)
	if from == to {
		return nil
	}
	s := from * constants.FramesPerBar
	e := s + constants.FramesPerBar

	// lift the source bar's own events out, keeping in-bar offsets
	var movedNotes []model.Note
	var movedChords []model.Chord
	notes := l.Notes[:0]
	for _, note := range l.Notes {
		if note.StartTime >= s && note.End() <= e {
			note.StartTime -= s
			movedNotes = append(movedNotes, note)
			continue
		}
		notes = append(notes, note)
	}
	l.Notes = notes
	chords := l.Chords[:0]
	for _, c := range l.Chords {
		if c.StartTime >= s && c.End() <= e {
			c.StartTime -= s
			movedChords = append(movedChords, c)
			continue
		}
		chords = append(chords, c)
	}
	l.Chords = chords

	// close the source gap, dropping straddlers like RemoveBar does
	removeSpan(l, s, e)

	// open a gap at the destination and put the bar's content back
	base := to * constants.FramesPerBar
	for i := range l.Notes {
		if l.Notes[i].StartTime >= base {
			l.Notes[i].StartTime += constants.FramesPerBar
		}
	}
	for i := range l.Chords {
		if l.Chords[i].StartTime >= base {
			l.Chords[i].StartTime += constants.FramesPerBar
		}
	}
	for _, note := range movedNotes {
		note.StartTime += base
		l.Notes = append(l.Notes, note)
	}
	for _, c := range movedChords {
		c.StartTime += base
		l.Chords = append(l.Chords, c)
	}
	sortEvents(l)

	// fine-grained segment reconciliation after a reorder is not attempted
	cutseg.Reset(l)
	touch(l)
	return nil
}

// removeSpan shifts everything at or past e back by the span width and drops
// events overlapping [s, e).
func removeSpan(l *model.Lane, s int, e int) {
	width := e - s
	notes := l.Notes[:0]
	for _, n := range l.Notes {
		switch {
		case n.End() <= s:
			notes = append(notes, n)
		case n.StartTime >= e:
			n.StartTime -= width
			notes = append(notes, n)
		}
	}
	l.Notes = notes
	chords := l.Chords[:0]
	for _, c := range l.Chords {
		switch {
		case c.End() <= s:
			chords = append(chords, c)
		case c.StartTime >= e:
			c.StartTime -= width
			chords = append(chords, c)
		}
	}
	l.Chords = chords
}

func sortEvents(l *model.Lane) {
	sort.SliceStable(l.Notes, func(i, j int) bool {
		if l.Notes[i].StartTime != l.Notes[j].StartTime {
			return l.Notes[i].StartTime < l.Notes[j].StartTime
		}
		return l.Notes[i].Id < l.Notes[j].Id
	})
	sort.SliceStable(l.Chords, func(i, j int) bool {
		if l.Chords[i].StartTime != l.Chords[j].StartTime {
			return l.Chords[i].StartTime < l.Chords[j].StartTime
		}
		return l.Chords[i].Id < l.Chords[j].Id
	})
}

func touch(l *model.Lane) {
	l.UpdatedAt = time.Now().UTC()
}
