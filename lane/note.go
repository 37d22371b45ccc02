package lane

import (
	"fmt"

	"github.com/note2tabs/note2tabsWeb-sub001/fretboard"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
	"github.com/note2tabs/note2tabsWeb-sub001/quantize"
)

// FindNote returns a pointer into the lane's note slice.
func FindNote(l *model.Lane, id int) (*model.Note, error) {
	for i := range l.Notes {
		if l.Notes[i].Id == id {
			return &l.Notes[i], nil
		}
	}
	return nil, fmt.Errorf("note %v: %w", id, model.ErrNotFound)
}

// AddNote creates a note at the (optionally snapped) time, clamping the
// position and deriving its pitch. Overlaps are allowed; string collisions
// are advisory and surfaced through Optimals only.
func AddNote(l *model.Lane, tab model.TabCoord, startTime float64, length float64, snap bool) model.Note {
	st := quantize.SnapStart(l.TimeSignature, startTime, snap)
	ln := quantize.SnapLength(l.TimeSignature, length, snap)
	coord := fretboard.ClampCoord(l.TabRef, tab)
	n := model.Note{
		Id:        NextId(l),
		StartTime: st,
		Length:    ln,
		MidiNum:   fretboard.PitchOf(l.TabRef, coord),
		Tab:       coord,
	}
	l.Notes = append(l.Notes, n)
	sortNotes(l)
	EnsureFrames(l, n.End())
	touch(l)
	return n
}

func DeleteNote(l *model.Lane, id int) error {
	for i := range l.Notes {
		if l.Notes[i].Id == id {
			l.Notes = append(l.Notes[:i], l.Notes[i+1:]...)
			touch(l)
			return nil
		}
	}
	return fmt.Errorf("note %v: %w", id, model.ErrNotFound)
}

// AssignTab moves a note to another position and rederives its pitch.
func AssignTab(l *model.Lane, id int, tab model.TabCoord) error {
	n, err := FindNote(l, id)
	if err != nil {
		return err
	}
	n.Tab = fretboard.ClampCoord(l.TabRef, tab)
	n.MidiNum = fretboard.PitchOf(l.TabRef, n.Tab)
	touch(l)
	return nil
}

func SetNoteStart(l *model.Lane, id int, value float64, snap bool) error {
	n, err := FindNote(l, id)
	if err != nil {
		return err
	}
	n.StartTime = quantize.SnapStart(l.TimeSignature, value, snap)
	end := n.End()
	sortNotes(l)
	EnsureFrames(l, end)
	touch(l)
	return nil
}

func SetNoteLength(l *model.Lane, id int, value float64, snap bool) error {
	n, err := FindNote(l, id)
	if err != nil {
		return err
	}
	n.Length = quantize.SnapLength(l.TimeSignature, value, snap)
	EnsureFrames(l, n.End())
	touch(l)
	return nil
}

// AssignOptimals re-solves each listed note, preferring the first playable
// position, else the first blocked one, else leaving the tab alone. The
// playable set is recorded on the note for the client to offer.
func AssignOptimals(l *model.Lane, ids []int) error {
	for _, id := range ids {
		n, err := FindNote(l, id)
		if err != nil {
			return err
		}
		possible, blocked := fretboard.OptimalsFor(l, *n)
		switch {
		case len(possible) > 0:
			n.Tab = possible[0]
		case len(blocked) > 0:
			n.Tab = blocked[0]
		}
		n.Optimals = possible
	}
	touch(l)
	return nil
}
