package lane

import (
	"fmt"
	"sort"

	"github.com/note2tabs/note2tabsWeb-sub001/fretboard"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
	"github.com/note2tabs/note2tabsWeb-sub001/util"
)

func FindChord(l *model.Lane, id int) (*model.Chord, error) {
	for i := range l.Chords {
		if l.Chords[i].Id == id {
			return &l.Chords[i], nil
		}
	}
	return nil, fmt.Errorf("chord %v: %w", id, model.ErrNotFound)
}

// MakeChord fuses two or more notes into one chord. The source notes are
// consumed; their order inside the chord is by start time, then string.
func MakeChord(l *model.Lane, noteIds []int) (model.Chord, error) {
	var picked []model.Note
	ids := make(map[int]bool)
	for _, id := range noteIds {
		if ids[id] {
			continue
		}
		n, err := FindNote(l, id)
		if err != nil {
			continue
		}
		ids[id] = true
		picked = append(picked, n.Copy())
	}
	if len(picked) < 2 {
		return model.Chord{}, fmt.Errorf("chord needs at least two notes, got %v: %w",
			len(picked), model.ErrInvalidSelection)
	}

	sort.SliceStable(picked, func(i, j int) bool {
		if picked[i].StartTime != picked[j].StartTime {
			return picked[i].StartTime < picked[j].StartTime
		}
		return picked[i].Tab.Str < picked[j].Tab.Str
	})

	start := picked[0].StartTime
	end := 0
	for _, n := range picked {
		end = util.Max(end, n.End())
	}

	c := model.Chord{
		Id:        NextId(l),
		StartTime: start,
		Length:    end - start,
	}
	for _, n := range picked {
		c.OriginalMidi = append(c.OriginalMidi, n.MidiNum)
		c.CurrentTabs = append(c.CurrentTabs, n.Tab)
		c.OgTabs = append(c.OgTabs, n.Tab)
	}

	kept := l.Notes[:0]
	for _, n := range l.Notes {
		if !ids[n.Id] {
			kept = append(kept, n)
		}
	}
	l.Notes = kept
	l.Chords = append(l.Chords, c)
	sortChords(l)
	touch(l)
	return c, nil
}

// DisbandChord dissolves a chord back into one note per tab entry, all at
// the chord's start and length, with fresh ids.
func DisbandChord(l *model.Lane, chordId int) error {
	c, err := FindChord(l, chordId)
	if err != nil {
		return err
	}
	tabs := append([]model.TabCoord(nil), c.CurrentTabs...)
	start, length := c.StartTime, c.Length
	if err := DeleteChord(l, chordId); err != nil {
		return err
	}
	for _, t := range tabs {
		n := model.Note{
			Id:        NextId(l),
			StartTime: start,
			Length:    length,
			MidiNum:   fretboard.PitchOf(l.TabRef, t),
			Tab:       t,
		}
		l.Notes = append(l.Notes, n)
	}
	sortNotes(l)
	touch(l)
	return nil
}

func DeleteChord(l *model.Lane, id int) error {
	for i := range l.Chords {
		if l.Chords[i].Id == id {
			l.Chords = append(l.Chords[:i], l.Chords[i+1:]...)
			touch(l)
			return nil
		}
	}
	return fmt.Errorf("chord %v: %w", id, model.ErrNotFound)
}

// SliceChord splits a chord at a time strictly inside its span. Both halves
// keep the same voicings; nothing is re-solved.
func SliceChord(l *model.Lane, chordId int, t int) error {
	c, err := FindChord(l, chordId)
	if err != nil {
		return err
	}
	if t <= c.StartTime || t >= c.End() {
		return fmt.Errorf("slice time %v outside chord span [%v, %v): %w",
			t, c.StartTime, c.End(), model.ErrInvalidRange)
	}
	right := c.Copy()
	right.Id = NextId(l)
	right.StartTime = t
	right.Length = c.End() - t
	c.Length = t - c.StartTime
	l.Chords = append(l.Chords, right)
	sortChords(l)
	touch(l)
	return nil
}

// SetChordTabs replaces the chord's current voicing. Cardinality must match
// the chord's note count.
func SetChordTabs(l *model.Lane, chordId int, tabs []model.TabCoord) error {
	c, err := FindChord(l, chordId)
	if err != nil {
		return err
	}
	if len(tabs) != len(c.CurrentTabs) {
		return fmt.Errorf("chord %v has %v notes, got %v tabs: %w",
			chordId, len(c.CurrentTabs), len(tabs), model.ErrInvalidSelection)
	}
	for i, t := range tabs {
		c.CurrentTabs[i] = fretboard.ClampCoord(l.TabRef, t)
	}
	touch(l)
	return nil
}

// ShiftChordOctave moves every tab in the voicing twelve frets up or down,
// clamped to each string's fret bounds.
func ShiftChordOctave(l *model.Lane, chordId int, direction int) error {
	c, err := FindChord(l, chordId)
	if err != nil {
		return err
	}
	delta := 12
	if direction < 0 {
		delta = -12
	}
	for i, t := range c.CurrentTabs {
		t.Fret += delta
		c.CurrentTabs[i] = fretboard.ClampCoord(l.TabRef, t)
	}
	touch(l)
	return nil
}

// ChordAlternatives lists the distinct fingerings tracked for a chord: the
// current voicing and, when it differs, the formation-time snapshot.
func ChordAlternatives(l *model.Lane, chordId int) ([][]model.TabCoord, error) {
	c, err := FindChord(l, chordId)
	if err != nil {
		return nil, err
	}
	res := [][]model.TabCoord{append([]model.TabCoord(nil), c.CurrentTabs...)}
	if !tabsEqual(c.CurrentTabs, c.OgTabs) {
		res = append(res, append([]model.TabCoord(nil), c.OgTabs...))
	}
	return res, nil
}

func tabsEqual(a []model.TabCoord, b []model.TabCoord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
