package fretboard

import (
	"github.com/note2tabs/note2tabsWeb-sub001/constants"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
	"github.com/note2tabs/note2tabsWeb-sub001/util"
)

// MaxFret is the highest fret addressable on a string, taken from the width
// of the TabRef row when one exists.
func MaxFret(ref model.TabRef, str int) int {
	if str >= 0 && str < len(ref) && len(ref[str]) > 0 {
		return len(ref[str]) - 1
	}
	return constants.DefaultMaxFret
}

// ClampCoord coerces a client-supplied position into string/fret bounds.
func ClampCoord(ref model.TabRef, t model.TabCoord) model.TabCoord {
	s := util.Clamp(t.Str, 0, constants.NumStrings-1)
	f := util.Clamp(t.Fret, 0, MaxFret(ref, s))
	return model.TabCoord{Str: s, Fret: f}
}

// PitchOf resolves a position to its MIDI pitch. Cells < 1 count as unset
// and fall back to the standard-tuning formula.
func PitchOf(ref model.TabRef, t model.TabCoord) int {
	t = ClampCoord(ref, t)
	if t.Str < len(ref) && t.Fret < len(ref[t.Str]) && ref[t.Str][t.Fret] >= 1 {
		return ref[t.Str][t.Fret]
	}
	return constants.StandardTuningBase[t.Str] + t.Fret
}

// AllPositionsFor scans the whole matrix for positions sounding midi. It
// never returns an empty set: with no matches (or no matrix at all) it
// yields a single fallback coordinate so callers always have something to
// assign.
func AllPositionsFor(ref model.TabRef, midi int) []model.TabCoord {
	var res []model.TabCoord
	for s := 0; s < len(ref) && s < constants.NumStrings; s++ {
		for f, pitch := range ref[s] {
			if pitch >= 1 && pitch == midi {
				res = append(res, model.TabCoord{Str: s, Fret: f})
			}
		}
	}
	if len(res) == 0 {
		res = append(res, fallbackFor(ref, midi))
	}
	return res
}

// fallbackFor picks the first string that can reach midi with the standard
// tuning formula, lowest string index first.
func fallbackFor(ref model.TabRef, midi int) model.TabCoord {
	for s := 0; s < constants.NumStrings; s++ {
		fret := midi - constants.StandardTuningBase[s]
		if fret >= 0 && fret <= MaxFret(ref, s) {
			return model.TabCoord{Str: s, Fret: fret}
		}
	}
	return ClampCoord(ref, model.TabCoord{Str: 0, Fret: midi - constants.StandardTuningBase[0]})
}

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// OptimalsFor partitions every candidate position for the note's pitch into
// playable and blocked. A candidate is blocked when any other event whose
// time range overlaps the note's already occupies that string, regardless of
// fret. Both lists come back unconditionally; an empty possible set is not
// an error since the full list still serves manual reassignment.
func OptimalsFor(l *model.Lane, n model.Note) (possible []model.TabCoord, blocked []model.TabCoord) {
	occupied := make(map[int]bool)
	for _, other := range l.Notes {
		if other.Id == n.Id {
			continue
		}
		if overlaps(n.StartTime, n.End(), other.StartTime, other.End()) {
			occupied[other.Tab.Str] = true
		}
	}
	for _, c := range l.Chords {
		if !overlaps(n.StartTime, n.End(), c.StartTime, c.End()) {
			continue
		}
		for _, t := range c.CurrentTabs {
			occupied[t.Str] = true
		}
	}

	possible = []model.TabCoord{}
	blocked = []model.TabCoord{}
	for _, t := range AllPositionsFor(l.TabRef, n.MidiNum) {
		if occupied[t.Str] {
			blocked = append(blocked, t)
		} else {
			possible = append(possible, t)
		}
	}
	return possible, blocked
}
