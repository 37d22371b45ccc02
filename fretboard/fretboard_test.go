package fretboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/note2tabs/note2tabsWeb-sub001/model"
)

func TestPitchOfFallsBackToStandardTuning(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(64, PitchOf(nil, model.TabCoord{Str: 0, Fret: 0}))
	assert.Equal(67, PitchOf(nil, model.TabCoord{Str: 0, Fret: 3}))
	assert.Equal(40, PitchOf(nil, model.TabCoord{Str: 5, Fret: 0}))
}

func TestPitchOfUsesTabRefWhenSet(t *testing.T) {
	assert := assert.New(t)
	ref := model.TabRef{{70, 71, 72}}
	assert.Equal(71, PitchOf(ref, model.TabCoord{Str: 0, Fret: 1}))
	// unset cell falls back
	ref = model.TabRef{{0, 0, 0}}
	assert.Equal(65, PitchOf(ref, model.TabCoord{Str: 0, Fret: 1}))
}

func TestPitchOfClampsOutOfBounds(t *testing.T) {
	assert := assert.New(t)
	// string 9 clamps to 5, fret -3 clamps to 0
	assert.Equal(40, PitchOf(nil, model.TabCoord{Str: 9, Fret: -3}))
}

func TestAllPositionsForScansMatrix(t *testing.T) {
	assert := assert.New(t)
	ref := model.TabRef{
		{64, 65, 66},
		{59, 60, 64},
	}
	got := AllPositionsFor(ref, 64)
	assert.Equal([]model.TabCoord{{Str: 0, Fret: 0}, {Str: 1, Fret: 2}}, got)
}

func TestAllPositionsForNeverEmpty(t *testing.T) {
	assert := assert.New(t)
	got := AllPositionsFor(nil, 67)
	assert.Len(got, 1)
	assert.Equal(model.TabCoord{Str: 0, Fret: 3}, got[0])
}

func TestOptimalsForBlocksOccupiedStrings(t *testing.T) {
	assert := assert.New(t)
	// both pitches live on string 0 only, per this matrix
	ref := model.TabRef{{64, 65}}
	l := &model.Lane{
		TabRef: ref,
		Notes: []model.Note{
			{Id: 1, StartTime: 0, Length: 40, MidiNum: 64, Tab: model.TabCoord{Str: 0, Fret: 0}},
			{Id: 2, StartTime: 20, Length: 40, MidiNum: 65, Tab: model.TabCoord{Str: 0, Fret: 1}},
		},
	}
	possible, blocked := OptimalsFor(l, l.Notes[0])
	assert.Empty(possible)
	assert.Equal([]model.TabCoord{{Str: 0, Fret: 0}}, blocked)

	possible, blocked = OptimalsFor(l, l.Notes[1])
	assert.Empty(possible)
	assert.Equal([]model.TabCoord{{Str: 0, Fret: 1}}, blocked)
}

func TestOptimalsForIgnoresDisjointRanges(t *testing.T) {
	assert := assert.New(t)
	ref := model.TabRef{{64, 65}}
	l := &model.Lane{
		TabRef: ref,
		Notes: []model.Note{
			{Id: 1, StartTime: 0, Length: 40, MidiNum: 64, Tab: model.TabCoord{Str: 0, Fret: 0}},
			{Id: 2, StartTime: 40, Length: 40, MidiNum: 65, Tab: model.TabCoord{Str: 0, Fret: 1}},
		},
	}
	possible, blocked := OptimalsFor(l, l.Notes[0])
	assert.Empty(blocked)
	assert.Equal([]model.TabCoord{{Str: 0, Fret: 0}}, possible)
}

func TestOptimalsForSeesChordStrings(t *testing.T) {
	assert := assert.New(t)
	ref := model.TabRef{{64}, {64}}
	l := &model.Lane{
		TabRef: ref,
		Notes: []model.Note{
			{Id: 1, StartTime: 0, Length: 40, MidiNum: 64, Tab: model.TabCoord{Str: 0, Fret: 0}},
		},
		Chords: []model.Chord{{
			Id:           2,
			StartTime:    0,
			Length:       40,
			OriginalMidi: []int{59, 55},
			CurrentTabs:  []model.TabCoord{{Str: 1, Fret: 0}, {Str: 2, Fret: 0}},
			OgTabs:       []model.TabCoord{{Str: 1, Fret: 0}, {Str: 2, Fret: 0}},
		}},
	}
	possible, blocked := OptimalsFor(l, l.Notes[0])
	assert.Equal([]model.TabCoord{{Str: 0, Fret: 0}}, possible)
	assert.Equal([]model.TabCoord{{Str: 1, Fret: 0}}, blocked)
}
