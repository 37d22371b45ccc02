package model

import (
	"time"

	"github.com/note2tabs/note2tabsWeb-sub001/constants"
)

// Note is a single fretted event on the lane timeline. Optimals holds the
// last computed playable-position set and is advisory only.
type Note struct {
	Id        int        `json:"id"`
	StartTime int        `json:"startTime"`
	Length    int        `json:"length"`
	MidiNum   int        `json:"midiNum"`
	Tab       TabCoord   `json:"tab"`
	Optimals  []TabCoord `json:"optimals,omitempty"`
}

func (n Note) End() int {
	return n.StartTime + n.Length
}

func (n Note) Copy() Note {
	out := n
	out.Optimals = append([]TabCoord(nil), n.Optimals...)
	return out
}

// Chord groups two or more formerly independent notes that share one start
// and length. OriginalMidi keeps the pitch of every source note, OgTabs the
// fingering snapshot taken at formation time so the original voicing stays
// recallable. The three slices always have equal length.
type Chord struct {
	Id           int        `json:"id"`
	StartTime    int        `json:"startTime"`
	Length       int        `json:"length"`
	OriginalMidi []int      `json:"originalMidi"`
	CurrentTabs  []TabCoord `json:"currentTabs"`
	OgTabs       []TabCoord `json:"ogTabs"`
}

func (c Chord) End() int {
	return c.StartTime + c.Length
}

func (c Chord) Copy() Chord {
	out := c
	out.OriginalMidi = append([]int(nil), c.OriginalMidi...)
	out.CurrentTabs = append([]TabCoord(nil), c.CurrentTabs...)
	out.OgTabs = append([]TabCoord(nil), c.OgTabs...)
	return out
}

// Lane is one tablature track: its events, tuning, grid and cut segments.
// TotalFrames is always a positive multiple of FramesPerBar.
type Lane struct {
	Id            string       `json:"id"`
	Name          string       `json:"name"`
	TotalFrames   int          `json:"totalFrames"`
	TimeSignature int          `json:"timeSignature"`
	SecondsPerBar float64      `json:"secondsPerBar"`
	Fps           float64      `json:"fps"`
	TabRef        TabRef       `json:"tabRef,omitempty"`
	Notes         []Note       `json:"notes"`
	Chords        []Chord      `json:"chords"`
	CutSegments   []CutSegment `json:"cutSegments"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func (l Lane) Copy() Lane {
	out := l
	out.TabRef = make(TabRef, len(l.TabRef))
	for i, row := range l.TabRef {
		out.TabRef[i] = append([]int(nil), row...)
	}
	if l.TabRef == nil {
		out.TabRef = nil
	}
	out.Notes = make([]Note, len(l.Notes))
	for i, n := range l.Notes {
		out.Notes[i] = n.Copy()
	}
	out.Chords = make([]Chord, len(l.Chords))
	for i, c := range l.Chords {
		out.Chords[i] = c.Copy()
	}
	out.CutSegments = append([]CutSegment(nil), l.CutSegments...)
	return out
}

// Canvas is an ordered set of lanes versioned as one unit. Version only
// moves on commit; drafts leave it untouched.
type Canvas struct {
	Id            string    `json:"id"`
	Name          string    `json:"name"`
	Version       int       `json:"version"`
	UpdatedAt     time.Time `json:"updatedAt"`
	SecondsPerBar float64   `json:"secondsPerBar"`
	Lanes         []Lane    `json:"lanes"`
}

func (c Canvas) Copy() Canvas {
	out := c
	out.Lanes = make([]Lane, len(c.Lanes))
	for i, l := range c.Lanes {
		out.Lanes[i] = l.Copy()
	}
	return out
}

// NumBars reports the whole bars currently on the lane timeline.
func (l Lane) NumBars() int {
	return l.TotalFrames / constants.FramesPerBar
}
