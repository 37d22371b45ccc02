package lane

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/note2tabs/note2tabsWeb-sub001/constants"
	"github.com/note2tabs/note2tabsWeb-sub001/cutseg"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
)

// New builds an empty one-bar lane with the default cut segment.
func New(name string, secondsPerBar float64) model.Lane {
	if secondsPerBar <= 0 {
		secondsPerBar = constants.DefaultSecondsPerBar
	}
	l := model.Lane{
		Id:            uuid.New().String(),
		Name:          name,
		TotalFrames:   constants.FramesPerBar,
		TimeSignature: constants.DefaultTimeSignature,
		SecondsPerBar: secondsPerBar,
		Fps:           constants.FramesPerBar / secondsPerBar,
		Notes:         []model.Note{},
		Chords:        []model.Chord{},
		UpdatedAt:     time.Now().UTC(),
	}
	l.CutSegments = cutseg.DefaultSegments(l.TotalFrames)
	return l
}

// NextId derives the next event id from the current maximum across notes
// and chords. Ids are never reused within a lane's lifetime.
func NextId(l *model.Lane) int {
	max := 0
	for _, n := range l.Notes {
		if n.Id > max {
			max = n.Id
		}
	}
	for _, c := range l.Chords {
		if c.Id > max {
			max = c.Id
		}
	}
	return max + 1
}

// EnsureFrames raises totalFrames to the bar multiple covering end, keeping
// the cut partition stretched over the new tail.
func EnsureFrames(l *model.Lane, end int) {
	for l.TotalFrames < end {
		l.TotalFrames += constants.FramesPerBar
	}
	cutseg.ExtendTo(l, l.TotalFrames)
}

func sortNotes(l *model.Lane) {
	sort.SliceStable(l.Notes, func(i, j int) bool {
		if l.Notes[i].StartTime != l.Notes[j].StartTime {
			return l.Notes[i].StartTime < l.Notes[j].StartTime
		}
		return l.Notes[i].Id < l.Notes[j].Id
	})
}

func sortChords(l *model.Lane) {
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

// SetTimeSignature changes the lane's snapping grid. The value is clamped,
// never rejected.
func SetTimeSignature(l *model.Lane, v int) {
	if v < constants.MinTimeSignature {
		v = constants.MinTimeSignature
	}
	if v > constants.MaxTimeSignature {
		v = constants.MaxTimeSignature
	}
	l.TimeSignature = v
	touch(l)
}

// SetSecondsPerBar overrides the lane tempo and rederives fps.
func SetSecondsPerBar(l *model.Lane, v float64) {
	if v <= 0 {
		v = constants.DefaultSecondsPerBar
	}
	l.SecondsPerBar = v
	l.Fps = constants.FramesPerBar / v
	touch(l)
}
