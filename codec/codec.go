package codec

import (
	"sort"
	"time"

	"github.com/note2tabs/note2tabsWeb-sub001/constants"
	"github.com/note2tabs/note2tabsWeb-sub001/cutseg"
	"github.com/note2tabs/note2tabsWeb-sub001/fretboard"
	"github.com/note2tabs/note2tabsWeb-sub001/lane"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
	"github.com/note2tabs/note2tabsWeb-sub001/util"
)

// Export flattens a lane into the stamp interchange form: one stamp per
// note, one per chord tab entry. Chord grouping is lossy here and is not
// reconstructed by Import.
func Export(l *model.Lane) []model.Stamp {
	res := []model.Stamp{}
	for _, n := range l.Notes {
		res = append(res, model.Stamp{Start: n.StartTime, Tab: n.Tab, Length: n.Length})
	}
	for _, c := range l.Chords {
		for _, t := range c.CurrentTabs {
			res = append(res, model.Stamp{Start: c.StartTime, Tab: t, Length: c.Length})
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Start < res[j].Start
	})
	return res
}

// Import loads stamps into a lane as plain notes. Non-append mode wipes the
// lane's events first; append mode shifts the incoming material past the
// current timeline, aligned up to a bar boundary.
func Import(l *model.Lane, stamps []model.Stamp, appendMode bool) {
	base := 0
	if appendMode {
		base = barAlignUp(l.TotalFrames)
	} else {
		l.Notes = []model.Note{}
		l.Chords = []model.Chord{}
	}

	extent := l.TotalFrames
	if !appendMode {
		extent = constants.FramesPerBar
	}
	for _, s := range stamps {
		tab := fretboard.ClampCoord(l.TabRef, s.Tab)
		n := model.Note{
			Id:        lane.NextId(l),
			StartTime: util.Max(0, base+s.Start),
			Length:    util.Clamp(s.Length, 1, constants.MaxEventLength),
			MidiNum:   fretboard.PitchOf(l.TabRef, tab),
			Tab:       tab,
		}
		l.Notes = append(l.Notes, n)
		extent = util.Max(extent, n.End())
	}

	l.TotalFrames = util.Max(l.TotalFrames, barAlignUp(extent))
	sort.SliceStable(l.Notes, func(i, j int) bool {
		if l.Notes[i].StartTime != l.Notes[j].StartTime {
			return l.Notes[i].StartTime < l.Notes[j].StartTime
		}
		return l.Notes[i].Id < l.Notes[j].Id
	})
	cutseg.Reset(l)
	l.UpdatedAt = time.Now().UTC()
}

func barAlignUp(frames int) int {
	bars := (frames + constants.FramesPerBar - 1) / constants.FramesPerBar
	if bars < 1 {
		bars = 1
	}
	return bars * constants.FramesPerBar
}
