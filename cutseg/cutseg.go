package cutseg

import (
	"sort"
	"time"

	"github.com/note2tabs/note2tabsWeb-sub001/fretboard"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
	"github.com/note2tabs/note2tabsWeb-sub001/util"
)

// Cut segments partition [0, totalFrames) into contiguous half-open ranges,
// each tagged with one reference fretboard position. Every operation here
// leaves that partition intact: no gaps, no overlaps, full coverage.

// DefaultSegments is the single whole-timeline segment a fresh lane gets.
func DefaultSegments(totalFrames int) []model.CutSegment {
	return []model.CutSegment{{Start: 0, End: totalFrames, Tab: model.TabCoord{}}}
}

// Reset throws away the current partition and re-seeds the default.
func Reset(l *model.Lane) {
	l.CutSegments = DefaultSegments(l.TotalFrames)
}

type anchor struct {
	time int
	tab  model.TabCoord
}

// Generate rebuilds the partition from the lane's events: a boundary at
// every note start and every chord start, each segment tagged with the
// position of the latest anchor at or before it.
func Generate(l *model.Lane) {
	var anchors []anchor
	for _, n := range l.Notes {
		anchors = append(anchors, anchor{time: n.StartTime, tab: n.Tab})
	}
	for _, c := range l.Chords {
		if len(c.CurrentTabs) == 0 {
			continue
		}
		anchors = append(anchors, anchor{time: c.StartTime, tab: c.CurrentTabs[0]})
	}
	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i].time < anchors[j].time
	})

	var bounds []int
	bounds = append(bounds, 0)
	for _, a := range anchors {
		if a.time > 0 && a.time < l.TotalFrames && a.time != bounds[len(bounds)-1] {
			bounds = append(bounds, a.time)
		}
	}
	bounds = append(bounds, l.TotalFrames)

	segs := make([]model.CutSegment, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		tab := model.TabCoord{}
		for _, a := range anchors {
			if a.time > bounds[i] {
				break
			}
			tab = a.tab
		}
		segs = append(segs, model.CutSegment{Start: bounds[i], End: bounds[i+1], Tab: tab})
	}
	l.CutSegments = segs
	touch(l)
}

// ApplyManual replaces the partition wholesale. Coordinates are clamped and
// range endpoints coerced back into a contiguous cover of the timeline; an
// empty replacement falls back to the default segment.
func ApplyManual(l *model.Lane, segs []model.CutSegment) {
	if len(segs) == 0 {
		Reset(l)
		touch(l)
		return
	}
	out := make([]model.CutSegment, len(segs))
	copy(out, segs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	for i := range out {
		out[i].Tab = fretboard.ClampCoord(l.TabRef, out[i].Tab)
		if i == 0 {
			out[i].Start = 0
		} else {
			out[i].Start = out[i-1].End
		}
		if out[i].End <= out[i].Start {
			out[i].End = out[i].Start + 1
		}
	}
	out[len(out)-1].End = l.TotalFrames
	// drop anything squeezed past the end of the timeline
	kept := out[:0]
	for _, s := range out {
		if s.Start < l.TotalFrames {
			if s.End > l.TotalFrames {
				s.End = l.TotalFrames
			}
			kept = append(kept, s)
		}
	}
	kept[len(kept)-1].End = l.TotalFrames
	l.CutSegments = kept
	touch(l)
}

// ShiftBoundary drags the edge between segment index and index+1. Stale
// indices from in-flight UI drags are tolerated as silent no-ops.
func ShiftBoundary(l *model.Lane, index int, newTime int) {
	if index < 0 || index > len(l.CutSegments)-2 {
		return
	}
	left := &l.CutSegments[index]
	right := &l.CutSegments[index+1]
	t := util.Clamp(newTime, left.Start+1, right.End-1)
	left.End = t
	right.Start = t
	touch(l)
}

// InsertAt splits the segment straddling t in two. The right half takes tab
// when supplied, otherwise it inherits the split segment's position.
func InsertAt(l *model.Lane, t int, tab *model.TabCoord) {
	for i := range l.CutSegments {
		seg := l.CutSegments[i]
		if t <= seg.Start || t >= seg.End {
			continue
		}
		rightTab := seg.Tab
		if tab != nil {
			rightTab = fretboard.ClampCoord(l.TabRef, *tab)
		}
		left := model.CutSegment{Start: seg.Start, End: t, Tab: seg.Tab}
		right := model.CutSegment{Start: t, End: seg.End, Tab: rightTab}
		segs := append([]model.CutSegment{}, l.CutSegments[:i]...)
		segs = append(segs, left, right)
		segs = append(segs, l.CutSegments[i+1:]...)
		l.CutSegments = segs
		touch(l)
		return
	}
}

// DeleteBoundary merges segments index and index+1, keeping the left
// segment's position. Out-of-range indices are silent no-ops.
func DeleteBoundary(l *model.Lane, index int) {
	if index < 0 || index > len(l.CutSegments)-2 {
		return
	}
	l.CutSegments[index].End = l.CutSegments[index+1].End
	l.CutSegments = append(l.CutSegments[:index+1], l.CutSegments[index+2:]...)
	touch(l)
}

// ExtendTo grows the partition after the timeline gained frames, stretching
// the last segment to keep full coverage.
func ExtendTo(l *model.Lane, totalFrames int) {
	if len(l.CutSegments) == 0 {
		l.CutSegments = DefaultSegments(totalFrames)
		return
	}
	if l.CutSegments[len(l.CutSegments)-1].End < totalFrames {
		l.CutSegments[len(l.CutSegments)-1].End = totalFrames
	}
}

// SubtractRange removes [s, e) from the partition, shrinking segments that
// overlap it and shifting later segments back. Adjacent leftovers with the
// same position merge. An emptied partition re-seeds the default.
func SubtractRange(l *model.Lane, s int, e int) {
	width := e - s
	var out []model.CutSegment
	for _, seg := range l.CutSegments {
		if seg.End <= s {
			out = append(out, seg)
			continue
		}
		if seg.Start >= e {
			seg.Start -= width
			seg.End -= width
			out = append(out, seg)
			continue
		}
		if seg.Start < s {
			out = append(out, model.CutSegment{Start: seg.Start, End: s, Tab: seg.Tab})
		}
		if seg.End > e {
			out = append(out, model.CutSegment{Start: s, End: seg.End - width, Tab: seg.Tab})
		}
	}
	var merged []model.CutSegment
	for _, seg := range out {
		if n := len(merged); n > 0 && merged[n-1].Tab == seg.Tab {
			merged[n-1].End = seg.End
			continue
		}
		merged = append(merged, seg)
	}
	if len(merged) == 0 {
		merged = DefaultSegments(l.TotalFrames - width)
	}
	l.CutSegments = merged
}

func touch(l *model.Lane) {
	l.UpdatedAt = time.Now().UTC()
}
