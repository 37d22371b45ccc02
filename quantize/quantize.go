package quantize

import (
	"github.com/note2tabs/note2tabsWeb-sub001/constants"
	"github.com/note2tabs/note2tabsWeb-sub001/util"
)

// UnitFrames is the grid subdivision implied by a time signature: a bar
// split into timeSignature equal units.
func UnitFrames(timeSignature int) int {
	ts := util.Clamp(timeSignature, constants.MinTimeSignature, constants.MaxTimeSignature)
	return constants.FramesPerBar / ts
}

// SnapStart quantizes a start time onto the grid. Disabled snapping still
// coerces the value to a non-negative whole frame. Snapping rounds the
// in-bar offset down to the nearest unit, so an already snapped value maps
// to itself.
func SnapStart(timeSignature int, value float64, enabled bool) int {
	v := util.Max(0, util.Round(value))
	if !enabled {
		return v
	}
	unit := UnitFrames(timeSignature)
	barBase := (v / constants.FramesPerBar) * constants.FramesPerBar
	offset := ((v - barBase) / unit) * unit
	return barBase + offset
}

// SnapLength quantizes a length, clamped to [1, MaxEventLength]. Snapping
// rounds down to a whole number of units but never below one unit.
func SnapLength(timeSignature int, value float64, enabled bool) int {
	v := util.Clamp(util.Round(value), 1, constants.MaxEventLength)
	if !enabled {
		return v
	}
	unit := UnitFrames(timeSignature)
	snapped := (v / unit) * unit
	if snapped < unit {
		snapped = unit
	}
	return snapped
}
