package constants

import "os"

func GetServeAddr() string {
	addr := os.Getenv("SERVE_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// FramesPerBar is the fixed number of timeline frames in one bar. Every
// structural bar edit moves events in whole multiples of this span.
const FramesPerBar = 480

// MaxEventLength caps a single note/chord at four bars.
const MaxEventLength = 4 * FramesPerBar

const NumStrings = 6

// DefaultMaxFret applies when a lane carries no TabRef row for a string.
const DefaultMaxFret = 24

// StandardTuningBase holds the open-string MIDI pitch per string index,
// high e first: e4 B3 G3 D3 A2 E2.
var StandardTuningBase = [NumStrings]int{64, 59, 55, 50, 45, 40}

// TuningLabels prefix the six rendered tab lines.
var TuningLabels = [NumStrings]string{"e", "B", "G", "D", "A", "E"}

const MinTimeSignature = 1
const MaxTimeSignature = 64

const DefaultTimeSignature = 4
const DefaultSecondsPerBar = 2.0

// DefaultBarsPerRow is how many bars the renderer packs on one row of text.
const DefaultBarsPerRow = 4

// BarTextWidth is the column count of one rendered bar.
const BarTextWidth = 32

// HistoryCap bounds the undo/redo snapshot stacks.
const HistoryCap = 64

// GuestStoreCap bounds the in-memory canvas store for unauthenticated use.
const GuestStoreCap = 200
