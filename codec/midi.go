package codec

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/note2tabs/note2tabsWeb-sub001/constants"
	"github.com/note2tabs/note2tabsWeb-sub001/fretboard"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
	"github.com/note2tabs/note2tabsWeb-sub001/util"
)

// quarters per bar when mapping frames onto metric ticks
const ticksPerQuarter = constants.FramesPerBar / 4

// ReadSMFFile parses a standard MIDI file from disk.
func ReadSMFFile(path string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// the smf reader panics on some malformed files
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return &blank, fmt.Errorf("reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("parsing midi file: %w", err)
	}
	return res, nil
}

// FromSMF reduces a MIDI file to stamps: note-on/note-off pairs become
// (start, length) frame ranges at the given frame rate, and each pitch gets
// a fretboard position from the standard-tuning search.
func FromSMF(s *smf.SMF, fps float64) []model.Stamp {
	var stamps []model.Stamp
	for _, events := range s.Tracks {
		var absTicks int64
		pressed := make(map[uint8]int64)
		for _, event := range events {
			absTicks += int64(event.Delta)
			absMicros := s.TimeAt(absTicks)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				pressed[key] = absMicros
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				onMicros, ok := pressed[key]
				if !ok {
					continue
				}
				delete(pressed, key)
				start := framesAt(onMicros, fps)
				length := util.Max(1, framesAt(absMicros, fps)-start)
				positions := fretboard.AllPositionsFor(nil, int(key))
				stamps = append(stamps, model.Stamp{
					Start:  start,
					Tab:    positions[0],
					Length: length,
				})
			}
		}
	}
	sort.SliceStable(stamps, func(i, j int) bool {
		return stamps[i].Start < stamps[j].Start
	})
	return stamps
}

func framesAt(micros int64, fps float64) int {
	return int(float64(micros) / 1e6 * fps)
}

// ToSMF renders a lane's events as a single-track MIDI file, frames mapped
// 1:1 onto metric ticks.
func ToSMF(l *model.Lane) *smf.SMF {
	type tickEvent struct {
		tick int
		off  bool
		key  uint8
	}
	var evts []tickEvent
	for _, stamp := range Export(l) {
		key := uint8(util.Clamp(fretboard.PitchOf(l.TabRef, stamp.Tab), 0, 127))
		evts = append(evts, tickEvent{tick: stamp.Start, key: key})
		evts = append(evts, tickEvent{tick: stamp.Start + stamp.Length, off: true, key: key})
	}
	sort.SliceStable(evts, func(i, j int) bool {
		if evts[i].tick != evts[j].tick {
			return evts[i].tick < evts[j].tick
		}
		// note-off first so re-struck pitches do not cancel
		return evts[i].off && !evts[j].off
	})

	var out smf.SMF
	out.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	var track smf.Track
	prev := 0
	for _, ev := range evts {
		delta := uint32(ev.tick - prev)
		prev = ev.tick
		var msg midi.Message
		if ev.off {
			msg = midi.NoteOff(0, ev.key)
		} else {
			msg = midi.NoteOn(0, ev.key, 100)
		}
		track = append(track, smf.Event{Delta: delta, Message: smf.Message(msg)})
	}
	track.Close(0)
	out.Tracks = append(out.Tracks, track)
	return &out
}
