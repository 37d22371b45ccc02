package model

import (
	"encoding/json"
	"fmt"
)

// TabCoord is one fretboard position. String 0 is the high e string.
// On the wire it is the pair [string, fret].
type TabCoord struct {
	Str  int
	Fret int
}

func (t TabCoord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{t.Str, t.Fret})
}

func (t *TabCoord) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("tab coord must be a [string, fret] pair: %w", err)
	}
	t.Str = pair[0]
	t.Fret = pair[1]
	return nil
}

// TabRef is a per-lane tuning matrix: TabRef[string][fret] is the MIDI pitch
// sounded at that position. A nil matrix, a missing row, or a cell < 1 all
// fall back to the standard-tuning formula.
type TabRef [][]int

// CutSegment tags one contiguous frame range with a reference fretboard
// position. Ranges are half-open. On the wire it is
// [[rangeStart, rangeEnd], [string, fret]].
type CutSegment struct {
	Start int
	End   int
	Tab   TabCoord
}

func (c CutSegment) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{[2]int{c.Start, c.End}, c.Tab})
}

func (c *CutSegment) UnmarshalJSON(data []byte) error {
	var parts [2]json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("cut segment must be a [range, tab] pair: %w", err)
	}
	var rng [2]int
	if err := json.Unmarshal(parts[0], &rng); err != nil {
		return fmt.Errorf("cut segment range: %w", err)
	}
	if err := json.Unmarshal(parts[1], &c.Tab); err != nil {
		return fmt.Errorf("cut segment tab: %w", err)
	}
	c.Start = rng[0]
	c.End = rng[1]
	return nil
}

// Stamp is the flat interchange record shared with the upstream transcription
// pipeline: [startFrame, [string, fret], length].
type Stamp struct {
	Start  int
	Tab    TabCoord
	Length int
}

func (s Stamp) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]interface{}{s.Start, s.Tab, s.Length})
}

func (s *Stamp) UnmarshalJSON(data []byte) error {
	var parts [3]json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("stamp must be a [start, tab, length] triple: %w", err)
	}
	if err := json.Unmarshal(parts[0], &s.Start); err != nil {
		return fmt.Errorf("stamp start: %w", err)
	}
	if err := json.Unmarshal(parts[1], &s.Tab); err != nil {
		return fmt.Errorf("stamp tab: %w", err)
	}
	if err := json.Unmarshal(parts[2], &s.Length); err != nil {
		return fmt.Errorf("stamp length: %w", err)
	}
	return nil
}
