package codec

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/note2tabs/note2tabsWeb-sub001/lane"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
)

func TestExportFlattensChords(t *testing.T) {
	assert := assert.New(t)
	l := lane.New("Track 1", 2)
	a := lane.AddNote(&l, model.TabCoord{Str: 0, Fret: 3}, 200, 40, false)
	b := lane.AddNote(&l, model.TabCoord{Str: 1, Fret: 2}, 200, 40, false)
	lane.AddNote(&l, model.TabCoord{Str: 2, Fret: 0}, 0, 40, false)
	_, err := lane.MakeChord(&l, []int{a.Id, b.Id})
	assert.NoError(err)

	stamps := Export(&l)
	assert.Equal([]model.Stamp{
		{Start: 0, Tab: model.TabCoord{Str: 2, Fret: 0}, Length: 40},
		{Start: 200, Tab: model.TabCoord{Str: 0, Fret: 3}, Length: 40},
		{Start: 200, Tab: model.TabCoord{Str: 1, Fret: 2}, Length: 40},
	}, stamps)
}

func TestImportReplaces(t *testing.T) {
	assert := assert.New(t)
	l := lane.New("Track 1", 2)
	lane.AddNote(&l, model.TabCoord{}, 0, 40, false)

	Import(&l, []model.Stamp{
		{Start: 100, Tab: model.TabCoord{Str: 0, Fret: 3}, Length: 40},
		{Start: 700, Tab: model.TabCoord{Str: 1, Fret: 2}, Length: 40},
	}, false)

	assert.Len(l.Notes, 2)
	assert.Empty(l.Chords)
	assert.Equal(100, l.Notes[0].StartTime)
	assert.Equal(67, l.Notes[0].MidiNum)
	assert.Equal(960, l.TotalFrames)
	assert.Equal([]model.CutSegment{{Start: 0, End: 960}}, l.CutSegments)
}

func TestImportAppendsPastBarBoundary(t *testing.T) {
	assert := assert.New(t)
	l := lane.New("Track 1", 2)
	existing := lane.AddNote(&l, model.TabCoord{}, 0, 40, false)

	Import(&l, []model.Stamp{
		{Start: 20, Tab: model.TabCoord{Str: 0, Fret: 1}, Length: 40},
	}, true)

	assert.Len(l.Notes, 2)
	assert.Equal(existing.Id, l.Notes[0].Id)
	assert.Equal(500, l.Notes[1].StartTime)
	assert.Greater(l.Notes[1].Id, existing.Id)
	assert.Equal(960, l.TotalFrames)
}

func TestExportImportRoundTrip(t *testing.T) {
	assert := assert.New(t)
	l := lane.New("Track 1", 2)
	a := lane.AddNote(&l, model.TabCoord{Str: 0, Fret: 3}, 0, 40, false)
	b := lane.AddNote(&l, model.TabCoord{Str: 1, Fret: 2}, 0, 40, false)
	lane.AddNote(&l, model.TabCoord{Str: 4, Fret: 7}, 600, 120, false)
	_, err := lane.MakeChord(&l, []int{a.Id, b.Id})
	assert.NoError(err)

	exported := Export(&l)
	Import(&l, exported, false)
	again := Export(&l)

	sortStamps := func(s []model.Stamp) {
		sort.Slice(s, func(i, j int) bool {
			if s[i].Start != s[j].Start {
				return s[i].Start < s[j].Start
			}
			return s[i].Tab.Str < s[j].Tab.Str
		})
	}
	sortStamps(exported)
	sortStamps(again)
	assert.Equal(exported, again)
}

func TestStampWireShape(t *testing.T) {
	assert := assert.New(t)
	data, err := json.Marshal(model.Stamp{Start: 100, Tab: model.TabCoord{Str: 0, Fret: 3}, Length: 40})
	assert.NoError(err)
	assert.JSONEq(`[100,[0,3],40]`, string(data))

	var s model.Stamp
	assert.NoError(json.Unmarshal([]byte(`[100,[0,3],40]`), &s))
	assert.Equal(model.Stamp{Start: 100, Tab: model.TabCoord{Str: 0, Fret: 3}, Length: 40}, s)
}

func TestCutSegmentWireShape(t *testing.T) {
	assert := assert.New(t)
	seg := model.CutSegment{Start: 0, End: 480, Tab: model.TabCoord{Str: 1, Fret: 2}}
	data, err := json.Marshal(seg)
	assert.NoError(err)
	assert.JSONEq(`[[0,480],[1,2]]`, string(data))

	var back model.CutSegment
	assert.NoError(json.Unmarshal(data, &back))
	assert.Equal(seg, back)
}

func TestSMFRoundTrip(t *testing.T) {
	assert := assert.New(t)
	l := lane.New("Track 1", 2)
	lane.AddNote(&l, model.TabCoord{Str: 0, Fret: 3}, 0, 240, false)
	lane.AddNote(&l, model.TabCoord{Str: 1, Fret: 0}, 480, 480, false)

	// at the default tempo the frame<->tick mapping is 1:1 for fps 240
	stamps := FromSMF(ToSMF(&l), l.Fps)
	assert.Equal([]model.Stamp{
		{Start: 0, Tab: model.TabCoord{Str: 0, Fret: 3}, Length: 240},
		{Start: 480, Tab: model.TabCoord{Str: 1, Fret: 0}, Length: 480},
	}, stamps)
}
