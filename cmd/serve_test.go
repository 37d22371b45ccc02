package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/note2tabs/note2tabsWeb-sub001/model"
)

func doJSON(t *testing.T, router *mux.Router, method string, path string, body any, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	resp := w.Result()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatal(err)
		}
	}
	return resp
}

func newTestCanvas(t *testing.T, router *mux.Router) model.Canvas {
	t.Helper()
	var c model.Canvas
	resp := doJSON(t, router, http.MethodPost, "/canvases", model.CreateCanvasBody{Name: "song"}, &c)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	return c
}

func lanePath(c model.Canvas, rest string) string {
	return fmt.Sprintf("/canvas/%v/lane/%v%v", c.Id, c.Lanes[0].Id, rest)
}

func TestCreateAndFetchCanvas(t *testing.T) {
	assert := assert.New(t)
	ResetState()
	router := NewRouter()
	c := newTestCanvas(t, router)
	assert.Equal("song", c.Name)
	assert.Len(c.Lanes, 1)

	var got model.Canvas
	resp := doJSON(t, router, http.MethodGet, "/canvas/"+c.Id, nil, &got)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Equal(c.Id, got.Id)

	resp = doJSON(t, router, http.MethodGet, "/canvas/unknown", nil, nil)
	assert.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestNoteLifecycleOverHTTP(t *testing.T) {
	assert := assert.New(t)
	ResetState()
	router := NewRouter()
	c := newTestCanvas(t, router)

	var l model.Lane
	resp := doJSON(t, router, http.MethodPost, lanePath(c, "/notes"), model.AddNoteBody{
		Tab:       model.TabCoord{Str: 0, Fret: 3},
		StartTime: 100,
		Length:    40,
	}, &l)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Len(l.Notes, 1)
	assert.Equal(67, l.Notes[0].MidiNum)
	assert.Equal(480, l.TotalFrames)

	resp = doJSON(t, router, http.MethodDelete, lanePath(c, "/note/1"), nil, &l)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Empty(l.Notes)

	resp = doJSON(t, router, http.MethodDelete, lanePath(c, "/note/1"), nil, nil)
	assert.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestChordFlowOverHTTP(t *testing.T) {
	assert := assert.New(t)
	ResetState()
	router := NewRouter()
	c := newTestCanvas(t, router)

	var l model.Lane
	doJSON(t, router, http.MethodPost, lanePath(c, "/notes"), model.AddNoteBody{
		Tab: model.TabCoord{Str: 0, Fret: 3}, Length: 40,
	}, &l)
	doJSON(t, router, http.MethodPost, lanePath(c, "/notes"), model.AddNoteBody{
		Tab: model.TabCoord{Str: 1, Fret: 2}, Length: 40,
	}, &l)

	resp := doJSON(t, router, http.MethodPost, lanePath(c, "/chords"),
		model.NoteIdsBody{NoteIds: []int{1, 2}}, &l)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Empty(l.Notes)
	assert.Len(l.Chords, 1)

	resp = doJSON(t, router, http.MethodPost, lanePath(c, "/chords"),
		model.NoteIdsBody{NoteIds: []int{99}}, nil)
	assert.Equal(http.StatusBadRequest, resp.StatusCode)

	var alts model.AlternativesResponse
	chordPath := fmt.Sprintf("/chord/%v/alternatives", l.Chords[0].Id)
	resp = doJSON(t, router, http.MethodGet, lanePath(c, chordPath), nil, &alts)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Len(alts.Alternatives, 1)
}

func TestRemoveLastLaneOverHTTP(t *testing.T) {
	assert := assert.New(t)
	ResetState()
	router := NewRouter()
	c := newTestCanvas(t, router)

	resp := doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/canvas/%v/lane/%v", c.Id, c.Lanes[0].Id), nil, nil)
	assert.Equal(http.StatusConflict, resp.StatusCode)
}

func TestCommitBumpsVersion(t *testing.T) {
	assert := assert.New(t)
	ResetState()
	router := NewRouter()
	c := newTestCanvas(t, router)

	var after model.Canvas
	resp := doJSON(t, router, http.MethodPost, "/canvas/"+c.Id+"/commit", nil, &after)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Equal(c.Version+1, after.Version)
}

func TestUndoRestoresPriorState(t *testing.T) {
	assert := assert.New(t)
	ResetState()
	router := NewRouter()
	c := newTestCanvas(t, router)

	var l model.Lane
	doJSON(t, router, http.MethodPost, lanePath(c, "/notes"), model.AddNoteBody{Length: 40}, &l)
	assert.Len(l.Notes, 1)

	var back model.Canvas
	resp := doJSON(t, router, http.MethodPost, "/canvas/"+c.Id+"/undo", nil, &back)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Empty(back.Lanes[0].Notes)

	var fwd model.Canvas
	resp = doJSON(t, router, http.MethodPost, "/canvas/"+c.Id+"/redo", nil, &fwd)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Len(fwd.Lanes[0].Notes, 1)
}

func TestStampsAndTabTextOverHTTP(t *testing.T) {
	assert := assert.New(t)
	ResetState()
	router := NewRouter()
	c := newTestCanvas(t, router)

	var l model.Lane
	resp := doJSON(t, router, http.MethodPost, lanePath(c, "/stamps"), model.ImportStampsBody{
		Stamps: []model.Stamp{{Start: 0, Tab: model.TabCoord{Str: 0, Fret: 3}, Length: 40}},
	}, &l)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Len(l.Notes, 1)

	var stamps []model.Stamp
	resp = doJSON(t, router, http.MethodGet, lanePath(c, "/stamps"), nil, &stamps)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Len(stamps, 1)

	var text model.TabTextResponse
	resp = doJSON(t, router, http.MethodGet, lanePath(c, "/tabtext"), nil, &text)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Contains(text.Text, "e|")
}
