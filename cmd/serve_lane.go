package cmd

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/note2tabs/note2tabsWeb-sub001/bar"
	"github.com/note2tabs/note2tabsWeb-sub001/canvas"
	"github.com/note2tabs/note2tabsWeb-sub001/codec"
	"github.com/note2tabs/note2tabsWeb-sub001/cutseg"
	"github.com/note2tabs/note2tabsWeb-sub001/fretboard"
	"github.com/note2tabs/note2tabsWeb-sub001/lane"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
	"github.com/note2tabs/note2tabsWeb-sub001/render"
)

func registerLaneRoutes(router *mux.Router) {
	sub := router.PathPrefix("/canvas/{id}/lane/{laneId}").Subrouter()

	sub.HandleFunc("/timeSignature", handleTimeSignature).Methods("POST")
	sub.HandleFunc("/secondsPerBar", handleLaneSecondsPerBar).Methods("POST")

	sub.HandleFunc("/notes", handleAddNote).Methods("POST")
	sub.HandleFunc("/notes/optimals", handleAssignOptimals).Methods("POST")
	sub.HandleFunc("/note/{noteId}", handleDeleteNote).Methods("DELETE")
	sub.HandleFunc("/note/{noteId}/tab", handleAssignTab).Methods("POST")
	sub.HandleFunc("/note/{noteId}/startTime", handleNoteStart).Methods("POST")
	sub.HandleFunc("/note/{noteId}/length", handleNoteLength).Methods("POST")
	sub.HandleFunc("/note/{noteId}/optimals", handleGetOptimals).Methods("GET")

	sub.HandleFunc("/chords", handleMakeChord).Methods("POST")
	sub.HandleFunc("/chord/{chordId}", handleDeleteChord).Methods("DELETE")
	sub.HandleFunc("/chord/{chordId}/disband", handleDisbandChord).Methods("POST")
	sub.HandleFunc("/chord/{chordId}/slice", handleSliceChord).Methods("POST")
	sub.HandleFunc("/chord/{chordId}/tabs", handleSetChordTabs).Methods("POST")
	sub.HandleFunc("/chord/{chordId}/octave", handleChordOctave).Methods("POST")
	sub.HandleFunc("/chord/{chordId}/alternatives", handleChordAlternatives).Methods("GET")

	sub.HandleFunc("/bars", handleAddBars).Methods("POST")
	sub.HandleFunc("/bars/reorder", handleReorderBar).Methods("POST")
	sub.HandleFunc("/bar/{index}", handleRemoveBar).Methods("DELETE")

	sub.HandleFunc("/cuts", handleApplyCuts).Methods("PUT")
	sub.HandleFunc("/cuts/generate", handleGenerateCuts).Methods("POST")
	sub.HandleFunc("/cuts/shiftBoundary", handleShiftCutBoundary).Methods("POST")
	sub.HandleFunc("/cuts/insert", handleInsertCut).Methods("POST")
	sub.HandleFunc("/cuts/deleteBoundary", handleDeleteCutBoundary).Methods("POST")

	sub.HandleFunc("/stamps", handleExportStamps).Methods("GET")
	sub.HandleFunc("/stamps", handleImportStamps).Methods("POST")
	sub.HandleFunc("/tabtext", handleTabText).Methods("GET")
}

// withLane runs one mutation against a lane and responds with the whole
// updated lane.
func withLane(w http.ResponseWriter, r *http.Request, fn func(l *model.Lane) error) {
	mu.Lock()
	defer mu.Unlock()
	vars := mux.Vars(r)
	c, ok := canvases.Get(vars["id"])
	if !ok {
		writeError(w, fmt.Errorf("canvas %v: %w", vars["id"], model.ErrNotFound))
		return
	}
	l, err := canvas.FindLane(&c, vars["laneId"])
	if err != nil {
		writeError(w, err)
		return
	}
	if err := fn(l); err != nil {
		writeError(w, err)
		return
	}
	resp := l.Copy()
	canvases.Put(c.Id, c)
	pushHistory(c)
	writeJSON(w, http.StatusOK, resp)
}

// readLane is the read-only variant: no store write, no history push.
func readLane(w http.ResponseWriter, r *http.Request, fn func(l *model.Lane) (any, error)) {
	mu.Lock()
	defer mu.Unlock()
	vars := mux.Vars(r)
	c, ok := canvases.Get(vars["id"])
	if !ok {
		writeError(w, fmt.Errorf("canvas %v: %w", vars["id"], model.ErrNotFound))
		return
	}
	l, err := canvas.FindLane(&c, vars["laneId"])
	if err != nil {
		writeError(w, err)
		return
	}
	v, err := fn(l)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, fmt.Errorf("bad %v in path: %w", name, model.ErrInvalidRange)
	}
	return v, nil
}

func handleTimeSignature(w http.ResponseWriter, r *http.Request) {
	var body model.TimeSignatureBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		lane.SetTimeSignature(l, body.TimeSignature)
		return nil
	})
}

func handleLaneSecondsPerBar(w http.ResponseWriter, r *http.Request) {
	var body model.SecondsPerBarBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		lane.SetSecondsPerBar(l, body.SecondsPerBar)
		return nil
	})
}

func handleAddNote(w http.ResponseWriter, r *http.Request) {
	var body model.AddNoteBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		lane.AddNote(l, body.Tab, body.StartTime, body.Length, body.Snap)
		return nil
	})
}

func handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "noteId")
	if err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		return lane.DeleteNote(l, id)
	})
}

func handleAssignTab(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "noteId")
	if err != nil {
		writeError(w, err)
		return
	}
	var body model.TabBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		return lane.AssignTab(l, id, body.Tab)
	})
}

func handleNoteStart(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "noteId")
	if err != nil {
		writeError(w, err)
		return
	}
	var body model.ValueBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		return lane.SetNoteStart(l, id, body.Value, body.Snap)
	})
}

func handleNoteLength(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "noteId")
	if err != nil {
		writeError(w, err)
		return
	}
	var body model.ValueBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		return lane.SetNoteLength(l, id, body.Value, body.Snap)
	})
}

func handleGetOptimals(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "noteId")
	if err != nil {
		writeError(w, err)
		return
	}
	readLane(w, r, func(l *model.Lane) (any, error) {
		n, err := lane.FindNote(l, id)
		if err != nil {
			return nil, err
		}
		possible, blocked := fretboard.OptimalsFor(l, *n)
		return model.OptimalsResponse{PossibleTabs: possible, BlockedTabs: blocked}, nil
	})
}

func handleAssignOptimals(w http.ResponseWriter, r *http.Request) {
	var body model.NoteIdsBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		return lane.AssignOptimals(l, body.NoteIds)
	})
}

func handleMakeChord(w http.ResponseWriter, r *http.Request) {
	var body model.NoteIdsBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		_, err := lane.MakeChord(l, body.NoteIds)
		return err
	})
}

func handleDeleteChord(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "chordId")
	if err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		return lane.DeleteChord(l, id)
	})
}

func handleDisbandChord(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "chordId")
	if err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		return lane.DisbandChord(l, id)
	})
}

func handleSliceChord(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "chordId")
	if err != nil {
		writeError(w, err)
		return
	}
	var body model.SliceChordBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		return lane.SliceChord(l, id, body.Time)
	})
}

func handleSetChordTabs(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "chordId")
	if err != nil {
		writeError(w, err)
		return
	}
	var body model.TabsBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		return lane.SetChordTabs(l, id, body.Tabs)
	})
}

func handleChordOctave(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "chordId")
	if err != nil {
		writeError(w, err)
		return
	}
	var body model.OctaveBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		return lane.ShiftChordOctave(l, id, body.Direction)
	})
}

func handleChordAlternatives(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "chordId")
	if err != nil {
		writeError(w, err)
		return
	}
	readLane(w, r, func(l *model.Lane) (any, error) {
		alts, err := lane.ChordAlternatives(l, id)
		if err != nil {
			return nil, err
		}
		return model.AlternativesResponse{Alternatives: alts}, nil
	})
}

func handleAddBars(w http.ResponseWriter, r *http.Request) {
	var body model.AddBarsBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		bar.AddBars(l, body.Count)
		return nil
	})
}

func handleRemoveBar(w http.ResponseWriter, r *http.Request) {
	index, err := pathInt(r, "index")
	if err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		return bar.RemoveBar(l, index)
	})
}

func handleReorderBar(w http.ResponseWriter, r *http.Request) {
	var body model.ReorderBarBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		return bar.ReorderBar(l, body.From, body.To)
	})
}

func handleApplyCuts(w http.ResponseWriter, r *http.Request) {
	var body model.CutSegmentsBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		cutseg.ApplyManual(l, body.Segments)
		return nil
	})
}

func handleGenerateCuts(w http.ResponseWriter, r *http.Request) {
	withLane(w, r, func(l *model.Lane) error {
		cutseg.Generate(l)
		return nil
	})
}

func handleShiftCutBoundary(w http.ResponseWriter, r *http.Request) {
	var body model.CutShiftBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		cutseg.ShiftBoundary(l, body.Index, body.NewTime)
		return nil
	})
}

func handleInsertCut(w http.ResponseWriter, r *http.Request) {
	var body model.CutInsertBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		cutseg.InsertAt(l, body.Time, body.Tab)
		return nil
	})
}

func handleDeleteCutBoundary(w http.ResponseWriter, r *http.Request) {
	var body model.CutIndexBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		cutseg.DeleteBoundary(l, body.Index)
		return nil
	})
}

func handleExportStamps(w http.ResponseWriter, r *http.Request) {
	readLane(w, r, func(l *model.Lane) (any, error) {
		return codec.Export(l), nil
	})
}

func handleImportStamps(w http.ResponseWriter, r *http.Request) {
	var body model.ImportStampsBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withLane(w, r, func(l *model.Lane) error {
		codec.Import(l, body.Stamps, body.Append)
		return nil
	})
}

func handleTabText(w http.ResponseWriter, r *http.Request) {
	barsPerRow, _ := strconv.Atoi(r.URL.Query().Get("barsPerRow"))
	readLane(w, r, func(l *model.Lane) (any, error) {
		return model.TabTextResponse{Text: render.Render(l, barsPerRow)}, nil
	})
}
