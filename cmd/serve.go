package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/note2tabs/note2tabsWeb-sub001/canvas"
	"github.com/note2tabs/note2tabsWeb-sub001/constants"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
	"github.com/note2tabs/note2tabsWeb-sub001/store"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the editor API",
	Long:  `Serves the editor API over the in-memory guest canvas store`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// One logical writer per canvas is the engine contract; the host enforces it
// bluntly with a single mutation lock.
var (
	mu        sync.Mutex
	canvases  store.Store
	histories map[string]*store.History
	drafts    map[string]func(f func())
)

// ResetState rebuilds the guest store; tests call it between cases.
func ResetState() {
	canvases = store.NewLRUStore(constants.GuestStoreCap)
	histories = make(map[string]*store.History)
	drafts = make(map[string]func(f func()))
}

func serve() {
	ResetState()
	handler := cors.Default().Handler(NewRouter())
	addr := constants.GetServeAddr()
	log.Printf("Listening on %v\n", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/canvases", HandleCreateCanvas).Methods("POST")
	router.HandleFunc("/canvas/{id}", handleGetCanvas).Methods("GET")
	router.HandleFunc("/canvas/{id}/draft", handleDraft).Methods("PUT")
	router.HandleFunc("/canvas/{id}/commit", handleCommit).Methods("POST")
	router.HandleFunc("/canvas/{id}/undo", handleUndo).Methods("POST")
	router.HandleFunc("/canvas/{id}/redo", handleRedo).Methods("POST")
	router.HandleFunc("/canvas/{id}/rename", handleRenameCanvas).Methods("POST")
	router.HandleFunc("/canvas/{id}/secondsPerBar", handleSecondsPerBar).Methods("POST")
	router.HandleFunc("/canvas/{id}/lanes", handleAddLane).Methods("POST")
	router.HandleFunc("/canvas/{id}/lane/{laneId}", handleRemoveLane).Methods("DELETE")
	router.HandleFunc("/canvas/{id}/lane/{laneId}/reorder", handleReorderLane).Methods("POST")
	router.HandleFunc("/canvas/{id}/lane/{laneId}/rename", handleRenameLane).Methods("POST")

	registerLaneRoutes(router)
	return router
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, model.ErrInvalidOperation):
		code = http.StatusConflict
	case errors.Is(err, model.ErrInvalidSelection), errors.Is(err, model.ErrInvalidRange):
		code = http.StatusBadRequest
	}
	writeJSON(w, code, model.ErrorResponse{Error: err.Error()})
}

// decode tolerates an empty body so bodiless posts fall through to zero
// values.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && err != io.EOF {
		return fmt.Errorf("could not decode request body: %w", model.ErrInvalidSelection)
	}
	return nil
}

func pushHistory(c model.Canvas) {
	h, ok := histories[c.Id]
	if !ok {
		h = store.NewHistory(constants.HistoryCap)
		histories[c.Id] = h
	}
	h.Push(c)
}

// withCanvas runs one mutation against a stored canvas and responds with the
// whole updated value, the only response shape the contract allows.
func withCanvas(w http.ResponseWriter, r *http.Request, fn func(c *model.Canvas) error) {
	mu.Lock()
	defer mu.Unlock()
	id := mux.Vars(r)["id"]
	c, ok := canvases.Get(id)
	if !ok {
		writeError(w, fmt.Errorf("canvas %v: %w", id, model.ErrNotFound))
		return
	}
	if err := fn(&c); err != nil {
		writeError(w, err)
		return
	}
	canvases.Put(c.Id, c)
	pushHistory(c)
	writeJSON(w, http.StatusOK, c)
}

func HandleCreateCanvas(w http.ResponseWriter, r *http.Request) {
	mu.Lock()
	defer mu.Unlock()
	var body model.CreateCanvasBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Name == "" {
		body.Name = "Untitled"
	}
	c := canvas.New(body.Name)
	canvases.Put(c.Id, c)
	pushHistory(c)
	writeJSON(w, http.StatusOK, c)
}

func handleGetCanvas(w http.ResponseWriter, r *http.Request) {
	mu.Lock()
	defer mu.Unlock()
	id := mux.Vars(r)["id"]
	c, ok := canvases.Get(id)
	if !ok {
		writeError(w, fmt.Errorf("canvas %v: %w", id, model.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleDraft is the best-effort draft channel: the snapshot is stored
// silently, no version bump. History pushes are debounced so a burst of
// drag updates collapses into one undo entry.
func handleDraft(w http.ResponseWriter, r *http.Request) {
	mu.Lock()
	defer mu.Unlock()
	id := mux.Vars(r)["id"]
	if _, ok := canvases.Get(id); !ok {
		writeError(w, fmt.Errorf("canvas %v: %w", id, model.ErrNotFound))
		return
	}
	var c model.Canvas
	if err := decode(r, &c); err != nil {
		writeError(w, err)
		return
	}
	c.Id = id
	canvases.Put(id, c)

	d, ok := drafts[id]
	if !ok {
		d = debounce.New(500 * time.Millisecond)
		drafts[id] = d
	}
	snapshot := c.Copy()
	d(func() {
		mu.Lock()
		defer mu.Unlock()
		pushHistory(snapshot)
	})
	writeJSON(w, http.StatusOK, c)
}

func handleCommit(w http.ResponseWriter, r *http.Request) {
	withCanvas(w, r, func(c *model.Canvas) error {
		canvas.Commit(c)
		return nil
	})
}

func handleUndo(w http.ResponseWriter, r *http.Request) {
	mu.Lock()
	defer mu.Unlock()
	id := mux.Vars(r)["id"]
	h, ok := histories[id]
	if !ok {
		writeError(w, fmt.Errorf("canvas %v: %w", id, model.ErrNotFound))
		return
	}
	c, ok := h.Undo()
	if !ok {
		writeError(w, fmt.Errorf("nothing to undo: %w", model.ErrInvalidOperation))
		return
	}
	canvases.Put(id, c)
	writeJSON(w, http.StatusOK, c)
}

func handleRedo(w http.ResponseWriter, r *http.Request) {
	mu.Lock()
	defer mu.Unlock()
	id := mux.Vars(r)["id"]
	h, ok := histories[id]
	if !ok {
		writeError(w, fmt.Errorf("canvas %v: %w", id, model.ErrNotFound))
		return
	}
	c, ok := h.Redo()
	if !ok {
		writeError(w, fmt.Errorf("nothing to redo: %w", model.ErrInvalidOperation))
		return
	}
	canvases.Put(id, c)
	writeJSON(w, http.StatusOK, c)
}

func handleRenameCanvas(w http.ResponseWriter, r *http.Request) {
	var body model.RenameBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withCanvas(w, r, func(c *model.Canvas) error {
		canvas.Rename(c, body.Name)
		return nil
	})
}

func handleSecondsPerBar(w http.ResponseWriter, r *http.Request) {
	var body model.SecondsPerBarBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withCanvas(w, r, func(c *model.Canvas) error {
		canvas.SetSecondsPerBar(c, body.SecondsPerBar)
		return nil
	})
}

func handleAddLane(w http.ResponseWriter, r *http.Request) {
	var body model.CreateCanvasBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	withCanvas(w, r, func(c *model.Canvas) error {
		canvas.AddLane(c, body.Name)
		return nil
	})
}

func handleRemoveLane(w http.ResponseWriter, r *http.Request) {
	laneId := mux.Vars(r)["laneId"]
	withCanvas(w, r, func(c *model.Canvas) error {
		return canvas.RemoveLane(c, laneId)
	})
}

func handleReorderLane(w http.ResponseWriter, r *http.Request) {
	var body model.ReorderLaneBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	laneId := mux.Vars(r)["laneId"]
	withCanvas(w, r, func(c *model.Canvas) error {
		return canvas.ReorderLane(c, laneId, body.To)
	})
}

func handleRenameLane(w http.ResponseWriter, r *http.Request) {
	var body model.RenameBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	laneId := mux.Vars(r)["laneId"]
	withCanvas(w, r, func(c *model.Canvas) error {
		return canvas.RenameLane(c, laneId, body.Name)
	})
}
