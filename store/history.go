package store

import (
	"github.com/note2tabs/note2tabsWeb-sub001/canvas"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
)

// History is a bounded undo/redo stack of whole-canvas snapshots. Pushing a
// state structurally equal to the newest snapshot is a no-op, so pure
// bookkeeping churn never burns an undo step.
type History struct {
	cap    int
	past   []model.Canvas
	future []model.Canvas
}

func NewHistory(cap int) *History {
	if cap < 1 {
		cap = 1
	}
	return &History{cap: cap}
}

func (h *History) Push(c model.Canvas) {
	if n := len(h.past); n > 0 && canvas.Equal(h.past[n-1], c) {
		return
	}
	h.past = append(h.past, c.Copy())
	if len(h.past) > h.cap {
		h.past = h.past[len(h.past)-h.cap:]
	}
	h.future = nil
}

// Undo steps back one snapshot, parking the newest on the redo stack.
func (h *History) Undo() (model.Canvas, bool) {
	if len(h.past) < 2 {
		return model.Canvas{}, false
	}
	n := len(h.past)
	h.future = append(h.future, h.past[n-1])
	h.past = h.past[:n-1]
	return h.past[n-2].Copy(), true
}

func (h *History) Redo() (model.Canvas, bool) {
	if len(h.future) == 0 {
		return model.Canvas{}, false
	}
	n := len(h.future)
	c := h.future[n-1]
	h.future = h.future[:n-1]
	h.past = append(h.past, c)
	return c.Copy(), true
}

func (h *History) Len() int {
	return len(h.past)
}
