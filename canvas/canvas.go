package canvas

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/note2tabs/note2tabsWeb-sub001/constants"
	"github.com/note2tabs/note2tabsWeb-sub001/lane"
	"github.com/note2tabs/note2tabsWeb-sub001/model"
	"github.com/note2tabs/note2tabsWeb-sub001/util"
)

// New builds a canvas with a single empty lane.
func New(name string) model.Canvas {
	c := model.Canvas{
		Id:            uuid.New().String(),
		Name:          name,
		Version:       1,
		UpdatedAt:     time.Now().UTC(),
		SecondsPerBar: constants.DefaultSecondsPerBar,
	}
	c.Lanes = []model.Lane{lane.New("Track 1", c.SecondsPerBar)}
	return c
}

func FindLane(c *model.Canvas, laneId string) (*model.Lane, error) {
	for i := range c.Lanes {
		if c.Lanes[i].Id == laneId {
			return &c.Lanes[i], nil
		}
	}
	return nil, fmt.Errorf("lane %v: %w", laneId, model.ErrNotFound)
}

// AddLane appends a new empty lane sharing the canvas tempo.
func AddLane(c *model.Canvas, name string) *model.Lane {
	if name == "" {
		name = fmt.Sprintf("Track %v", len(c.Lanes)+1)
	}
	c.Lanes = append(c.Lanes, lane.New(name, c.SecondsPerBar))
	touch(c)
	return &c.Lanes[len(c.Lanes)-1]
}

// RemoveLane deletes a lane. The last lane may never be removed.
func RemoveLane(c *model.Canvas, laneId string) error {
	if len(c.Lanes) <= 1 {
		return fmt.Errorf("cannot remove the last lane: %w", model.ErrInvalidOperation)
	}
	for i := range c.Lanes {
		if c.Lanes[i].Id == laneId {
			c.Lanes = append(c.Lanes[:i], c.Lanes[i+1:]...)
			touch(c)
			return nil
		}
	}
	return fmt.Errorf("lane %v: %w", laneId, model.ErrNotFound)
}

// ReorderLane moves a lane to the given position in the canvas ordering.
func ReorderLane(c *model.Canvas, laneId string, to int) error {
	from := -1
	for i := range c.Lanes {
		if c.Lanes[i].Id == laneId {
			from = i
			break
		}
	}
	if from == -1 {
		return fmt.Errorf("lane %v: %w", laneId, model.ErrNotFound)
	}
	to = util.Clamp(to, 0, len(c.Lanes)-1)
	if from == to {
		return nil
	}
	moved := c.Lanes[from]
	rest := append(c.Lanes[:from], c.Lanes[from+1:]...)
	out := append([]model.Lane{}, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	c.Lanes = out
	touch(c)
	return nil
}

func Rename(c *model.Canvas, name string) {
	c.Name = name
	touch(c)
}

func RenameLane(c *model.Canvas, laneId string, name string) error {
	l, err := FindLane(c, laneId)
	if err != nil {
		return err
	}
	l.Name = name
	touch(c)
	return nil
}

// SetSecondsPerBar changes the shared tempo and propagates it to every lane.
func SetSecondsPerBar(c *model.Canvas, v float64) {
	if v <= 0 {
		v = constants.DefaultSecondsPerBar
	}
	c.SecondsPerBar = v
	for i := range c.Lanes {
		lane.SetSecondsPerBar(&c.Lanes[i], v)
	}
	touch(c)
}

// Commit is the authoritative save point: the version counter moves here and
// nowhere else.
func Commit(c *model.Canvas) {
	c.Version++
	touch(c)
}

// Equal compares two canvases structurally, ignoring version and timestamp
// bookkeeping. The history layer uses it to skip no-op transitions.
func Equal(a model.Canvas, b model.Canvas) bool {
	return reflect.DeepEqual(normalize(a), normalize(b))
}

func normalize(c model.Canvas) model.Canvas {
	out := c.Copy()
	out.Version = 0
	out.UpdatedAt = time.Time{}
	for i := range out.Lanes {
		out.Lanes[i].UpdatedAt = time.Time{}
	}
	return out
}

func touch(c *model.Canvas) {
	c.UpdatedAt = time.Now().UTC()
}
