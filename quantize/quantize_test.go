package quantize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapStartDisabledRoundsAndFloors(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(100, SnapStart(4, 100.2, false))
	assert.Equal(101, SnapStart(4, 100.5, false))
	assert.Equal(0, SnapStart(4, -50, false))
}

func TestSnapStartSnapsWithinBar(t *testing.T) {
	assert := assert.New(t)
	// 4/4 grid: 120-frame units
	assert.Equal(0, SnapStart(4, 100, true))
	assert.Equal(120, SnapStart(4, 239, true))
	assert.Equal(480, SnapStart(4, 500, true))
	assert.Equal(600, SnapStart(4, 719, true))
}

func TestSnapStartIdempotent(t *testing.T) {
	assert := assert.New(t)
	for _, ts := range []int{1, 3, 4, 7, 16, 64} {
		for v := 0; v < 2000; v += 13 {
			once := SnapStart(ts, float64(v), true)
			assert.Equal(once, SnapStart(ts, float64(once), true))
		}
	}
}

func TestSnapLengthClampsAndSnaps(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(1, SnapLength(4, 0, false))
	assert.Equal(1, SnapLength(4, -10, false))
	assert.Equal(1920, SnapLength(4, 99999, false))
	// never snapped below one unit
	assert.Equal(120, SnapLength(4, 5, true))
	assert.Equal(240, SnapLength(4, 250, true))
}

func TestSnapLengthIdempotent(t *testing.T) {
	assert := assert.New(t)
	for _, ts := range []int{1, 3, 4, 7, 16, 64} {
		for v := 1; v < 2000; v += 17 {
			once := SnapLength(ts, float64(v), true)
			assert.Equal(once, SnapLength(ts, float64(once), true))
		}
	}
}

func TestUnitFramesClampsTimeSignature(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(480, UnitFrames(0))
	assert.Equal(480, UnitFrames(1))
	assert.Equal(120, UnitFrames(4))
	assert.Equal(7, UnitFrames(100))
}
