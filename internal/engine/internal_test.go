package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFloorMod(t *testing.T) {
	assert.Equal(t, 0, floorMod(0, 12))
	assert.Equal(t, 11, floorMod(-1, 12))
	assert.Equal(t, 0, floorMod(-60, 60))
	assert.Equal(t, 7, floorMod(-3, 10))
	assert.Equal(t, 5, floorMod(17, 12))
}

func TestDaysSinceReference(t *testing.T) {
	assert.Equal(t, 0, daysSinceReference(referenceDay))
	assert.Equal(t, -1, daysSinceReference(time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 36524, daysSinceReference(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)))
}
