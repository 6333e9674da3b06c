package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/stroke"
)

var wideViewport = ink.NewAabb(ink.Pt(-1000, -1000), ink.Pt(1000, 1000))

func TestTrashCollidingStrokes(t *testing.T) {
	s := newTestStore(t)
	hit := s.InsertStroke(hline(t, 10, 0, 100))
	miss := s.InsertStroke(hline(t, 200, 0, 100))

	flags := s.TrashCollidingStrokes(ink.NewAabb(ink.Pt(45, 5), ink.Pt(55, 15)), wideViewport)
	assert.True(t, flags.StoreModified)
	assert.True(t, s.IsTrashed(hit))
	assert.False(t, s.IsTrashed(miss))

	// already trashed strokes are not touched again
	flags = s.TrashCollidingStrokes(ink.NewAabb(ink.Pt(45, 5), ink.Pt(55, 15)), wideViewport)
	assert.True(t, flags.IsEmpty())
}

func TestTrashCollidingStrokesOutsideViewport(t *testing.T) {
	s := newTestStore(t)
	key := s.InsertStroke(hline(t, 10, 0, 100))

	viewport := ink.NewAabb(ink.Pt(500, 500), ink.Pt(900, 900))
	flags := s.TrashCollidingStrokes(ink.NewAabb(ink.Pt(45, 5), ink.Pt(55, 15)), viewport)
	assert.True(t, flags.IsEmpty())
	assert.False(t, s.IsTrashed(key))
}

func TestSplitCollidingStrokes(t *testing.T) {
	s := newTestStore(t)
	key := s.InsertStroke(hline(t, 10, 0, 100))

	added, flags := s.SplitCollidingStrokes(ink.NewAabb(ink.Pt(45, 0), ink.Pt(65, 20)), wideViewport)
	assert.True(t, flags.StoreModified)
	require.Len(t, added, 2)
	assert.True(t, s.IsTrashed(key))

	left, err := s.Stroke(added[0])
	require.NoError(t, err)
	right, err := s.Stroke(added[1])
	require.NoError(t, err)
	assert.Less(t, left.Bounds().Max.X, 45.0)
	assert.Greater(t, right.Bounds().Min.X, 65.0)
	assert.ElementsMatch(t, added, s.Keys())
}

func TestSplitTrashesShapes(t *testing.T) {
	s := newTestStore(t)
	shape, err := stroke.NewShapeStroke(stroke.NewRectangle(ink.Pt(0, 0), ink.Pt(100, 100)), stroke.Smooth{Width: 2})
	require.NoError(t, err)
	key := s.InsertStroke(shape)

	added, flags := s.SplitCollidingStrokes(ink.NewAabb(ink.Pt(-5, 40), ink.Pt(5, 60)), wideViewport)
	assert.Empty(t, added)
	assert.True(t, flags.StoreModified)
	assert.True(t, s.IsTrashed(key))
}

func TestCollidingIgnoresHitBoxesOutsideViewport(t *testing.T) {
	s := newTestStore(t)
	// the vertical leg at x=100 lies outside the viewport, the horizontal
	// leg crosses it
	key := s.InsertStroke(brush(t, ink.Pt(0, 0), ink.Pt(100, 0), ink.Pt(100, 100)))
	viewport := ink.NewAabb(ink.Pt(0, -50), ink.Pt(90, 200))

	flags := s.TrashCollidingStrokes(ink.NewAabb(ink.Pt(80, 40), ink.Pt(110, 60)), viewport)
	assert.True(t, flags.IsEmpty())
	assert.False(t, s.IsTrashed(key))

	added, flags := s.SplitCollidingStrokes(ink.NewAabb(ink.Pt(80, 40), ink.Pt(110, 60)), viewport)
	assert.Empty(t, added)
	assert.True(t, flags.IsEmpty())

	flags = s.TrashCollidingStrokes(ink.NewAabb(ink.Pt(40, -5), ink.Pt(110, 5)), viewport)
	assert.True(t, flags.StoreModified)
	assert.True(t, s.IsTrashed(key))
}
