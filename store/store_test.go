package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/stroke"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(WithWorkers(2))
	t.Cleanup(s.Close)
	return s
}

func brush(t *testing.T, points ...ink.Point) *stroke.BrushStroke {
	t.Helper()
	path := stroke.PenPath{}
	for _, p := range points {
		path.Elements = append(path.Elements, ink.NewElement(p, ink.PressureDefault))
	}
	b, err := stroke.NewBrushStrokeFromPath(path, stroke.Smooth{Width: 2, Color: ink.Black})
	require.NoError(t, err)
	return b
}

func hline(t *testing.T, y, x0, x1 float64) *stroke.BrushStroke {
	t.Helper()
	var points []ink.Point
	for x := x0; x <= x1; x += 10 {
		points = append(points, ink.Pt(x, y))
	}
	return brush(t, points...)
}

func TestInsertRemoveStroke(t *testing.T) {
	s := newTestStore(t)

	key := s.InsertStroke(hline(t, 10, 0, 50))
	assert.True(t, key.IsValid())
	assert.Equal(t, 1, s.Len())

	got, err := s.Stroke(key)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Bounds().Center().Y)

	_, err = s.RemoveStroke(key)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	_, err = s.Stroke(key)
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = s.RemoveStroke(key)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestKeysIntersectingBoundsZOrder(t *testing.T) {
	s := newTestStore(t)
	first := s.InsertStroke(hline(t, 10, 0, 100))
	second := s.InsertStroke(hline(t, 12, 0, 100))
	s.InsertStroke(hline(t, 500, 0, 100))

	keys := s.KeysIntersectingBounds(ink.NewAabb(ink.Pt(0, 0), ink.Pt(100, 50)))
	assert.Equal(t, []ink.StrokeKey{first, second}, keys)

	// topmost first
	assert.Equal(t, []ink.StrokeKey{second, first}, s.KeysAtPos(ink.Pt(50, 11)))
}

func TestKeysBetween(t *testing.T) {
	s := newTestStore(t)
	above := s.InsertStroke(hline(t, 50, 0, 40))
	near := s.InsertStroke(hline(t, 100, 0, 40))
	far := s.InsertStroke(hline(t, 300, 0, 40))
	wide := s.InsertStroke(hline(t, 120, 0, 400))

	tests := []struct {
		name            string
		yMax            float64
		xLimit          [2]float64
		vertical, horiz bool
		want            []ink.StrokeKey
	}{
		{"unlimited", 0, [2]float64{}, false, false, []ink.StrokeKey{near, far, wide}},
		{"vertical limit", 200, [2]float64{}, true, false, []ink.StrokeKey{near, wide}},
		{"horizontal limit", 0, [2]float64{-10, 100}, false, true, []ink.StrokeKey{near, far}},
		{"both", 200, [2]float64{-10, 100}, true, true, []ink.StrokeKey{near}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.KeysBetween(90, tt.yMax, tt.xLimit, tt.vertical, tt.horiz)
			assert.ElementsMatch(t, tt.want, got)
			assert.NotContains(t, got, above)
		})
	}
}

func TestBoundsAndHeightIgnoreTrash(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, 0.0, s.CalcHeight())
	_, ok := s.BoundsForAllStrokes()
	assert.False(t, ok)

	a := s.InsertStroke(hline(t, 100, 0, 50))
	b := s.InsertStroke(hline(t, 400, 0, 50))
	assert.Equal(t, 401.0, s.CalcHeight())

	flags := s.SetTrashed([]ink.StrokeKey{b}, true)
	assert.True(t, flags.StoreModified)
	assert.Equal(t, 101.0, s.CalcHeight())

	bounds, ok := s.BoundsForAllStrokes()
	require.True(t, ok)
	want, _ := s.BoundsForStrokes([]ink.StrokeKey{a})
	assert.Equal(t, want, bounds)

	_, ok = s.BoundsForStrokes([]ink.StrokeKey{b})
	assert.False(t, ok)
}

func TestTranslateStrokesUpdatesIndex(t *testing.T) {
	s := newTestStore(t)
	key := s.InsertStroke(hline(t, 10, 0, 50))

	flags := s.TranslateStrokes([]ink.StrokeKey{key}, ink.Pt(0, 1000))
	assert.True(t, flags.StoreModified)

	assert.Empty(t, s.KeysIntersectingBounds(ink.NewAabb(ink.Pt(0, 0), ink.Pt(100, 100))))
	assert.Equal(t, []ink.StrokeKey{key}, s.KeysIntersectingBounds(ink.NewAabb(ink.Pt(0, 990), ink.Pt(100, 1100))))
}

func TestSelection(t *testing.T) {
	s := newTestStore(t)
	a := s.InsertStroke(hline(t, 10, 0, 50))
	b := s.InsertStroke(hline(t, 20, 0, 50))

	flags := s.SetSelected([]ink.StrokeKey{b, a}, true)
	assert.True(t, flags.Redraw)
	assert.False(t, flags.StoreModified)
	assert.Equal(t, []ink.StrokeKey{a, b}, s.SelectedKeys())

	s.SetTrashed([]ink.StrokeKey{a}, true)
	assert.Equal(t, []ink.StrokeKey{b}, s.SelectedKeys())
}

func TestRecordIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	now := time.Unix(0, 0)

	assert.True(t, s.Record(now).IsEmpty(), "nothing changed yet")

	s.InsertStroke(hline(t, 10, 0, 50))
	flags := s.Record(now)
	assert.True(t, flags.HistoryModified)
	assert.True(t, s.Record(now).IsEmpty())
	assert.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestUndoRedo(t *testing.T) {
	s := newTestStore(t)
	now := time.Unix(0, 0)

	a := s.InsertStroke(hline(t, 10, 0, 50))
	s.Record(now)
	b := s.InsertStroke(hline(t, 100, 0, 50))
	s.Record(now)
	s.TranslateStrokes([]ink.StrokeKey{a}, ink.Pt(5, 0))
	s.Record(now)

	flags := s.Undo()
	assert.True(t, flags.StoreModified)
	assert.True(t, flags.HistoryModified)
	st, err := s.Stroke(a)
	require.NoError(t, err)
	assert.Equal(t, 25.0, st.Bounds().Center().X, "translation undone")

	s.Undo()
	assert.Equal(t, 1, s.Len())
	_, err = s.Stroke(b)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	s.Redo()
	s.Redo()
	st, err = s.Stroke(a)
	require.NoError(t, err)
	assert.Equal(t, 30.0, st.Bounds().Center().X)
	assert.False(t, s.CanRedo())

	// new keys never collide with restored ones
	c := s.InsertStroke(hline(t, 200, 0, 50))
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
}

func TestUndoDropsRedoOnNewRecord(t *testing.T) {
	s := newTestStore(t)
	now := time.Unix(0, 0)

	s.InsertStroke(hline(t, 10, 0, 50))
	s.Record(now)
	s.Undo()
	require.True(t, s.CanRedo())

	s.InsertStroke(hline(t, 20, 0, 50))
	s.Record(now)
	assert.False(t, s.CanRedo())
}

func TestHistoryLength(t *testing.T) {
	s := New(WithWorkers(1), WithHistoryLength(2))
	defer s.Close()
	now := time.Unix(0, 0)

	for i := range 5 {
		s.InsertStroke(hline(t, float64(i*20), 0, 50))
		s.Record(now)
	}
	undos := 0
	for s.CanUndo() {
		s.Undo()
		undos++
	}
	assert.Equal(t, 2, undos)
	assert.Equal(t, 3, s.Len())
}
