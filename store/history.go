package store

import (
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/stroke"
)

type snapshotEntry struct {
	stroke  stroke.Stroke
	chrono  uint64
	trashed bool
}

// snapshot is the full stroke state at one history step. Strokes are
// cloned so later edits do not leak into the step.
type snapshot struct {
	time    time.Time
	entries map[ink.StrokeKey]snapshotEntry
	nextKey ink.StrokeKey
	chrono  uint64
}

// history is a linear undo stack. idx points at the step matching the
// current state; steps after idx can be redone until a new step is recorded.
type history struct {
	steps []*snapshot
	idx   int
	limit int
	// recorded is the store revision of the step at idx.
	recorded uint64
}

func (h *history) init(limit int, initial *snapshot) {
	h.limit = limit
	h.steps = []*snapshot{initial}
	h.idx = 0
}

func (h *history) push(step *snapshot, revision uint64) {
	h.steps = append(h.steps[:h.idx+1], step)
	if over := len(h.steps) - h.limit - 1; over > 0 {
		h.steps = h.steps[over:]
	}
	h.idx = len(h.steps) - 1
	h.recorded = revision
}

func (s *Store) snapshot() *snapshot {
	snap := &snapshot{
		entries: make(map[ink.StrokeKey]snapshotEntry, len(s.entries)),
		nextKey: s.nextKey,
		chrono:  s.chrono,
	}
	for key, e := range s.entries {
		snap.entries[key] = snapshotEntry{stroke: e.stroke.Clone(), chrono: e.chrono, trashed: e.trashed}
	}
	return snap
}

// restore replaces the store contents with a history step. Rendering of
// every stroke becomes dirty.
func (s *Store) restore(snap *snapshot) {
	s.entries = make(map[ink.StrokeKey]*entry, len(snap.entries))
	s.index.clear()
	for key, se := range snap.entries {
		e := &entry{stroke: se.stroke.Clone(), chrono: se.chrono, trashed: se.trashed}
		s.entries[key] = e
		s.touch(e)
		e.indexed = e.stroke.Bounds()
		s.index.insert(key, e.indexed)
	}
	s.nextKey = max(s.nextKey, snap.nextKey)
	s.chrono = max(s.chrono, snap.chrono)
	s.revision++
}

// Record stores the current state as one undo step. It does nothing if
// nothing changed since the previous step.
func (s *Store) Record(now time.Time) ink.WidgetFlags {
	if s.revision == s.history.recorded {
		return ink.WidgetFlags{}
	}
	snap := s.snapshot()
	snap.time = now
	s.history.push(snap, s.revision)
	ink.Logger().Debug("history step recorded", "steps", len(s.history.steps), "revision", s.revision)
	return ink.WidgetFlags{HistoryModified: true, IndicateChangedStore: true}
}

// CanUndo reports whether there is a step to go back to.
func (s *Store) CanUndo() bool { return s.history.idx > 0 }

// CanRedo reports whether an undone step can be restored.
func (s *Store) CanRedo() bool { return s.history.idx < len(s.history.steps)-1 }

// Undo restores the previous history step. Changes made since the last
// Record are discarded.
func (s *Store) Undo() ink.WidgetFlags {
	if !s.CanUndo() {
		return ink.WidgetFlags{}
	}
	s.history.idx--
	return s.restoreCurrent()
}

// Redo restores the step undone last.
func (s *Store) Redo() ink.WidgetFlags {
	if !s.CanRedo() {
		return ink.WidgetFlags{}
	}
	s.history.idx++
	return s.restoreCurrent()
}

func (s *Store) restoreCurrent() ink.WidgetFlags {
	s.restore(s.history.steps[s.history.idx])
	s.history.recorded = s.revision
	flags := ink.StoreChanged()
	flags.HistoryModified = true
	flags.Resize = true
	return flags
}
