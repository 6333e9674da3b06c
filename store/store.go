package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/internal/parallel"
	"github.com/gogpu/ink/stroke"
)

// ErrKeyNotFound is returned when a stroke key is not in the store.
var ErrKeyNotFound = errors.New("store: stroke key not found")

type entry struct {
	stroke   stroke.Stroke
	chrono   uint64
	trashed  bool
	selected bool
	// revision changes whenever the stroke geometry or content changes,
	// render results for an older revision are stale.
	revision uint64
	// indexed is the box the stroke is stored under in the spatial index.
	indexed ink.Aabb
	render  renderComponent
}

// Store is the keyed collection of strokes of one document.
type Store struct {
	opts options

	entries map[ink.StrokeKey]*entry
	index   spatialIndex
	nextKey ink.StrokeKey
	chrono  uint64

	// revision counts mutations, history records compare against it.
	revision uint64
	history  history

	pool    *parallel.WorkerPool
	group   singleflight.Group
	request renderRequest
	jobs    sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates an empty store. The initial empty state is the first history
// step.
func New(opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		opts:    o,
		entries: make(map[ink.StrokeKey]*entry),
		pool:    parallel.NewWorkerPool(o.workers),
		ctx:     ctx,
		cancel:  cancel,
	}
	s.history.init(o.historyLength, s.snapshot())
	ink.Logger().Debug("stroke store created", "workers", s.pool.Workers(), "history", o.historyLength)
	return s
}

// Close cancels running render jobs and stops the worker pool.
func (s *Store) Close() {
	s.cancel()
	s.request.cancelJobs()
	s.pool.Close()
}

// Len returns the number of strokes, trashed ones included.
func (s *Store) Len() int { return len(s.entries) }

func (s *Store) touch(e *entry) {
	s.revision++
	e.revision++
	e.render.state = RenderDirty
}

func (s *Store) get(key ink.StrokeKey) (*entry, error) {
	e, ok := s.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return e, nil
}

// InsertStroke adds a stroke on top of all others and returns its key.
func (s *Store) InsertStroke(st stroke.Stroke) ink.StrokeKey {
	s.chrono++
	return s.insertWithChrono(st, s.chrono)
}

func (s *Store) insertWithChrono(st stroke.Stroke, chrono uint64) ink.StrokeKey {
	s.nextKey++
	key := s.nextKey
	e := &entry{stroke: st, chrono: chrono}
	s.entries[key] = e
	s.touch(e)
	e.indexed = st.Bounds()
	s.index.insert(key, e.indexed)
	return key
}

// RemoveStroke deletes a stroke and returns it.
func (s *Store) RemoveStroke(key ink.StrokeKey) (stroke.Stroke, error) {
	e, err := s.get(key)
	if err != nil {
		return nil, err
	}
	s.index.remove(key, e.indexed)
	delete(s.entries, key)
	s.revision++
	return e.stroke, nil
}

// Stroke returns the stroke for key. Callers that mutate it must call
// UpdateGeometryForStrokes afterwards.
func (s *Store) Stroke(key ink.StrokeKey) (stroke.Stroke, error) {
	e, err := s.get(key)
	if err != nil {
		return nil, err
	}
	return e.stroke, nil
}

func (s *Store) reindex(key ink.StrokeKey, e *entry) {
	s.touch(e)
	s.index.remove(key, e.indexed)
	e.indexed = e.stroke.Bounds()
	s.index.insert(key, e.indexed)
}

// SetTrashed moves strokes to or from the trash. Trashed strokes are kept
// for undo but ignored by every query.
func (s *Store) SetTrashed(keys []ink.StrokeKey, trashed bool) ink.WidgetFlags {
	var flags ink.WidgetFlags
	for _, key := range keys {
		e, ok := s.entries[key]
		if !ok || e.trashed == trashed {
			continue
		}
		e.trashed = trashed
		e.selected = false
		s.revision++
		flags.Merge(ink.StoreChanged())
	}
	return flags
}

// IsTrashed reports whether the stroke is in the trash.
func (s *Store) IsTrashed(key ink.StrokeKey) bool {
	e, ok := s.entries[key]
	return ok && e.trashed
}

// SetSelected marks strokes as selected or not. Selection is view state and
// does not create a history step.
func (s *Store) SetSelected(keys []ink.StrokeKey, selected bool) ink.WidgetFlags {
	var flags ink.WidgetFlags
	for _, key := range keys {
		e, ok := s.entries[key]
		if !ok || e.trashed || e.selected == selected {
			continue
		}
		e.selected = selected
		flags.Redraw = true
	}
	return flags
}

// SelectedKeys returns the selected strokes in z-order.
func (s *Store) SelectedKeys() []ink.StrokeKey {
	var keys []ink.StrokeKey
	for key, e := range s.entries {
		if e.selected && !e.trashed {
			keys = append(keys, key)
		}
	}
	return s.sortByChrono(keys)
}

// Keys returns all live strokes in z-order.
func (s *Store) Keys() []ink.StrokeKey {
	keys := make([]ink.StrokeKey, 0, len(s.entries))
	for key, e := range s.entries {
		if !e.trashed {
			keys = append(keys, key)
		}
	}
	return s.sortByChrono(keys)
}

func (s *Store) sortByChrono(keys []ink.StrokeKey) []ink.StrokeKey {
	slices.SortFunc(keys, func(a, b ink.StrokeKey) int {
		if c := cmp.Compare(s.entries[a].chrono, s.entries[b].chrono); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return keys
}

// live returns the entry for key unless it is missing or trashed.
func (s *Store) live(key ink.StrokeKey) (*entry, bool) {
	e, ok := s.entries[key]
	if !ok || e.trashed {
		return nil, false
	}
	return e, true
}
