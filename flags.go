package ink

import "strings"

// WidgetFlags describes the side effects the host has to apply after an
// engine operation. The zero value requests nothing.
//
// Flags are combined with Merge, which ORs every field, so the order in which
// a batch of results is accumulated never matters.
type WidgetFlags struct {
	// Redraw requests repainting the canvas.
	Redraw bool
	// Resize requests a relayout because the document bounds changed.
	Resize bool
	// RefreshUI requests refreshing tool and menu widgets.
	RefreshUI bool
	// IndicateChangedStore marks the document as having unsaved changes.
	IndicateChangedStore bool
	// ViewModified is set when camera offset or size changed.
	ViewModified bool
	// UpdateView requests re-synchronising scroll adjustments with the camera.
	UpdateView bool
	// StoreModified is set by every call that mutated the stroke store.
	StoreModified bool
	// Zoomed is set when the permanent zoom changed.
	Zoomed bool
	// ZoomedTemporarily is set when only the temporary zoom changed.
	ZoomedTemporarily bool
	// HistoryModified is set when an undo step was recorded or restored.
	HistoryModified bool
}

// Merge ORs other into f.
func (f *WidgetFlags) Merge(other WidgetFlags) {
	f.Redraw = f.Redraw || other.Redraw
	f.Resize = f.Resize || other.Resize
	f.RefreshUI = f.RefreshUI || other.RefreshUI
	f.IndicateChangedStore = f.IndicateChangedStore || other.IndicateChangedStore
	f.ViewModified = f.ViewModified || other.ViewModified
	f.UpdateView = f.UpdateView || other.UpdateView
	f.StoreModified = f.StoreModified || other.StoreModified
	f.Zoomed = f.Zoomed || other.Zoomed
	f.ZoomedTemporarily = f.ZoomedTemporarily || other.ZoomedTemporarily
	f.HistoryModified = f.HistoryModified || other.HistoryModified
}

// Merged returns the union of f and other without modifying either.
func (f WidgetFlags) Merged(other WidgetFlags) WidgetFlags {
	f.Merge(other)
	return f
}

// IsEmpty reports whether no side effect is requested.
func (f WidgetFlags) IsEmpty() bool {
	return f == WidgetFlags{}
}

// StoreChanged is the set of flags every store mutation reports.
func StoreChanged() WidgetFlags {
	return WidgetFlags{
		Redraw:               true,
		StoreModified:        true,
		IndicateChangedStore: true,
	}
}

// Names returns the names of the set flags in field order.
func (f WidgetFlags) Names() []string {
	var names []string
	add := func(set bool, name string) {
		if set {
			names = append(names, name)
		}
	}
	add(f.Redraw, "redraw")
	add(f.Resize, "resize")
	add(f.RefreshUI, "refresh_ui")
	add(f.IndicateChangedStore, "indicate_changed_store")
	add(f.ViewModified, "view_modified")
	add(f.UpdateView, "update_view")
	add(f.StoreModified, "store_modified")
	add(f.Zoomed, "zoomed")
	add(f.ZoomedTemporarily, "zoomed_temporarily")
	add(f.HistoryModified, "history_modified")
	return names
}

func (f WidgetFlags) String() string {
	names := f.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
