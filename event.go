package ink

// Element is one pointer sample: a document-space position and a pressure in
// [0, 1].
type Element struct {
	Pos      Point
	Pressure float64
}

// PressureDefault is used for input devices without pressure.
const PressureDefault = 0.5

// NewElement creates an element with the pressure clamped into [0, 1].
func NewElement(pos Point, pressure float64) Element {
	return Element{Pos: pos, Pressure: clampFloat(pressure, 0, 1)}
}

// ShortcutKey is a modifier or stylus button held during an event.
type ShortcutKey int

const (
	ShortcutStylusPrimaryButton ShortcutKey = iota
	ShortcutStylusSecondaryButton
	ShortcutMouseSecondaryButton
	ShortcutKeyboardShift
	ShortcutKeyboardCtrl
	ShortcutKeyboardAlt
)

// Shortcuts is the set of shortcut keys held during an event.
type Shortcuts []ShortcutKey

// Has reports whether key is held.
func (s Shortcuts) Has(key ShortcutKey) bool {
	for _, k := range s {
		if k == key {
			return true
		}
	}
	return false
}

// KeyboardKey identifies a key press delivered to a pen.
type KeyboardKey int

const (
	KeyUnsupported KeyboardKey = iota
	KeyBackSpace
	KeyDelete
	KeyEscape
	KeyEnter
	KeyTab
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyHome
	KeyEnd
	// KeyUnicode carries a character in KeyPressedEvent.Rune.
	KeyUnicode
)

// PenEvent is the tagged union of input events a pen handles. The concrete
// types are DownEvent, UpEvent, ProximityEvent, KeyPressedEvent, TextEvent and
// CancelEvent.
type PenEvent interface {
	penEvent()
}

// DownEvent is a pointer sample while the pointer is pressed.
type DownEvent struct {
	Element   Element
	Shortcuts Shortcuts
}

// UpEvent ends a pressed gesture.
type UpEvent struct {
	Element   Element
	Shortcuts Shortcuts
}

// ProximityEvent is pointer motion without contact (hover).
type ProximityEvent struct {
	Element   Element
	Shortcuts Shortcuts
}

// KeyPressedEvent is a key press.
type KeyPressedEvent struct {
	Key       KeyboardKey
	Rune      rune
	Shortcuts Shortcuts
}

// TextEvent commits text from an input method.
type TextEvent struct {
	Text string
}

// CancelEvent aborts the current gesture.
type CancelEvent struct{}

func (DownEvent) penEvent()       {}
func (UpEvent) penEvent()         {}
func (ProximityEvent) penEvent()  {}
func (KeyPressedEvent) penEvent() {}
func (TextEvent) penEvent()       {}
func (CancelEvent) penEvent()     {}

// EventElement returns the pointer element an event carries, if any.
func EventElement(ev PenEvent) (Element, bool) {
	switch e := ev.(type) {
	case DownEvent:
		return e.Element, true
	case UpEvent:
		return e.Element, true
	case ProximityEvent:
		return e.Element, true
	}
	return Element{}, false
}

// PenProgress tells the host whether the current gesture is ongoing.
type PenProgress int

const (
	ProgressIdle PenProgress = iota
	ProgressInProgress
	ProgressFinished
)

func (p PenProgress) String() string {
	switch p {
	case ProgressIdle:
		return "idle"
	case ProgressInProgress:
		return "in-progress"
	case ProgressFinished:
		return "finished"
	}
	return "unknown"
}

// EventPropagation tells the host whether its default handling should run.
type EventPropagation int

const (
	// PropagateProceed lets the host handle the event too.
	PropagateProceed EventPropagation = iota
	// PropagateStop consumes the event.
	PropagateStop
)

// EventResult is the outcome of handling one event.
type EventResult[T any] struct {
	Handled   bool
	Propagate EventPropagation
	Progress  T
}

// Unhandled returns a result that lets the event propagate to the host.
func Unhandled[T any](progress T) EventResult[T] {
	return EventResult[T]{Handled: false, Propagate: PropagateProceed, Progress: progress}
}

// Consumed returns a handled result that stops propagation.
func Consumed[T any](progress T) EventResult[T] {
	return EventResult[T]{Handled: true, Propagate: PropagateStop, Progress: progress}
}
