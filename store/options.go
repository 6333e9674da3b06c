package store

// DefaultHistoryLength is the number of undo steps kept by default.
const DefaultHistoryLength = 100

// Option configures a Store during creation.
//
// Example:
//
//	s := store.New(store.WithWorkers(2), store.WithHistoryLength(20))
type Option func(*options)

type options struct {
	workers        int
	historyLength  int
	viewportMargin float64
}

func defaultOptions() options {
	return options{
		workers:        0, // GOMAXPROCS
		historyLength:  DefaultHistoryLength,
		viewportMargin: 0.4,
	}
}

// WithWorkers sets the number of render workers. Zero or less uses
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithHistoryLength limits the undo history. Values below one keep a
// single step.
func WithHistoryLength(n int) Option {
	return func(o *options) {
		o.historyLength = max(n, 1)
	}
}

// WithViewportMargin sets how far beyond the viewport, as a fraction of its
// size, strokes are rendered ahead of scrolling.
func WithViewportMargin(fraction float64) Option {
	return func(o *options) {
		o.viewportMargin = max(fraction, 0)
	}
}
