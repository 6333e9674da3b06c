// Package engine ties the document, the camera, the stroke store and the
// pens together.
//
// An Engine is driven from a single goroutine: the host forwards pen events
// with HandlePenEvent and applies the returned WidgetFlags. Background work
// (render jobs, the zoom debounce, cursor blinking) only posts tasks, which
// the host applies with DrainTasks or by running Run.
//
//	e, err := engine.New(engine.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer e.Close()
//
//	_, flags := e.HandlePenEvent(ink.DownEvent{Element: el}, time.Now())
package engine
