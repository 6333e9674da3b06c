// Package pens implements the interactive tools of the engine as state
// machines driven by pen events.
//
// Every pen implements [PenBehaviour]. Events are delivered together with an
// [EngineViewMut], which gives the pen mutable access to the document, the
// camera, the stroke store and the task channel for the duration of one
// call. Pens report what the host must do afterwards through
// [ink.WidgetFlags]. The [Holder] owns the active pen and switches between
// pens, including temporary overrides from stylus buttons.
package pens
