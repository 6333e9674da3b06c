// Package ink is the interaction-and-rendering core of a freehand note canvas.
//
// # Overview
//
// ink owns the coordinate model of a drawing: the [Camera] that maps document
// space to the visible surface, the [Document] whose bounds follow the drawn
// content according to its [Layout], and the small value types the pen state
// machines exchange with the host ([PenEvent], [EventResult], [WidgetFlags],
// [EngineTask]).
//
// The sub-packages build on these types:
//   - stroke: stroke geometry, styles and composition
//   - render: rasterisation of stroke compositions into [Image] tiles
//   - store: the keyed stroke store with spatial queries, history and
//     threaded rendering regeneration
//   - pens: the per-tool state machines and the engine views they act on
//   - engine: wiring of all of the above behind a single engine.Engine
//
// # Coordinate System
//
// Document space is the drawing's own coordinate system. Surface space is the
// pixel space of the visible viewport:
//
//	surface = document * totalZoom - offset
//
// Origin (0,0) is at the top-left, X increases right, Y increases down.
//
// # Side Effects
//
// Every mutating operation returns [WidgetFlags]. Hosts merge the flags of a
// batch of calls and act once (redraw, resize scrollbars, refresh UI).
//
// # Concurrency
//
// Event handling is single-threaded. Background work (zoom settling, stroke
// rendering) never touches engine state directly; it posts an [EngineTask]
// on the [TaskChannel], which the engine drains on its own goroutine.
package ink
