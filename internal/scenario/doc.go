// Package scenario replays recorded pen input against a headless engine.
//
// A scenario is a YAML file with a name, an optional document setup and a
// list of timestamped steps. Each step either delivers a pen event, switches
// the pen or runs an engine action such as undo:
//
//	name: line
//	layout: continuous-vertical
//	viewport: {x: 800, y: 600}
//	steps:
//	  - {at: 0, event: down, x: 100, y: 100}
//	  - {at: 20, event: up, x: 200, y: 100}
//	  - {at: 30, action: undo}
//
// Run applies the steps in order and returns a Result with the flags every
// step produced and the final document state. The result is deterministic,
// which makes it usable for golden tests.
package scenario
