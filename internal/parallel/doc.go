// Package parallel runs stroke rendering jobs on a fixed set of worker
// goroutines.
//
// Each worker owns a queue and steals from the others when its own queue is
// empty, so a few large strokes do not leave the remaining workers idle.
// Submit never blocks the caller: when every queue is full the job overflows
// onto its own goroutine.
package parallel
