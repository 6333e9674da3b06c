// Package store holds the strokes of a document.
//
// A Store maps stroke keys to strokes together with their z-order, trash and
// selection flags and a cached rendering. It answers the spatial queries the
// pens need through an R-tree over stroke bounds, keeps an undo history of
// snapshots, and regenerates stroke images on a worker pool. Render results
// come back as [ink.UpdateStrokeWithImagesTask] on the engine task channel and
// are applied with [Store.ApplyRenderResult], which drops stale results.
//
// A Store is not safe for concurrent use. All methods are called from the
// engine goroutine; render jobs only see cloned strokes.
package store
