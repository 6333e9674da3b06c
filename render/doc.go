// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns stroke compositions into pixels.
//
// Strokes are rasterized on the CPU into [ink.Image] tiles that cover the
// part of a stroke visible in a viewport, at the camera's image scale. The
// store caches these images per stroke and a [Canvas] composites them, on
// top of the document background, into the final viewport image.
//
// All functions in this package are safe for concurrent use; rasterization
// runs on the store's worker pool.
package render
