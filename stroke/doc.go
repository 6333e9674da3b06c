// Package stroke defines the strokes held by the stroke store: their geometry
// (pen paths, shapes, text), their styles and the composition that turns a
// styled shape into fillable outlines.
//
// Styles form a closed sum type ([Smooth], [Rough], [Textured]) behind the
// [Styler] capability interface. Every style decides in one place which
// shapes it can compose; combinations it cannot draw return
// [ErrStyleUnsupported] instead of failing at render time.
package stroke
