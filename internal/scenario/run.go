package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/engine"
	"github.com/gogpu/ink/pens"
)

// StepResult is the outcome of one step.
type StepResult struct {
	Index int    `json:"index"`
	At    int64  `json:"at"`
	Kind  string `json:"kind"`
	// Handled and Progress are only meaningful for event steps.
	Handled  bool     `json:"handled"`
	Progress string   `json:"progress,omitempty"`
	Flags    []string `json:"flags"`
}

// Result summarizes a replay.
type Result struct {
	Name     string       `json:"name"`
	Steps    []StepResult `json:"steps"`
	Strokes  int          `json:"strokes"`
	Document ink.Aabb     `json:"-"`
	Viewport ink.Aabb     `json:"-"`
	Zoom     float64      `json:"zoom"`
	CanUndo  bool         `json:"can_undo"`
	CanRedo  bool         `json:"can_redo"`
}

// Run replays the steps of s against e. start is the time of the first
// step. Once all steps are applied Run waits for pending rendering, so the
// engine is ready to render the viewport.
func Run(ctx context.Context, e *engine.Engine, s *Scenario, start time.Time) (*Result, error) {
	res := &Result{Name: s.Name, Steps: make([]StepResult, 0, len(s.Steps))}
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		now := start.Add(time.Duration(step.At) * time.Millisecond)
		sr, err := apply(e, step, now)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		sr.Index = i
		sr.At = step.At
		sr.Kind = step.Kind()
		ink.Logger().Debug("scenario step", "scenario", s.Name, "step", i, "kind", sr.Kind, "flags", sr.Flags)
		res.Steps = append(res.Steps, sr)
	}

	if _, err := e.WaitRendering(ctx); err != nil {
		return nil, err
	}

	st := e.Store()
	res.Strokes = len(st.Keys())
	res.Document = e.Document().Bounds()
	res.Viewport = e.Camera().Viewport()
	res.Zoom = e.Camera().Zoom()
	res.CanUndo = st.CanUndo()
	res.CanRedo = st.CanRedo()
	return res, nil
}

func apply(e *engine.Engine, step Step, now time.Time) (StepResult, error) {
	var (
		sr    StepResult
		flags ink.WidgetFlags
	)
	switch {
	case step.Event != "":
		ev, err := step.PenEvent()
		if err != nil {
			return sr, err
		}
		var result ink.EventResult[ink.PenProgress]
		result, flags = e.HandlePenEvent(ev, now)
		sr.Handled = result.Handled
		sr.Progress = result.Progress.String()
	case step.Pen != "":
		style, err := pens.ParsePenStyle(step.Pen)
		if err != nil {
			return sr, err
		}
		flags = e.ChangePenStyle(style, now)
	default:
		switch step.Action {
		case "undo":
			flags = e.Undo(now)
		case "redo":
			flags = e.Redo(now)
		case "zoom":
			flags = e.ZoomTo(step.Zoom)
		case "offset":
			flags = e.SetOffset(ink.Pt(step.X, step.Y))
		case "resize-to-fit":
			flags = e.ResizeToFitContent()
		default:
			return sr, fmt.Errorf("%w: action %q", ErrUnknownEvent, step.Action)
		}
	}
	sr.Flags = flags.Names()
	return sr, nil
}

// Text renders the result as a line oriented report.
func (r *Result) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Name)
	for _, s := range r.Steps {
		fmt.Fprintf(&b, "%d @%dms %s:", s.Index, s.At, s.Kind)
		if s.Progress != "" {
			fmt.Fprintf(&b, " handled=%t progress=%s", s.Handled, s.Progress)
		}
		flags := "none"
		if len(s.Flags) > 0 {
			flags = strings.Join(s.Flags, ",")
		}
		fmt.Fprintf(&b, " flags=%s\n", flags)
	}
	fmt.Fprintf(&b, "strokes: %d\n", r.Strokes)
	fmt.Fprintf(&b, "document: %s\n", formatAabb(r.Document))
	fmt.Fprintf(&b, "viewport: %s\n", formatAabb(r.Viewport))
	fmt.Fprintf(&b, "zoom: %g\n", r.Zoom)
	fmt.Fprintf(&b, "undo: %t redo: %t\n", r.CanUndo, r.CanRedo)
	return b.String()
}

func formatAabb(b ink.Aabb) string {
	return fmt.Sprintf("%g %g %g %g", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// MarshalJSON adds the bounds as [minX, minY, maxX, maxY] arrays.
func (r *Result) MarshalJSON() ([]byte, error) {
	type plain Result
	return json.Marshal(struct {
		*plain
		Document [4]float64 `json:"document"`
		Viewport [4]float64 `json:"viewport"`
	}{
		plain:    (*plain)(r),
		Document: aabbArray(r.Document),
		Viewport: aabbArray(r.Viewport),
	})
}

func aabbArray(b ink.Aabb) [4]float64 {
	return [4]float64{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y}
}
