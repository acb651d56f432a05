package view

import (
	"viewcore/host"
	"viewcore/rect"
)

// ViewAxis and LabEdge are the bitset types for maximized-axis and
// tiled-edge state. They live in package rect, alongside Rect and
// Border, so that the geometry engine (which must compute against
// them without depending on the view package) and View itself share
// one definition. Aliased here so view callers can spell them
// view.ViewAxis / view.LabEdge.
type (
	ViewAxis = rect.ViewAxis
	LabEdge  = rect.LabEdge
)

const (
	AxisNone       = rect.AxisNone
	AxisHorizontal = rect.AxisHorizontal
	AxisVertical   = rect.AxisVertical
	AxisBoth       = rect.AxisBoth

	EdgeNone       = rect.EdgeNone
	EdgeTop        = rect.EdgeTop
	EdgeRight      = rect.EdgeRight
	EdgeBottom     = rect.EdgeBottom
	EdgeLeft       = rect.EdgeLeft
	EdgesLeftRight = rect.EdgesLeftRight
	EdgesTopBottom = rect.EdgesTopBottom
)

// ViewFocusMode governs whether a view is focusable at all, and whether
// focus is taken immediately or merely offered (X11 click-to-focus
// style).
type ViewFocusMode int

const (
	FocusNever ViewFocusMode = iota
	FocusUnlikely
	FocusLikely
	FocusAlways
)

// ViewState is the attribute set owned by a View and shared read-only
// with the rest of the compositor through a stable pointer (GetState).
// Callers must never mutate the returned value; all mutation goes
// through View's methods so that notifications stay consistent.
type ViewState struct {
	Mapped           bool
	EverMapped       bool
	Minimized        bool
	Active           bool
	Fullscreen       bool
	SSDEnabled       bool
	InhibitsKeybinds bool
	AlwaysOnTop      bool

	FocusMode ViewFocusMode
	Maximized ViewAxis
	Tiled     LabEdge

	// Pending is the last geometry requested from the client.
	Pending rect.Rect
	// Current is the last geometry acknowledged/committed by the
	// client - the visual truth.
	Current rect.Rect
	// NaturalGeom is the geometry to restore on un-maximize, un-tile,
	// or un-fullscreen.
	NaturalGeom rect.Rect

	Output host.OutputID

	AppID string
	Title string
}

// Visible reports mapped && !minimized.
func (s *ViewState) Visible() bool {
	return s.Mapped && !s.Minimized
}

// Focusable reports mapped && focus mode is likely or always.
func (s *ViewState) Focusable() bool {
	return s.Mapped && (s.FocusMode == FocusLikely || s.FocusMode == FocusAlways)
}

// Floating reports that the view is not fullscreen, not maximized on
// any axis, and not tiled to any edge.
func (s *ViewState) Floating() bool {
	return !s.Fullscreen && s.Maximized == AxisNone && s.Tiled == EdgeNone
}
