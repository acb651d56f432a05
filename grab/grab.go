// Package grab implements the interactive move/resize gesture engine.
// A ViewGrab tracks the cursor and geometry at the start of a gesture
// and derives each subsequent frame's geometry from cursor deltas,
// including the unsnap-on-drag and edge-snap behaviors. It never
// touches the protocol directly; all mutation goes through the view
// package so the usual change/notify discipline still applies.
package grab

import (
	"viewcore/host"
	"viewcore/rect"
	"viewcore/view"
)

const (
	singleAxisUnmaximizeThreshold = 100
	unsnapThreshold               = 20
	snapThreshold                 = 10
)

// ViewGrab holds the cursor and geometry snapshot an in-progress
// interactive move or resize is computed against.
type ViewGrab struct {
	originCursorX, originCursorY int
	originGeom                   rect.Rect
	resizeEdges                  rect.LabEdge
}

// adjustOriginPos re-anchors one axis of the origin geometry when its
// size changes mid-move: the cursor's fractional position within the
// old size is preserved against the new size, clamped so the edge
// never crosses the cursor.
func adjustOriginPos(cursorPos, oldPos, oldSize, newSize int) int {
	if oldSize <= 0 {
		return oldPos
	}
	adjusted := cursorPos - (cursorPos-oldPos)*newSize/oldSize
	if adjusted > oldPos {
		return adjusted
	}
	return oldPos
}

// shouldUnsnap overwrites x/y for any axis that should not unsnap yet,
// and reports whether the view should leave its maximized/tiled state
// this frame. A floating view is never snapped, so it always reports
// false. Single-axis-maximized views use a wider threshold on the
// maximized axis; any other non-floating view (tiled, or
// both-axis-maximized) uses the combined threshold on both axes.
func shouldUnsnap(st *view.ViewState, x, y *int) bool {
	if st.Floating() {
		return false
	}
	dx := abs(*x - st.Pending.X)
	dy := abs(*y - st.Pending.Y)
	switch st.Maximized {
	case view.AxisHorizontal:
		if dx < singleAxisUnmaximizeThreshold {
			*x = st.Pending.X
			return false
		}
	case view.AxisVertical:
		if dy < singleAxisUnmaximizeThreshold {
			*y = st.Pending.Y
			return false
		}
	default:
		if (dx+dy)/2 < unsnapThreshold {
			*x = st.Pending.X
			*y = st.Pending.Y
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// SetContext begins a new gesture, recording the cursor position and
// the view's current (visual, not pending) geometry as the reference
// frame every subsequent delta is computed against. edges is the
// resize edge set for a resize gesture, or EdgeNone for a move.
func (g *ViewGrab) SetContext(v *view.View, cursorX, cursorY int, edges rect.LabEdge) {
	g.originCursorX = cursorX
	g.originCursorY = cursorY
	g.originGeom = v.GetState().Current
	g.resizeEdges = edges
}

// ResizeEdges returns the edge set of the grab in progress.
func (g *ViewGrab) ResizeEdges() rect.LabEdge { return g.resizeEdges }

// StartMove validates and begins a move gesture, capturing natural
// geometry. It refuses to start on panel-strut or fullscreen views.
func (g *ViewGrab) StartMove(v *view.View) bool {
	if v.HasStrutPartial() || v.GetState().Fullscreen {
		return false
	}
	v.StoreNaturalGeom()
	return true
}

// AdjustMoveOrigin re-anchors the origin geometry to a new size,
// called when the client acks a size different from the one requested
// mid-move.
func (g *ViewGrab) AdjustMoveOrigin(width, height int) {
	g.originGeom.X = adjustOriginPos(g.originCursorX, g.originGeom.X, g.originGeom.Width, width)
	g.originGeom.Y = adjustOriginPos(g.originCursorY, g.originGeom.Y, g.originGeom.Height, height)
	g.originGeom.Width = width
	g.originGeom.Height = height
}

// ComputeMovePosition derives the view's top-left corner from the
// cursor's displacement since SetContext.
func (g *ViewGrab) ComputeMovePosition(cursorX, cursorY int) (x, y int) {
	return g.originGeom.X + (cursorX - g.originCursorX), g.originGeom.Y + (cursorY - g.originCursorY)
}

// ContinueMove advances an in-progress move to the cursor's current
// position, unsnapping the view from any maximized/tiled state once
// the cursor has dragged far enough past the relevant threshold.
func (g *ViewGrab) ContinueMove(v *view.View, cursorX, cursorY int) {
	st := v.GetState()
	geom := st.Pending
	geom.X, geom.Y = g.ComputeMovePosition(cursorX, cursorY)
	if shouldUnsnap(st, &geom.X, &geom.Y) {
		geom.Width = st.NaturalGeom.Width
		geom.Height = st.NaturalGeom.Height
		if !rect.Empty(geom) {
			g.AdjustMoveOrigin(geom.Width, geom.Height)
			geom.X, geom.Y = g.ComputeMovePosition(cursorX, cursorY)
		}
		v.SetMaximizedRaw(view.AxisNone)
		v.SetTiledRaw(view.EdgeNone)
	}
	v.MoveResize(geom)
}

// StartResize validates and begins a resize gesture. edges, when
// non-zero, overrides the edge set recorded by SetContext (used when a
// double-click on an edge starts a resize without a prior SetContext
// call). It clears the maximized state on whichever axis/axes the
// resized edges belong to, and always clears tiling, but does not
// restore natural geometry.
func (g *ViewGrab) StartResize(v *view.View, edges rect.LabEdge) bool {
	st := v.GetState()
	if v.HasStrutPartial() || st.Fullscreen || st.Maximized == view.AxisBoth {
		return false
	}
	if edges != view.EdgeNone {
		g.resizeEdges = edges
	}
	maximized := st.Maximized
	if g.resizeEdges.Any(rect.EdgesLeftRight) {
		maximized &= ^view.AxisHorizontal
	}
	if g.resizeEdges.Any(rect.EdgesTopBottom) {
		maximized &= ^view.AxisVertical
	}
	v.SetMaximizedRaw(maximized)
	v.SetTiledRaw(view.EdgeNone)
	return true
}

// ContinueResize advances an in-progress resize to the cursor's
// current position: the edges fixed by the gesture grow/shrink with
// cursor displacement, the opposite edges stay put, and the client's
// size hints are applied before the new geometry is sent.
func (g *ViewGrab) ContinueResize(v *view.View, cursorX, cursorY int) {
	geom := v.GetState().Pending
	dx := cursorX - g.originCursorX
	dy := cursorY - g.originCursorY

	switch {
	case g.resizeEdges.Has(rect.EdgeTop):
		geom.Height = g.originGeom.Height - dy
	case g.resizeEdges.Has(rect.EdgeBottom):
		geom.Height = g.originGeom.Height + dy
	}
	switch {
	case g.resizeEdges.Has(rect.EdgeLeft):
		geom.Width = g.originGeom.Width - dx
	case g.resizeEdges.Has(rect.EdgeRight):
		geom.Width = g.originGeom.Width + dx
	}

	v.AdjustSize(&geom.Width, &geom.Height)

	if g.resizeEdges.Has(rect.EdgeTop) {
		geom.Y = g.originGeom.Y + g.originGeom.Height - geom.Height
	}
	if g.resizeEdges.Has(rect.EdgeLeft) {
		geom.X = g.originGeom.X + g.originGeom.Width - geom.Width
	}
	v.MoveResize(geom)
}

// GetSnapTarget reports which output a cursor at (cursorX, cursorY) is
// over, and which edge(s) of that output's usable area the cursor is
// within snapThreshold pixels of, if any.
func GetSnapTarget(cursorX, cursorY int, outputs host.OutputLayout) (host.OutputID, rect.LabEdge) {
	output := outputs.NearestTo(cursorX, cursorY)
	usable := outputs.UsableArea(output)
	if rect.Empty(usable) {
		return output, rect.EdgeNone
	}
	var edges rect.LabEdge
	switch {
	case cursorX < usable.X+snapThreshold:
		edges |= rect.EdgeLeft
	case cursorX > usable.X+usable.Width-snapThreshold:
		edges |= rect.EdgeRight
	}
	switch {
	case cursorY < usable.Y+snapThreshold:
		edges |= rect.EdgeTop
	case cursorY > usable.Y+usable.Height-snapThreshold:
		edges |= rect.EdgeBottom
	}
	return output, edges
}
