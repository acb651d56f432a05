// Package geom is the pure geometry engine consulted by View to compute
// maximized/tiled/default/on-screen geometries from a view's state plus
// the output's usable area and decoration margin. It never mutates
// anything it is not explicitly passed a pointer to, and it allocates
// nothing.
package geom

import (
	"viewcore/host"
	"viewcore/rect"
)

// MinVisiblePx is the minimum number of pixels of a view's edge that
// must remain on-screen before EnsureOnscreen recenters it.
const MinVisiblePx = 16

// MinWidth and MinHeight are the ICCCM-style default minimums applied
// by AdjustSizeForHints when the client supplied none.
const (
	MinWidth  = 100
	MinHeight = 60
)

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// EnsureOnscreen guarantees at least MinVisiblePx of geom's edges are
// visible within usable (minus margin); otherwise it recenters geom.
// A geom that is already empty, or a usable area that is empty after
// subtracting margin, is left unchanged.
func EnsureOnscreen(geomRect *rect.Rect, usable rect.Rect, margin rect.Border) {
	if rect.Empty(*geomRect) {
		return
	}
	usableMinusMargin := rect.MinusMargin(usable, margin)
	if rect.Empty(usableMinusMargin) {
		return
	}
	hmargin := minInt(MinVisiblePx, (geomRect.Width-1)/2)
	vmargin := minInt(MinVisiblePx, (geomRect.Height-1)/2)
	reduced := rect.Rect{
		X:      geomRect.X + hmargin,
		Y:      geomRect.Y + vmargin,
		Width:  geomRect.Width - 2*hmargin,
		Height: geomRect.Height - 2*vmargin,
	}
	if !rect.Intersects(reduced, usable) {
		*geomRect = rect.Center(geomRect.Width, geomRect.Height, usableMinusMargin)
		rect.MoveWithin(geomRect, usableMinusMargin)
	}
}

// ComputeDefault computes the initial placement of a view. rel_to and
// keep_position are mutually exclusive: pass an empty relTo when there
// is no parent to center against.
func ComputeDefault(geomRect *rect.Rect, usable, relTo rect.Rect, margin rect.Border, keepPosition bool) {
	if rect.Empty(*geomRect) {
		geomRect.X = maxInt(geomRect.X, margin.Left)
		geomRect.Y = maxInt(geomRect.Y, margin.Top)
		return
	}
	usableMinusMargin := rect.MinusMargin(usable, margin)
	relMinusMargin := rect.MinusMargin(relTo, margin)
	if rect.Empty(usableMinusMargin) {
		if !rect.Empty(relMinusMargin) {
			*geomRect = rect.Center(geomRect.Width, geomRect.Height, relMinusMargin)
		}
		geomRect.X = maxInt(geomRect.X, margin.Left)
		geomRect.Y = maxInt(geomRect.Y, margin.Top)
		return
	}
	geomRect.Width = minInt(geomRect.Width, usableMinusMargin.Width)
	geomRect.Height = minInt(geomRect.Height, usableMinusMargin.Height)
	switch {
	case !rect.Empty(relMinusMargin):
		*geomRect = rect.Center(geomRect.Width, geomRect.Height, relMinusMargin)
	case !keepPosition:
		*geomRect = rect.Center(geomRect.Width, geomRect.Height, usableMinusMargin)
	}
	rect.MoveWithin(geomRect, usableMinusMargin)
}

// ComputeMaximized computes the maximized geometry for a view whose
// maximized axis is maximized and whose last-known natural geometry is
// natural. When only one axis is maximized, the
// free axis is taken from natural, first ensured on-screen.
func ComputeMaximized(maximized rect.ViewAxis, natural, usable rect.Rect, margin rect.Border) rect.Rect {
	g := rect.MinusMargin(usable, margin)
	if maximized != rect.AxisBoth {
		EnsureOnscreen(&natural, usable, margin)
		switch maximized {
		case rect.AxisVertical:
			g.X = natural.X
			g.Width = natural.Width
		case rect.AxisHorizontal:
			g.Y = natural.Y
			g.Height = natural.Height
		}
	}
	return g
}

// ComputeTiled splits usable into the half or quadrant named by edges,
// then subtracts margin. Combinations of opposing edges (e.g.
// Top|Bottom) are not meaningful and are left to the caller to avoid
// requesting (only defines the documented
// half/quadrant combinations).
func ComputeTiled(edges rect.LabEdge, usable rect.Rect, margin rect.Border) rect.Rect {
	x1, x2 := 0, usable.Width
	y1, y2 := 0, usable.Height
	if edges.Has(rect.EdgeRight) {
		x1 = usable.Width / 2
	}
	if edges.Has(rect.EdgeLeft) {
		x2 = usable.Width / 2
	}
	if edges.Has(rect.EdgeBottom) {
		y1 = usable.Height / 2
	}
	if edges.Has(rect.EdgeTop) {
		y2 = usable.Height / 2
	}
	return rect.Rect{
		X:      usable.X + x1 + margin.Left,
		Y:      usable.Y + y1 + margin.Top,
		Width:  x2 - x1 - margin.Left - margin.Right,
		Height: y2 - y1 - margin.Top - margin.Bottom,
	}
}

// NearestOutputTo returns the output nearest to geom's center.
func NearestOutputTo(geomRect rect.Rect, outputs host.OutputLayout) host.OutputID {
	return outputs.NearestTo(geomRect.X+geomRect.Width/2, geomRect.Y+geomRect.Height/2)
}

// AdjustSizeForHints applies ICCCM 4.1.2.3 size-hint rules during
// interactive resize: if base size is zero, substitute min size and
// vice versa; snap each dimension to the client's increment anchored at
// its base; then apply minimums (100x60 if the client supplied none).
func AdjustSizeForHints(width, height *int, hints host.SizeHints) {
	baseW, baseH := hints.BaseWidth, hints.BaseHeight
	minW, minH := hints.MinWidth, hints.MinHeight
	if baseW == 0 {
		baseW = minW
	}
	if baseH == 0 {
		baseH = minH
	}
	if minW == 0 {
		minW = baseW
	}
	if minH == 0 {
		minH = baseH
	}
	if hints.WidthInc > 0 && baseW > 0 {
		*width = baseW + ((*width-baseW)/hints.WidthInc)*hints.WidthInc
	}
	if hints.HeightInc > 0 && baseH > 0 {
		*height = baseH + ((*height-baseH)/hints.HeightInc)*hints.HeightInc
	}
	if minW <= 0 {
		minW = MinWidth
	}
	if minH <= 0 {
		minH = MinHeight
	}
	*width = maxInt(*width, minW)
	*height = maxInt(*height, minH)
}
