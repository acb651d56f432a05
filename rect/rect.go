// Package rect implements the integer rectangle algebra shared by the
// geometry engine, the view state machine, and the interactive grab
// engine. Every function here is pure and total: it never allocates and
// never panics on out-of-range input.
package rect

// Rect is an axis-aligned integer rectangle in layout coordinates.
// It is empty iff Width <= 0 or Height <= 0.
type Rect struct {
	X, Y, Width, Height int
}

// Border is decoration thickness on each of the four edges.
type Border struct {
	Left, Top, Right, Bottom int
}

// Empty reports whether r has non-positive width or height.
func Empty(r Rect) bool {
	return r.Width <= 0 || r.Height <= 0
}

// Equals reports component-wise equality.
func Equals(a, b Rect) bool {
	return a == b
}

// Intersects reports whether a and b overlap, using half-open bounds on
// both axes. Two empty rects, or a pair where either is empty, never
// intersect.
func Intersects(a, b Rect) bool {
	return !Empty(a) && !Empty(b) &&
		a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

// Center returns a width x height rect centered within relTo, using
// floored integer division (an arithmetic shift, which also floors
// when the rect is larger than relTo).
func Center(width, height int, relTo Rect) Rect {
	return Rect{
		X:      relTo.X + (relTo.Width-width)>>1,
		Y:      relTo.Y + (relTo.Height-height)>>1,
		Width:  width,
		Height: height,
	}
}

// MinusMargin insets r by margin on each side. The result may be empty.
func MinusMargin(r Rect, margin Border) Rect {
	return Rect{
		X:      r.X + margin.Left,
		Y:      r.Y + margin.Top,
		Width:  r.Width - margin.Left - margin.Right,
		Height: r.Height - margin.Top - margin.Bottom,
	}
}

// MoveWithin translates r minimally so that it fits inside bound. If r is
// larger than bound on an axis, it is aligned to bound's origin on that
// axis.
func MoveWithin(r *Rect, bound Rect) {
	if r.X < bound.X {
		r.X = bound.X
	} else if r.X+r.Width > bound.X+bound.Width {
		r.X = bound.X + bound.Width - r.Width
	}
	if r.Y < bound.Y {
		r.Y = bound.Y
	} else if r.Y+r.Height > bound.Y+bound.Height {
		r.Y = bound.Y + bound.Height - r.Height
	}
}

// FitWithin scales (width, height) down, preserving aspect ratio, until it
// fits inside bound, then centers the result. Rounding follows
// (num + denom/2) / denom, matching the reference algebra.
func FitWithin(width, height int, bound Rect) Rect {
	var w, h int
	switch {
	case width <= bound.Width && height <= bound.Height:
		w, h = width, height
	case width*bound.Height > height*bound.Width:
		w = bound.Width
		h = (height*bound.Width + width/2) / width
	default:
		w = (width*bound.Height + height/2) / height
		h = bound.Height
	}
	return Center(w, h, bound)
}
