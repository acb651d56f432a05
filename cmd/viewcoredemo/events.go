package main

import (
	"fmt"
	"reflect"

	"viewcore/host"
	"viewcore/view"
)

// Event is one line of the demo's newline-delimited JSON input stream.
// Exactly one field should be set per line; dispatch picks the first
// non-nil field, the same convention the compositor's own event stream
// decoder uses for its wire events.
type Event struct {
	Add            *AddEvent       `json:"add"`
	Remove         *HandleEvent    `json:"remove"`
	Map            *MapEvent       `json:"map"`
	Unmap          *HandleEvent    `json:"unmap"`
	SetAppID       *SetStringEvent `json:"set_app_id"`
	SetTitle       *SetStringEvent `json:"set_title"`
	Focus          *FocusEvent     `json:"focus"`
	FocusTopmost   *struct{}       `json:"focus_topmost"`
	Fullscreen     *BoolEvent      `json:"fullscreen"`
	Maximize       *MaximizeEvent  `json:"maximize"`
	Tile           *TileEvent      `json:"tile"`
	Minimize       *BoolEvent      `json:"minimize"`
	Raise          *HandleEvent    `json:"raise"`
	Close          *HandleEvent    `json:"close"`
	StartMove      *MoveEvent      `json:"start_move"`
	ContinueMove   *CursorEvent    `json:"continue_move"`
	StartResize    *ResizeEvent    `json:"start_resize"`
	ContinueResize *CursorEvent    `json:"continue_resize"`
	FinishGrab     *CursorEvent    `json:"finish_grab"`
	ResetGrab      *struct{}       `json:"reset_grab"`
	LayoutChanged  *struct{}       `json:"layout_changed"`
	Dump           *struct{}       `json:"dump"`
}

// Name returns the JSON field name of the event's set variant, for
// logging, or "" if none is set.
func (e *Event) Name() string {
	v := reflect.ValueOf(e).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if !v.Field(i).IsNil() {
			tag := t.Field(i).Tag.Get("json")
			return tag
		}
	}
	return ""
}

// AddEvent registers a new handle with the demo host and adds it,
// still unmapped, to the view-management core; a separate map event
// maps it. SizeHints embeds host.SizeHints verbatim,
// so its JSON keys are its Go field names (BaseWidth, MinWidth, ...)
// rather than this file's snake_case convention.
type AddEvent struct {
	Handle          string         `json:"handle"`
	AppID           string         `json:"app_id"`
	Title           string         `json:"title"`
	IsXWayland      bool           `json:"is_xwayland"`
	RootHandle      string         `json:"root_handle"`
	IsModalDialog   bool           `json:"is_modal_dialog"`
	HasStrutPartial bool           `json:"has_strut_partial"`
	SizeHints       host.SizeHints `json:"size_hints"`
}

// MapEvent maps a previously-added handle, optionally specifying its
// initial focus mode ("never", "unlikely", "likely", "always"; default
// "likely").
type MapEvent struct {
	Handle    string `json:"handle"`
	FocusMode string `json:"focus_mode"`
}

type HandleEvent struct {
	Handle string `json:"handle"`
}

type SetStringEvent struct {
	Handle string `json:"handle"`
	Value  string `json:"value"`
}

type FocusEvent struct {
	Handle string `json:"handle"`
	Raise  bool   `json:"raise"`
}

type BoolEvent struct {
	Handle string `json:"handle"`
	Value  bool   `json:"value"`
}

// MaximizeEvent sets id's maximized axis ("none", "horizontal",
// "vertical", "both").
type MaximizeEvent struct {
	Handle string `json:"handle"`
	Axis   string `json:"axis"`
}

// TileEvent sets id's tiled edge ("none", "left", "right", "top",
// "bottom").
type TileEvent struct {
	Handle string `json:"handle"`
	Edge   string `json:"edge"`
}

// MoveEvent begins an interactive move against handle from the given
// cursor position.
type MoveEvent struct {
	Handle string `json:"handle"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

type CursorEvent struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ResizeEvent begins an interactive resize against handle from the
// given cursor position, dragging the named edge(s) (e.g. "top-left",
// "right").
type ResizeEvent struct {
	Handle string `json:"handle"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Edge   string `json:"edge"`
}

func parseFocusMode(s string) view.ViewFocusMode {
	switch s {
	case "never":
		return view.FocusNever
	case "unlikely":
		return view.FocusUnlikely
	case "always":
		return view.FocusAlways
	default:
		return view.FocusLikely
	}
}

func parseAxis(s string) view.ViewAxis {
	switch s {
	case "horizontal":
		return view.AxisHorizontal
	case "vertical":
		return view.AxisVertical
	case "both":
		return view.AxisBoth
	default:
		return view.AxisNone
	}
}

func parseEdges(s string) (view.LabEdge, error) {
	switch s {
	case "", "none":
		return view.EdgeNone, nil
	case "top":
		return view.EdgeTop, nil
	case "bottom":
		return view.EdgeBottom, nil
	case "left":
		return view.EdgeLeft, nil
	case "right":
		return view.EdgeRight, nil
	case "top-left":
		return view.EdgeTop | view.EdgeLeft, nil
	case "top-right":
		return view.EdgeTop | view.EdgeRight, nil
	case "bottom-left":
		return view.EdgeBottom | view.EdgeLeft, nil
	case "bottom-right":
		return view.EdgeBottom | view.EdgeRight, nil
	default:
		return view.EdgeNone, fmt.Errorf("unknown edge %q", s)
	}
}
