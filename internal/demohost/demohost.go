// Package demohost is a stand-in compositor: in-memory fixed outputs
// and logged no-op collaborators implementing every interface package
// host declares, so that cmd/viewcoredemo can drive the view-management
// core without a real Wayland/X11 backend.
package demohost

import (
	"fmt"
	"strings"

	"viewcore/host"
	"viewcore/internal/logx"
	"viewcore/rect"
	"viewcore/view"
)

// Output is one fixed physical output known to Outputs.
type Output struct {
	ID     host.OutputID
	Name   string
	Layout rect.Rect
	// Margin is the layer-shell exclusive zone reserved out of Layout
	// to produce UsableArea, e.g. a top panel strip.
	Margin rect.Border
}

// Outputs is a fixed host.OutputLayout with no hotplug support.
type Outputs struct {
	outs []Output
}

// NewOutputs builds a fixed output layout from outs.
func NewOutputs(outs ...Output) *Outputs {
	return &Outputs{outs: outs}
}

func (o *Outputs) find(id host.OutputID) (Output, bool) {
	for _, out := range o.outs {
		if out.ID == id {
			return out, true
		}
	}
	return Output{}, false
}

func (o *Outputs) UsableArea(id host.OutputID) rect.Rect {
	out, ok := o.find(id)
	if !ok {
		return rect.Rect{}
	}
	return rect.Rect{
		X:      out.Layout.X + out.Margin.Left,
		Y:      out.Layout.Y + out.Margin.Top,
		Width:  out.Layout.Width - out.Margin.Left - out.Margin.Right,
		Height: out.Layout.Height - out.Margin.Top - out.Margin.Bottom,
	}
}

func (o *Outputs) LayoutCoords(id host.OutputID) rect.Rect {
	out, ok := o.find(id)
	if !ok {
		return rect.Rect{}
	}
	return out.Layout
}

func (o *Outputs) IsUsable(id host.OutputID) bool {
	_, ok := o.find(id)
	return ok
}

func (o *Outputs) NearestTo(x, y int) host.OutputID {
	var best host.OutputID
	bestDist := -1
	for _, out := range o.outs {
		cx := out.Layout.X + out.Layout.Width/2
		cy := out.Layout.Y + out.Layout.Height/2
		dx, dy := cx-x, cy-y
		dist := dx*dx + dy*dy
		if bestDist == -1 || dist < bestDist {
			bestDist = dist
			best = out.ID
		}
	}
	return best
}

// HandleMeta carries the per-handle metadata the real protocol
// implementations would otherwise keep alongside the surface itself:
// transient-group root, modal-dialog-ness, strut-partial, and client
// size hints. cmd/viewcoredemo sets this once when a handle is added.
type HandleMeta struct {
	RootID          uint64
	IsModalDialog   bool
	HasStrutPartial bool
	SizeHints       host.SizeHints
}

// Protocol is a logged host.ViewProtocol backed by a HandleMeta table
// the caller populates through Register.
type Protocol struct {
	log  *logx.Logger
	meta map[host.NativeHandle]*HandleMeta
}

// NewProtocol returns a Protocol with an empty handle table.
func NewProtocol() *Protocol {
	return &Protocol{log: logx.For("protocol"), meta: make(map[host.NativeHandle]*HandleMeta)}
}

// Register associates handle with the metadata its View should report.
func (p *Protocol) Register(handle host.NativeHandle, m HandleMeta) {
	p.meta[handle] = &m
}

func (p *Protocol) get(handle host.NativeHandle) HandleMeta {
	if m, ok := p.meta[handle]; ok {
		return *m
	}
	return HandleMeta{}
}

func (p *Protocol) SetActive(handle host.NativeHandle, active bool) {
	p.log.Debugf("%v: set_active(%v)", handle, active)
}

func (p *Protocol) SetFullscreen(handle host.NativeHandle, fullscreen bool) {
	p.log.Debugf("%v: set_fullscreen(%v)", handle, fullscreen)
}

func (p *Protocol) Maximize(handle host.NativeHandle, axis int) {
	p.log.Debugf("%v: maximize(%v)", handle, axis)
}

func (p *Protocol) Minimize(handle host.NativeHandle, minimized bool) {
	p.log.Debugf("%v: minimize(%v)", handle, minimized)
}

func (p *Protocol) Configure(handle host.NativeHandle, geom rect.Rect) {
	p.log.Debugf("%v: configure(%+v)", handle, geom)
}

func (p *Protocol) NotifyTiled(handle host.NativeHandle) {
	p.log.Debugf("%v: notify_tiled", handle)
}

func (p *Protocol) Close(handle host.NativeHandle) {
	p.log.Infof("%v: close requested", handle)
}

func (p *Protocol) RootID(handle host.NativeHandle) uint64 { return p.get(handle).RootID }

func (p *Protocol) IsModalDialog(handle host.NativeHandle) bool { return p.get(handle).IsModalDialog }

func (p *Protocol) SizeHints(handle host.NativeHandle) host.SizeHints { return p.get(handle).SizeHints }

func (p *Protocol) HasStrutPartial(handle host.NativeHandle) bool { return p.get(handle).HasStrutPartial }

func (p *Protocol) OfferFocus(handle host.NativeHandle) {
	p.log.Debugf("%v: offer_focus", handle)
}

func (p *Protocol) Raise(handle host.NativeHandle) {
	p.log.Debugf("%v: raise", handle)
}

// SSD is a logged host.SSD with a fixed titlebar margin and icon size.
type SSD struct {
	log        *logx.Logger
	margin     rect.Border
	iconWidth  int
	iconHeight int
}

// NewSSD returns an SSD reserving a fixed titlebar strip of height
// titlebarHeight and square icons of iconSize pixels.
func NewSSD(titlebarHeight, iconSize int) *SSD {
	return &SSD{
		log:        logx.For("ssd"),
		margin:     rect.Border{Top: titlebarHeight},
		iconWidth:  iconSize,
		iconHeight: iconSize,
	}
}

func (s *SSD) Margin(host.NativeHandle) rect.Border { return s.margin }

func (s *SSD) IconBufferSize(host.NativeHandle) (int, int) { return s.iconWidth, s.iconHeight }

func (s *SSD) Create(handle host.NativeHandle, iconBuffer any) {
	s.log.Debugf("%v: create decoration", handle)
}

func (s *SSD) Destroy(handle host.NativeHandle) {
	s.log.Debugf("%v: destroy decoration", handle)
}

func (s *SSD) Update(handle host.NativeHandle) {
	s.log.Debugf("%v: update decoration", handle)
}

func (s *SSD) SetActive(handle host.NativeHandle, active bool) {
	s.log.Debugf("%v: decoration set_active(%v)", handle, active)
}

func (s *SSD) SetInhibitsKeybinds(handle host.NativeHandle, inhibits bool) {
	s.log.Debugf("%v: decoration set_inhibits_keybinds(%v)", handle, inhibits)
}

// Icons is a no-op host.IconLoader: it returns an opaque placeholder
// instead of rasterizing anything, since rendering is out of scope.
type Icons struct{}

func (Icons) Load(surfaces []any, width, height int) any {
	return struct{ W, H int }{width, height}
}

func (Icons) Drop(any) {}

// LayerShell is a logged host.LayerShell.
type LayerShell struct {
	log *logx.Logger
}

// NewLayerShell returns a logged LayerShell.
func NewLayerShell() *LayerShell { return &LayerShell{log: logx.For("layer-shell")} }

func (l *LayerShell) ShowAllTopLayer() { l.log.Debugf("show_all_top_layer") }

func (l *LayerShell) HideTopLayerOnOutput(output host.OutputID) {
	l.log.Debugf("hide_top_layer_on_output(%v)", output)
}

// Seat is a logged host.Seat.
type Seat struct {
	log *logx.Logger
}

// NewSeat returns a logged Seat.
func NewSeat() *Seat { return &Seat{log: logx.For("seat")} }

func (s *Seat) CursorUpdateFocus() { s.log.Debugf("cursor_update_focus") }

func (s *Seat) FocusOverrideEnd() { s.log.Debugf("focus_override_end") }

// ToplevelHandle is a logged host.ForeignToplevelHandle.
type ToplevelHandle struct {
	log      *logx.Logger
	client   host.Resource
	viewID   uint64
}

func (h *ToplevelHandle) SendAppID(appID string) {
	h.log.Debugf("client %v, view %d: app_id=%q", h.client, h.viewID, appID)
}

func (h *ToplevelHandle) SendTitle(title string) {
	h.log.Debugf("client %v, view %d: title=%q", h.client, h.viewID, title)
}

func (h *ToplevelHandle) SendState(state host.ForeignToplevelState) {
	h.log.Debugf("client %v, view %d: state=%+v", h.client, h.viewID, state)
}

func (h *ToplevelHandle) SendDone() {
	h.log.Debugf("client %v, view %d: done", h.client, h.viewID)
}

func (h *ToplevelHandle) Close() {
	h.log.Debugf("client %v, view %d: closed", h.client, h.viewID)
}

// ToplevelWire is a logged host.ForeignToplevelWire.
type ToplevelWire struct {
	log *logx.Logger
}

// NewToplevelWire returns a logged ToplevelWire.
func NewToplevelWire() *ToplevelWire { return &ToplevelWire{log: logx.For("foreign-toplevel")} }

func (w *ToplevelWire) Create(client host.Resource, viewID uint64) host.ForeignToplevelHandle {
	w.log.Debugf("client %v subscribed to view %d", client, viewID)
	return &ToplevelHandle{log: w.log, client: client, viewID: viewID}
}

// DumpStack renders the current back-to-front stacking order as an
// ASCII listing, topmost first, for watching a running demo session
// from outside the process, the way a panel or status-bar indicator
// would.
func DumpStack(count int, nth func(int) *view.View) string {
	var b strings.Builder
	for i := count - 1; i >= 0; i-- {
		v := nth(i)
		if v == nil {
			continue
		}
		s := v.GetState()
		marker := "  "
		if s.Active {
			marker = "->"
		}
		var flags strings.Builder
		if s.Minimized {
			flags.WriteString(" [minimized]")
		}
		if s.Fullscreen {
			flags.WriteString(" [fullscreen]")
		}
		if s.Maximized != view.AxisNone {
			flags.WriteString(" [maximized]")
		}
		if s.Tiled != view.EdgeNone {
			flags.WriteString(" [tiled]")
		}
		fmt.Fprintf(&b, "%s %s: %s @ (%d,%d %dx%d)%s\n",
			marker, s.AppID, s.Title, s.Current.X, s.Current.Y, s.Current.Width, s.Current.Height, flags.String())
	}
	return b.String()
}
