// Package host declares the interfaces the surrounding compositor must
// implement so that the view-management core can call back into surface
// plumbing, rendering, output enumeration, and seat/cursor handling
// without the core ever depending on those concerns directly. Every
// type here is a small POD or a narrow interface; the core treats all
// of them as opaque handles and never constructs one itself.
package host

import "viewcore/rect"

// NativeHandle is an opaque, host-owned surface/window handle. The core
// never dereferences it; it is only ever passed back to the host.
type NativeHandle any

// OutputID identifies one physical output (display) in host-space. The
// zero value means "no output".
type OutputID uint64

// Resource is an opaque client resource handle (e.g. a wl_resource),
// used for foreign-toplevel client rosters.
type Resource any

// SizeHints carries ICCCM-style client size hints consulted during
// interactive resize (adjust_size_for_hints).
type SizeHints struct {
	BaseWidth, BaseHeight   int
	MinWidth, MinHeight     int
	WidthInc, HeightInc     int
}

// OutputLayout answers geometry questions about the physical output
// layout. The core never enumerates outputs itself.
type OutputLayout interface {
	// UsableArea returns the working area (layout coordinates minus
	// layer-shell exclusive zones) of output.
	UsableArea(output OutputID) rect.Rect
	// LayoutCoords returns the full layout-space rect of output,
	// ignoring any exclusive zones (used for fullscreen).
	LayoutCoords(output OutputID) rect.Rect
	// IsUsable reports whether output still exists and has a positive
	// usable area (false immediately after a disconnect).
	IsUsable(output OutputID) bool
	// NearestTo returns the output whose layout rect is closest to
	// (x, y).
	NearestTo(x, y int) OutputID
}

// ViewProtocol is the per-protocol (xdg-shell or XWayland) surface
// control surface a View drives. The host supplies one implementation
// per protocol family; View additionally tracks IsXWayland for any
// caller-visible behavior that differs by protocol.
type ViewProtocol interface {
	SetActive(handle NativeHandle, active bool)
	SetFullscreen(handle NativeHandle, fullscreen bool)
	Maximize(handle NativeHandle, axis int)
	Minimize(handle NativeHandle, minimized bool)
	Configure(handle NativeHandle, geom rect.Rect)
	NotifyTiled(handle NativeHandle)
	Close(handle NativeHandle)
	RootID(handle NativeHandle) uint64
	IsModalDialog(handle NativeHandle) bool
	SizeHints(handle NativeHandle) SizeHints
	HasStrutPartial(handle NativeHandle) bool
	OfferFocus(handle NativeHandle)
	Raise(handle NativeHandle)
}

// SSD is the server-side-decoration drawer. Rendering and icon
// rasterization are explicitly out of scope for the core; this
// interface is the seam.
type SSD interface {
	Margin(handle NativeHandle) rect.Border
	IconBufferSize(handle NativeHandle) (width, height int)
	Create(handle NativeHandle, iconBuffer any)
	Destroy(handle NativeHandle)
	Update(handle NativeHandle)
	SetActive(handle NativeHandle, active bool)
	SetInhibitsKeybinds(handle NativeHandle, inhibits bool)
}

// ForeignToplevelHandle is one observer registration (one panel/taskbar
// client watching one view) on the foreign-toplevel-management
// protocol.
type ForeignToplevelHandle interface {
	SendAppID(appID string)
	SendTitle(title string)
	SendState(state ForeignToplevelState)
	SendDone()
	Close()
}

// ForeignToplevelState is the state snapshot broadcast to observers in
// a single update batch, ordered: app_id/title,
// then state, then done.
type ForeignToplevelState struct {
	Maximized  bool
	Minimized  bool
	Activated  bool
	Fullscreen bool
}

// ForeignToplevelWire creates new observer handles. The Registry holds a
// single ForeignToplevelWire shared by every client registered via
// Registry.AddForeignToplevelClient; Create is called once per
// (client, view) pair.
type ForeignToplevelWire interface {
	Create(client Resource, viewID uint64) ForeignToplevelHandle
}

// Seat is the cursor/keyboard focus side channel.
type Seat interface {
	CursorUpdateFocus()
	FocusOverrideEnd()
}

// LayerShell controls top-layer (panel) visibility per output.
type LayerShell interface {
	ShowAllTopLayer()
	HideTopLayerOnOutput(output OutputID)
}

// IconLoader builds and releases the icon buffer shown in SSD titlebars
// and foreign-toplevel listings. Rasterization itself is out of scope;
// this only manages the buffer handle's lifetime.
type IconLoader interface {
	Load(surfaces []any, width, height int) any
	Drop(buffer any)
}
