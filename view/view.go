// Package view implements the per-window state owner: the View entity
// and the ViewState it exposes read-only to the rest of the
// compositor. Every mutating method obeys one discipline: if the
// attribute actually changes, update it, notify
// the client protocol, refresh the decoration, and broadcast to
// foreign-toplevel observers with a terminating Done message.
// Operations that would be no-ops are idempotent.
package view

import (
	"viewcore/geom"
	"viewcore/host"
	"viewcore/rect"
)

const fallbackWidth, fallbackHeight = 640, 480

// View owns one application window's state and mediates every external
// effect (client configure, SSD update, foreign-toplevel broadcast) that
// follows from a change to that state.
type View struct {
	handle      host.NativeHandle
	isXWayland  bool
	protocol    host.ViewProtocol
	ssd         host.SSD
	outputs     host.OutputLayout
	icons       host.IconLoader

	state ViewState

	savedGeom     rect.Rect
	inLayoutChange bool
	lostOutput    bool

	observers    []host.ForeignToplevelHandle
	iconSurfaces []any
	iconBuffer   any
}

// New constructs a View bound to a host-owned native handle. protocol
// and ssd are the per-protocol collaborators;
// outputs and icons are the output-layout and icon-loading
// collaborators consulted by the geometry engine and icon lifecycle
// respectively.
func New(handle host.NativeHandle, isXWayland bool, protocol host.ViewProtocol, ssd host.SSD, outputs host.OutputLayout, icons host.IconLoader) *View {
	return &View{
		handle:     handle,
		isXWayland: isXWayland,
		protocol:   protocol,
		ssd:        ssd,
		outputs:    outputs,
		icons:      icons,
	}
}

// GetState returns a stable, read-only pointer to the view's state.
// Callers must not mutate the result.
func (v *View) GetState() *ViewState { return &v.state }

// Handle returns the host-owned native handle for this view.
func (v *View) Handle() host.NativeHandle { return v.handle }

// IsXWayland reports which protocol family created this view.
func (v *View) IsXWayland() bool { return v.isXWayland }

// RootID returns the ViewId of this view's transient/dialog group root,
// as reported by the protocol layer.
func (v *View) RootID() uint64 { return v.protocol.RootID(v.handle) }

// IsModalDialog reports whether the protocol layer considers this view
// a modal dialog.
func (v *View) IsModalDialog() bool { return v.protocol.IsModalDialog(v.handle) }

// HasStrutPartial reports whether this view reserves a panel strut and
// must therefore never be moved, resized, maximized, or fullscreened by
// the grab engine.
func (v *View) HasStrutPartial() bool { return v.protocol.HasStrutPartial(v.handle) }

// SetAppID updates the application id. On change, it rebroadcasts to
// observers and rebuilds the icon buffer.
func (v *View) SetAppID(appID string) {
	if v.state.AppID == appID {
		return
	}
	v.state.AppID = appID
	v.broadcastAppID()
	v.UpdateIcon()
}

// SetTitle updates the window title. On change, it rebroadcasts to
// observers and re-renders the SSD title.
func (v *View) SetTitle(title string) {
	if v.state.Title == title {
		return
	}
	v.state.Title = title
	v.broadcastTitle()
	if v.state.SSDEnabled {
		v.ssd.Update(v.handle)
	}
}

// SetMapped transitions the view to mapped, recording the requested
// focus mode. It returns whether the view became visible as a result
// (mapped && !minimized), for callers that need to refresh
// top-layer/focus policy only on an actual visibility change.
func (v *View) SetMapped(focusMode ViewFocusMode) (becameVisible bool) {
	wasVisible := v.state.Visible()
	v.state.Mapped = true
	v.state.EverMapped = true
	v.state.FocusMode = focusMode
	return v.state.Visible() && !wasVisible
}

// SetUnmapped transitions the view to unmapped, closing and draining
// all foreign-toplevel observers. It returns whether the view became
// hidden as a result.
func (v *View) SetUnmapped() (becameHidden bool) {
	wasVisible := v.state.Visible()
	v.state.Mapped = false
	v.closeObservers()
	return wasVisible && !v.state.Visible()
}

// SetActive updates activation state, dispatching to the
// protocol-specific activation call and rebroadcasting observer state.
func (v *View) SetActive(active bool) {
	if v.state.Active == active {
		return
	}
	v.state.Active = active
	v.protocol.SetActive(v.handle, active)
	v.ssd.SetActive(v.handle, active)
	v.broadcastState()
}

// SetSSDEnabled toggles server-side decoration.
func (v *View) SetSSDEnabled(enabled bool) {
	if v.state.SSDEnabled == enabled {
		return
	}
	v.state.SSDEnabled = enabled
	if enabled {
		v.ssd.Create(v.handle, v.iconBuffer)
		v.ssd.Update(v.handle)
	} else {
		v.ssd.Destroy(v.handle)
	}
}

// SetInhibitsKeybinds toggles whether this view inhibits compositor
// keybindings while focused (e.g. a terminal running another WM).
func (v *View) SetInhibitsKeybinds(inhibits bool) {
	if v.state.InhibitsKeybinds == inhibits {
		return
	}
	v.state.InhibitsKeybinds = inhibits
	v.ssd.SetInhibitsKeybinds(v.handle, inhibits)
}

// setMinimizedRaw is the low-level attribute setter used by the Views
// registry, which minimizes an entire transient group atomically.
func (v *View) setMinimizedRaw(minimized bool) (visibilityChanged bool) {
	if v.state.Minimized == minimized {
		return false
	}
	wasVisible := v.state.Visible()
	v.state.Minimized = minimized
	if v.isXWayland {
		v.protocol.Minimize(v.handle, minimized)
	}
	v.broadcastState()
	return wasVisible != v.state.Visible()
}

// SetMinimizedRaw exposes setMinimizedRaw to the views package.
func (v *View) SetMinimizedRaw(minimized bool) bool { return v.setMinimizedRaw(minimized) }

// setMaximizedRaw is the low-level attribute setter: on change it
// forwards to the protocol and broadcasts, with no geometry
// recomputation. Used directly by the grab engine, which manages
// geometry itself during an interactive gesture.
func (v *View) setMaximizedRaw(axis ViewAxis) {
	if v.state.Maximized == axis {
		return
	}
	v.state.Maximized = axis
	v.protocol.Maximize(v.handle, int(axis))
	v.broadcastState()
}

// SetMaximizedRaw exposes setMaximizedRaw to the grab package.
func (v *View) SetMaximizedRaw(axis ViewAxis) { v.setMaximizedRaw(axis) }

// setTiledRaw is the low-level attribute setter for tiled edges. Only
// xdg-shell clients are notified of tiling.
func (v *View) setTiledRaw(edges LabEdge) {
	if v.state.Tiled == edges {
		return
	}
	v.state.Tiled = edges
	if !v.isXWayland {
		v.protocol.NotifyTiled(v.handle)
	}
	v.broadcastState()
}

// SetTiledRaw exposes setTiledRaw to the grab package.
func (v *View) SetTiledRaw(edges LabEdge) { v.setTiledRaw(edges) }

// SetPendingGeom records the pending geometry without side effects,
// used on a client-initiated configure ack.
func (v *View) SetPendingGeom(geom rect.Rect) { v.state.Pending = geom }

// SetOutput reassigns the view's logical output.
func (v *View) SetOutput(output host.OutputID) { v.state.Output = output }

// AdjustSize clamps (width, height) to the client's size hints (ICCCM
// 4.1.2.3 rules applied by the geometry engine).
func (v *View) AdjustSize(width, height *int) {
	hints := v.protocol.SizeHints(v.handle)
	geom.AdjustSizeForHints(width, height, hints)
}

// MoveResize sends a configure request for geom if it differs from the
// currently pending geometry, recording the new pending geometry. If
// the view is floating, its output is reassigned to the output nearest
// the new geometry. Unless called from within an in-progress layout
// change, any stale saved_geom snapshot is invalidated.
func (v *View) MoveResize(g rect.Rect) {
	if v.state.Pending == g {
		return
	}
	v.protocol.Configure(v.handle, g)
	v.state.Pending = g
	if v.state.Floating() {
		v.state.Output = geom.NearestOutputTo(g, v.outputs)
	}
	if !v.inLayoutChange {
		v.savedGeom = rect.Rect{}
		v.lostOutput = false
	}
}

// CommitMove records the client's acknowledged top-left position,
// without touching the tracked size.
func (v *View) CommitMove(x, y int) {
	v.state.Current.X = x
	v.state.Current.Y = y
}

// CommitGeom reconciles a client's committed size against the pending
// request, anchoring the moving edge of an in-progress interactive
// resize (protocol-refusal handling). resizeEdges
// is the edge set, if any, of an active resize gesture; EdgeNone if
// none is in progress.
func (v *View) CommitGeom(width, height int, resizeEdges LabEdge) {
	cur := rect.Rect{X: v.state.Pending.X, Y: v.state.Pending.Y, Width: width, Height: height}
	if resizeEdges.Has(EdgeTop) {
		cur.Y = v.state.Pending.Y + v.state.Pending.Height - height
	}
	if resizeEdges.Has(EdgeLeft) {
		cur.X = v.state.Pending.X + v.state.Pending.Width - width
	}
	v.state.Current = cur
}

// AdjustInitialGeom computes and applies the default geometry for a
// newly-mapped view (compute_default), optionally
// relative to a parent rect, or keeping the requested position.
func (v *View) AdjustInitialGeom(relTo *rect.Rect, keepPosition bool) {
	g := v.state.Pending
	var rel rect.Rect
	if relTo != nil {
		rel = *relTo
	}
	usable := v.outputs.UsableArea(v.state.Output)
	margin := v.ssd.Margin(v.handle)
	geom.ComputeDefault(&g, usable, rel, margin, keepPosition)
	v.state.Pending = g
	v.state.Current = g
}

// StoreNaturalGeom captures the current per-axis "natural" geometry
// to restore to later. A no-op while fullscreen or tiled. For a
// floating or single-axis-maximized view, only the currently-free
// axis/axes are captured, which is the mechanism by which single-axis
// unmaximize restores only the relevant dimension.
func (v *View) StoreNaturalGeom() {
	if v.state.Fullscreen || v.state.Tiled != EdgeNone {
		return
	}
	if v.state.Maximized == AxisNone || v.state.Maximized == AxisVertical {
		v.state.NaturalGeom.X = v.state.Pending.X
		v.state.NaturalGeom.Width = v.state.Pending.Width
	}
	if v.state.Maximized == AxisNone || v.state.Maximized == AxisHorizontal {
		v.state.NaturalGeom.Y = v.state.Pending.Y
		v.state.NaturalGeom.Height = v.state.Pending.Height
	}
}

func (v *View) ensureOnscreen(g rect.Rect) rect.Rect {
	usable := v.outputs.UsableArea(v.state.Output)
	margin := v.ssd.Margin(v.handle)
	geom.EnsureOnscreen(&g, usable, margin)
	return g
}

func (v *View) naturalOrFallback() rect.Rect {
	n := v.state.NaturalGeom
	if rect.Empty(n) {
		bound := v.outputs.UsableArea(v.state.Output)
		n = rect.Center(fallbackWidth, fallbackHeight, bound)
	}
	return n
}

// applySpecialGeom recomputes and applies whichever geometry matches
// the view's current fullscreen/maximized/tiled flags, or its natural
// geometry if it is floating.
func (v *View) applySpecialGeom() {
	usable := v.outputs.UsableArea(v.state.Output)
	margin := v.ssd.Margin(v.handle)
	switch {
	case v.state.Fullscreen:
		v.MoveResize(v.outputs.LayoutCoords(v.state.Output))
	case v.state.Maximized != AxisNone:
		v.MoveResize(geom.ComputeMaximized(v.state.Maximized, v.naturalOrFallback(), usable, margin))
	case v.state.Tiled != EdgeNone:
		g := geom.ComputeTiled(v.state.Tiled, usable, margin)
		if !rect.Empty(g) {
			v.MoveResize(g)
		}
	default:
		v.MoveResize(v.ensureOnscreen(v.naturalOrFallback()))
	}
}

// Fullscreen is the high-level fullscreen toggle.
func (v *View) Fullscreen(fullscreen bool) {
	if v.state.Fullscreen == fullscreen {
		return
	}
	if fullscreen {
		v.StoreNaturalGeom()
	}
	v.state.Fullscreen = fullscreen
	v.protocol.SetFullscreen(v.handle, fullscreen)
	v.broadcastState()
	v.applySpecialGeom()
}

// Maximize is the high-level maximize operation.
// When isMoving is false, natural geometry is saved first (a drag-snap
// calls this with isMoving true, having already captured natural
// geometry at the start of the gesture).
func (v *View) Maximize(axis ViewAxis, isMoving bool) {
	if v.state.Maximized == axis {
		return
	}
	if !isMoving {
		v.StoreNaturalGeom()
	}
	v.setMaximizedRaw(axis)
	v.applySpecialGeom()
}

// Tile is the high-level tile operation, mirroring
// Maximize.
func (v *View) Tile(edges LabEdge, isMoving bool) {
	if v.state.Tiled == edges {
		return
	}
	if !isMoving {
		v.StoreNaturalGeom()
	}
	v.setTiledRaw(edges)
	v.applySpecialGeom()
}

// AdjustForLayoutChange reacts to an output layout change (monitor
// connect/disconnect/move).
func (v *View) AdjustForLayoutChange() {
	if rect.Empty(v.savedGeom) {
		v.savedGeom = v.state.Pending
	}
	v.inLayoutChange = true
	defer func() { v.inLayoutChange = false }()

	if !v.outputs.IsUsable(v.state.Output) {
		v.lostOutput = true
	}
	if v.state.Floating() || v.lostOutput {
		v.state.Output = geom.NearestOutputTo(v.savedGeom, v.outputs)
	}

	if !v.state.Floating() {
		v.applySpecialGeom()
		return
	}
	if v.protocol.HasStrutPartial(v.handle) {
		return
	}
	v.MoveResize(v.ensureOnscreen(v.savedGeom))
}

// Close requests the client close its top-level.
func (v *View) Close() { v.protocol.Close(v.handle) }

// OfferFocus asks the protocol layer to give this view keyboard focus,
// used by the registry's click-to-focus and alt-tab handling.
func (v *View) OfferFocus() { v.protocol.OfferFocus(v.handle) }

// Raise asks the protocol layer to restack this view's surface above
// its siblings, mirroring a stacking-order change already applied to
// the registry's own order slice.
func (v *View) Raise() { v.protocol.Raise(v.handle) }

// AddForeignToplevel registers a new observer for this view using wire,
// and immediately sends its initial state in the required ordering:
// app_id/title, then state, then done.
func (v *View) AddForeignToplevel(wire host.ForeignToplevelWire, client host.Resource, viewID uint64) {
	h := wire.Create(client, viewID)
	h.SendAppID(v.state.AppID)
	h.SendTitle(v.state.Title)
	h.SendState(v.toplevelState())
	h.SendDone()
	v.observers = append(v.observers, h)
}

// RemoveForeignToplevel tears down a single observer by identity.
func (v *View) RemoveForeignToplevel(h host.ForeignToplevelHandle) {
	for i, o := range v.observers {
		if o == h {
			o.Close()
			v.observers = append(v.observers[:i], v.observers[i+1:]...)
			return
		}
	}
}

func (v *View) closeObservers() {
	for _, o := range v.observers {
		o.Close()
	}
	v.observers = nil
}

func (v *View) toplevelState() host.ForeignToplevelState {
	return host.ForeignToplevelState{
		Maximized:  v.state.Maximized != AxisNone,
		Minimized:  v.state.Minimized,
		Activated:  v.state.Active,
		Fullscreen: v.state.Fullscreen,
	}
}

func (v *View) broadcastAppID() {
	for _, o := range v.observers {
		o.SendAppID(v.state.AppID)
		o.SendDone()
	}
}

func (v *View) broadcastTitle() {
	for _, o := range v.observers {
		o.SendTitle(v.state.Title)
		o.SendDone()
	}
}

func (v *View) broadcastState() {
	st := v.toplevelState()
	for _, o := range v.observers {
		o.SendState(st)
		o.SendDone()
	}
}

// HasObservers reports whether any foreign-toplevel observer is
// currently registered.
func (v *View) HasObservers() bool { return len(v.observers) > 0 }

// AddIconSurface takes ownership of a host-owned icon surface.
func (v *View) AddIconSurface(surface any) {
	v.iconSurfaces = append(v.iconSurfaces, surface)
	v.invalidateIcon()
}

// ClearIconSurfaces drops all icon surfaces owned by this view.
func (v *View) ClearIconSurfaces() {
	v.iconSurfaces = nil
	v.invalidateIcon()
}

func (v *View) invalidateIcon() {
	if v.iconBuffer != nil {
		v.icons.Drop(v.iconBuffer)
		v.iconBuffer = nil
	}
}

// UpdateIcon rebuilds the lazily-built icon buffer from the current
// icon surfaces and pushes it to the SSD and foreign-toplevel wire.
func (v *View) UpdateIcon() {
	v.invalidateIcon()
	if len(v.iconSurfaces) == 0 {
		return
	}
	w, h := v.ssd.IconBufferSize(v.handle)
	v.iconBuffer = v.icons.Load(v.iconSurfaces, w, h)
	if v.state.SSDEnabled {
		v.ssd.Update(v.handle)
	}
}

// GetIconBuffer returns the icon buffer without transferring ownership.
func (v *View) GetIconBuffer() any { return v.iconBuffer }
