// Package api is the flat, process-wide entry point the host
// compositor calls into: a C-ABI-style view_*/views_* function table
// exposed as package-level Go functions instead of an extern "C"
// symbol table. Under the hood it is one lazily-constructed
// views.Registry singleton, reached through those functions rather
// than passed around explicitly, which is Go's idiom for a
// process-wide façade.
package api

import (
	"sync"

	"viewcore/host"
	"viewcore/rect"
	"viewcore/view"
	"viewcore/views"
)

var (
	once     sync.Once
	registry *views.Registry
)

// Init constructs the singleton Registry bound to the host's
// collaborators. It must be called exactly once, before any other
// package function, and is a no-op on subsequent calls.
func Init(outputs host.OutputLayout, layerShell host.LayerShell, seat host.Seat, tlWire host.ForeignToplevelWire) {
	once.Do(func() {
		registry = views.NewRegistry(outputs, layerShell, seat, tlWire)
	})
}

// Teardown drops the singleton so a subsequent Init can rebuild it.
// Only meaningful in tests; the real host process never calls it.
func Teardown() {
	once = sync.Once{}
	registry = nil
}

// Add registers a new view, returning its id.
func Add(handle host.NativeHandle, isXWayland bool, protocol host.ViewProtocol, ssd host.SSD, icons host.IconLoader) views.ViewID {
	return registry.Add(handle, isXWayland, protocol, ssd, icons)
}

// Remove destroys a view's registry entry.
func Remove(id views.ViewID) { registry.Remove(id) }

// Count returns the number of live views.
func Count() int { return registry.Count() }

// Nth returns the view at stacking position n, or nil.
func Nth(n int) *view.View { return registry.Nth(n) }

// GetState returns id's state, or nil if id is not registered.
func GetState(id views.ViewID) *view.ViewState {
	v, ok := registry.GetView(id)
	if !ok {
		return nil
	}
	return v.GetState()
}

// AdjustSize clamps (width, height) to id's client size hints.
func AdjustSize(id views.ViewID, width, height *int) {
	if v, ok := registry.GetView(id); ok {
		v.AdjustSize(width, height)
	}
}

// SetAppID updates id's application id.
func SetAppID(id views.ViewID, appID string) {
	if v, ok := registry.GetView(id); ok {
		v.SetAppID(appID)
	}
}

// SetTitle updates id's title.
func SetTitle(id views.ViewID, title string) {
	if v, ok := registry.GetView(id); ok {
		v.SetTitle(title)
	}
}

// MapCommon maps id, returning its view if it actually became visible.
func MapCommon(id views.ViewID, focusMode view.ViewFocusMode) *view.View {
	return registry.MapCommon(id, focusMode)
}

// UnmapCommon unmaps id, returning its view if it actually became hidden.
func UnmapCommon(id views.ViewID) *view.View { return registry.UnmapCommon(id) }

// GetActive returns the currently-focused view, or nil.
func GetActive() *view.View { return registry.GetActive() }

// SetPendingGeom records id's pending geometry without side effects.
func SetPendingGeom(id views.ViewID, g rect.Rect) {
	if v, ok := registry.GetView(id); ok {
		v.SetPendingGeom(g)
	}
}

// MoveResize requests a configure of id to geometry g.
func MoveResize(id views.ViewID, g rect.Rect) {
	if v, ok := registry.GetView(id); ok {
		v.MoveResize(g)
	}
}

// CommitMove records id's client-acknowledged top-left position.
func CommitMove(id views.ViewID, x, y int) {
	if v, ok := registry.GetView(id); ok {
		v.CommitMove(x, y)
	}
}

// CommitGeom reconciles id's client-committed size, anchoring the
// moving edge of an in-progress resize if one targets id.
func CommitGeom(id views.ViewID, width, height int) {
	v, ok := registry.GetView(id)
	if !ok {
		return
	}
	edges := view.EdgeNone
	if registry.GetResizing() == v {
		edges = registry.GetResizeEdges()
	}
	v.CommitGeom(width, height, edges)
}

// SetInitialGeom computes id's default geometry, optionally relative
// to relTo, or keeping its requested position.
func SetInitialGeom(id views.ViewID, relTo *rect.Rect, keepPosition bool) {
	if v, ok := registry.GetView(id); ok {
		v.AdjustInitialGeom(relTo, keepPosition)
	}
}

// SetOutput reassigns id's logical output.
func SetOutput(id views.ViewID, output host.OutputID) {
	if v, ok := registry.GetView(id); ok {
		v.SetOutput(output)
	}
}

// AdjustForLayoutChange reacts to an output layout change across every
// view.
func AdjustForLayoutChange() { registry.AdjustForLayoutChange() }

// SetSSDEnabled toggles server-side decoration for id.
func SetSSDEnabled(id views.ViewID, enabled bool) {
	if v, ok := registry.GetView(id); ok {
		v.SetSSDEnabled(enabled)
	}
}

// Fullscreen toggles id's fullscreen state, returning its view if it
// actually changed.
func Fullscreen(id views.ViewID, fullscreen bool) *view.View {
	return registry.Fullscreen(id, fullscreen)
}

// Maximize sets id's maximized axis, returning its view if it
// actually changed.
func Maximize(id views.ViewID, axis view.ViewAxis) *view.View {
	return registry.Maximize(id, axis)
}

// Tile sets id's tiled edges, unmaximizing first if edges is non-empty.
func Tile(id views.ViewID, edges view.LabEdge) *view.View {
	return registry.Tile(id, edges)
}

// Minimize minimizes or restores id's whole transient group atomically.
func Minimize(id views.ViewID, minimized bool) *view.View {
	return registry.Minimize(id, minimized)
}

// Raise restacks id's transient group to the front.
func Raise(id views.ViewID) { registry.Raise(id) }

// Focus focuses id, redirecting to an open modal dialog if any.
// Unminimizing counts as focusing: if id was minimized, this call
// unminimizes, raises, and focuses it in one step.
func Focus(id views.ViewID, raise bool) {
	registry.Focus(id, raise)
}

// FocusTopmost focuses the frontmost visible, focusable view.
func FocusTopmost() { registry.FocusTopmost() }

// SetInhibitsKeybinds toggles whether id inhibits compositor keybinds
// while focused.
func SetInhibitsKeybinds(id views.ViewID, inhibits bool) {
	if v, ok := registry.GetView(id); ok {
		v.SetInhibitsKeybinds(inhibits)
	}
}

// Close requests id's client close its top-level.
func Close(id views.ViewID) {
	if v, ok := registry.GetView(id); ok {
		v.Close()
	}
}

// AddForeignToplevelClient registers client's interest in every
// currently-focusable view.
func AddForeignToplevelClient(client host.Resource) { registry.AddForeignToplevelClient(client) }

// RemoveForeignToplevelClient drops client from the roster.
func RemoveForeignToplevelClient(client host.Resource) {
	registry.RemoveForeignToplevelClient(client)
}

// RemoveForeignToplevel tears down a single observer handle on id.
func RemoveForeignToplevel(id views.ViewID, h host.ForeignToplevelHandle) {
	if v, ok := registry.GetView(id); ok {
		v.RemoveForeignToplevel(h)
	}
}

// AddIconSurface takes ownership of a host-owned icon surface for id.
func AddIconSurface(id views.ViewID, surface any) {
	if v, ok := registry.GetView(id); ok {
		v.AddIconSurface(surface)
	}
}

// ClearIconSurfaces drops all icon surfaces owned by id.
func ClearIconSurfaces(id views.ViewID) {
	if v, ok := registry.GetView(id); ok {
		v.ClearIconSurfaces()
	}
}

// GetIconBuffer returns id's icon buffer without transferring ownership.
func GetIconBuffer(id views.ViewID) any {
	v, ok := registry.GetView(id)
	if !ok {
		return nil
	}
	return v.GetIconBuffer()
}

// UpdateIcon rebuilds id's icon buffer from its current icon surfaces.
func UpdateIcon(id views.ViewID) {
	if v, ok := registry.GetView(id); ok {
		v.UpdateIcon()
	}
}

// SetGrabContext begins tracking a new interactive gesture against id.
func SetGrabContext(id views.ViewID, cursorX, cursorY int, edges view.LabEdge) {
	registry.SetGrabContext(id, cursorX, cursorY, edges)
}

// StartMove begins an interactive move of id.
func StartMove(id views.ViewID) bool { return registry.StartMove(id) }

// ContinueMove advances the in-progress move to the cursor's position.
func ContinueMove(cursorX, cursorY int) { registry.ContinueMove(cursorX, cursorY) }

// StartResize begins an interactive resize of id.
func StartResize(id views.ViewID, edges view.LabEdge) bool {
	return registry.StartResize(id, edges)
}

// GetResizing returns the view under an interactive resize, or nil.
func GetResizing() *view.View { return registry.GetResizing() }

// GetResizeEdges returns the edge set of the in-progress grab.
func GetResizeEdges() view.LabEdge { return registry.GetResizeEdges() }

// ContinueResize advances the in-progress resize to the cursor's
// position.
func ContinueResize(cursorX, cursorY int) { registry.ContinueResize(cursorX, cursorY) }

// FinishGrab ends an interactive gesture, snapping a moved view to an
// output edge if the cursor finished within the snap threshold of one.
func FinishGrab(cursorX, cursorY int) {
	registry.SnapToEdge(cursorX, cursorY)
	registry.ResetGrabFor(0)
}

// ResetGrab unconditionally cancels any in-progress gesture.
func ResetGrab() { registry.ResetGrabFor(0) }

// BuildCycleList rebuilds the alt-tab candidate list.
func BuildCycleList() { registry.BuildCycleList() }

// CycleListLen returns the length of the last-built cycle list.
func CycleListLen() int { return registry.CycleListLen() }

// CycleListNth returns the nth entry of the last-built cycle list, or nil.
func CycleListNth(n int) *view.View { return registry.CycleListNth(n) }
