// Package views owns the Registry: the stacking order, focus, and
// foreign-toplevel client roster shared across every View. It is the
// only place an interactive grab, a raise, or a focus change touches
// more than one view at a time; everything else is delegated straight
// through to the view package.
package views

import (
	"viewcore/grab"
	"viewcore/host"
	"viewcore/view"
)

// ViewID identifies one view for the lifetime of the process. The zero
// value means "no view", mirroring the host's NULL-pointer convention.
type ViewID uint64

// Registry owns every live View, their back-to-front stacking order,
// the active (focused) view, the foreign-toplevel client roster, and
// the single in-progress interactive grab, if any.
type Registry struct {
	byID      map[ViewID]*view.View
	maxUsedID ViewID
	order     []ViewID // back-to-front: order[len-1] is topmost
	activeID  ViewID

	outputs    host.OutputLayout
	layerShell host.LayerShell
	seat       host.Seat
	tlWire     host.ForeignToplevelWire

	foreignToplevelClients []host.Resource

	grab   grab.ViewGrab
	grabID ViewID

	cycleList []ViewID
}

// NewRegistry constructs an empty Registry bound to the host
// collaborators consulted by stacking-order and focus operations.
func NewRegistry(outputs host.OutputLayout, layerShell host.LayerShell, seat host.Seat, tlWire host.ForeignToplevelWire) *Registry {
	return &Registry{
		byID:       make(map[ViewID]*view.View),
		outputs:    outputs,
		layerShell: layerShell,
		seat:       seat,
		tlWire:     tlWire,
	}
}

// Add constructs a new View bound to handle and registers it at the
// front of the stacking order, returning its newly-allocated id.
func (r *Registry) Add(handle host.NativeHandle, isXWayland bool, protocol host.ViewProtocol, ssd host.SSD, icons host.IconLoader) ViewID {
	r.maxUsedID++
	id := r.maxUsedID
	r.byID[id] = view.New(handle, isXWayland, protocol, ssd, r.outputs, icons)
	r.order = append(r.order, id)
	return id
}

// Remove destroys a view's registry entry. Any in-progress grab held
// against it is cancelled first.
func (r *Registry) Remove(id ViewID) {
	r.ResetGrabFor(id)
	delete(r.byID, id)
	r.order = removeID(r.order, id)
}

func removeID(ids []ViewID, id ViewID) []ViewID {
	out := ids[:0]
	for _, i := range ids {
		if i != id {
			out = append(out, i)
		}
	}
	return out
}

// GetView returns the view registered under id, if any.
func (r *Registry) GetView(id ViewID) (*view.View, bool) {
	v, ok := r.byID[id]
	return v, ok
}

// Count returns the number of live views.
func (r *Registry) Count() int { return len(r.order) }

// Nth returns the view at position n of the stacking order (0 is the
// bottommost), or nil if n is out of range.
func (r *Registry) Nth(n int) *view.View {
	if n < 0 || n >= len(r.order) {
		return nil
	}
	return r.byID[r.order[n]]
}

// RootOf returns the ViewId of id's transient/dialog group root, or 0
// if id is not registered.
func (r *Registry) RootOf(id ViewID) ViewID {
	v, ok := r.byID[id]
	if !ok {
		return 0
	}
	return ViewID(v.RootID())
}

// ModalDialogOf returns the topmost mapped modal dialog belonging to
// id's transient group (possibly id itself), searched in reverse
// stacking order so the frontmost dialog wins.
func (r *Registry) ModalDialogOf(id ViewID) (ViewID, bool) {
	v, ok := r.byID[id]
	if !ok {
		return 0, false
	}
	if v.GetState().Mapped && v.IsModalDialog() {
		return id, true
	}
	root := r.RootOf(id)
	for i := len(r.order) - 1; i >= 0; i-- {
		cand := r.order[i]
		if cand == id || cand == root {
			continue
		}
		cv, ok := r.byID[cand]
		if ok && cv.GetState().Mapped && ViewID(cv.RootID()) == root && cv.IsModalDialog() {
			return cand, true
		}
	}
	return 0, false
}

// MapCommon maps id with focusMode, registers it with every
// foreign-toplevel client roster if it is focusable, and returns the
// view if this actually made it visible (nil otherwise, for callers
// that only need to act on an actual visibility change).
func (r *Registry) MapCommon(id ViewID, focusMode view.ViewFocusMode) *view.View {
	v, ok := r.byID[id]
	if !ok {
		return nil
	}
	becameVisible := v.SetMapped(focusMode)
	if v.GetState().Focusable() {
		for _, client := range r.foreignToplevelClients {
			v.AddForeignToplevel(r.tlWire, client, uint64(id))
		}
	}
	if becameVisible {
		r.updateTopLayerVisibility()
		return v
	}
	return nil
}

// UnmapCommon unmaps id, returning the view if this actually hid it.
func (r *Registry) UnmapCommon(id ViewID) *view.View {
	v, ok := r.byID[id]
	if !ok {
		return nil
	}
	becameHidden := v.SetUnmapped()
	if becameHidden {
		r.updateTopLayerVisibility()
		return v
	}
	return nil
}

// GetActive returns the currently-focused view, or nil.
func (r *Registry) GetActive() *view.View { return r.byID[r.activeID] }

// setActive transfers activation from the previous active view to id,
// notifying both; at most one view is ever active at a time.
func (r *Registry) setActive(id ViewID) {
	if id == r.activeID {
		return
	}
	prevID := r.activeID
	r.activeID = id
	if prev, ok := r.byID[prevID]; ok {
		prev.SetActive(false)
	}
	if v, ok := r.byID[id]; ok {
		v.SetActive(true)
	}
}

// updateTopLayerVisibility shows every output's panel layer, then
// hides it again on any output whose topmost visible view is
// fullscreen.
func (r *Registry) updateTopLayerVisibility() {
	r.layerShell.ShowAllTopLayer()
	seen := make(map[host.OutputID]bool)
	for i := len(r.order) - 1; i >= 0; i-- {
		v, ok := r.byID[r.order[i]]
		if !ok {
			continue
		}
		st := v.GetState()
		if !st.Visible() || !r.outputs.IsUsable(st.Output) || seen[st.Output] {
			continue
		}
		if st.Fullscreen {
			r.layerShell.HideTopLayerOnOutput(st.Output)
		}
		seen[st.Output] = true
	}
}

// AdjustForLayoutChange reacts to an output layout change across every
// view, then refreshes top-layer visibility once for the whole batch.
func (r *Registry) AdjustForLayoutChange() {
	for _, id := range r.order {
		r.byID[id].AdjustForLayoutChange()
	}
	r.updateTopLayerVisibility()
}

// cancelGrabIfActive clears any in-progress grab held against id. A
// fullscreen, maximize-axis, or tile change invalidates the gesture's
// cached origin geometry, so the grab is always cancelled rather than
// left to desync (resolves the interaction leaves to
// the registry).
func (r *Registry) cancelGrabIfActive(id ViewID) {
	if r.grabID == id {
		r.ResetGrabFor(id)
	}
}

// Fullscreen toggles id's fullscreen state, returning the view if it
// actually changed.
func (r *Registry) Fullscreen(id ViewID, fullscreen bool) *view.View {
	v, ok := r.byID[id]
	if !ok {
		return nil
	}
	was := v.GetState().Fullscreen
	r.cancelGrabIfActive(id)
	v.Fullscreen(fullscreen)
	if v.GetState().Fullscreen == was {
		return nil
	}
	r.updateTopLayerVisibility()
	return v
}

// Maximize sets id's maximized axis, returning the view if it actually
// changed.
func (r *Registry) Maximize(id ViewID, axis view.ViewAxis) *view.View {
	v, ok := r.byID[id]
	if !ok {
		return nil
	}
	if v.GetState().Maximized == axis {
		return nil
	}
	r.cancelGrabIfActive(id)
	v.Maximize(axis, false)
	return v
}

// Tile sets id's tiled edges. A non-empty edge set first clears any
// maximized axis, since maximizing would otherwise fight the tile for
// the view's geometry (mirrors the host's C-level view_tile wrapper).
func (r *Registry) Tile(id ViewID, edges view.LabEdge) *view.View {
	v, ok := r.byID[id]
	if !ok {
		return nil
	}
	if edges != view.EdgeNone {
		r.Maximize(id, view.AxisNone)
	}
	if v.GetState().Tiled == edges {
		return nil
	}
	r.cancelGrabIfActive(id)
	v.Tile(edges, false)
	return v
}

// Minimize minimizes or restores id and every other view sharing its
// transient-group root atomically, returning the view if visibility
// actually changed for any of them. On an actual change, unminimizing
// focuses id, minimizing falls back to FocusTopmost if the active view
// is no longer visible, top-layer visibility is refreshed, and a grab
// held against any view in the minimized set is reset. Focus's
// unminimize-and-focus short-circuit (Focus calls Minimize(id, false)
// first) relies on this: once Minimize has already unminimized and
// focused id, the second call is a no-op and Focus falls through.
func (r *Registry) Minimize(id ViewID, minimized bool) *view.View {
	v, ok := r.byID[id]
	if !ok || v.GetState().Minimized == minimized {
		return nil
	}
	root := r.RootOf(id)
	visibilityChanged := false
	grabInSet := false
	for vid, other := range r.byID {
		if ViewID(other.RootID()) == root {
			if other.SetMinimizedRaw(minimized) {
				visibilityChanged = true
			}
			if vid == r.grabID {
				grabInSet = true
			}
		}
	}
	if !visibilityChanged {
		return nil
	}
	if !minimized {
		r.Focus(id, true)
	} else if active := r.GetActive(); active == nil || !active.GetState().Visible() {
		r.FocusTopmost()
	}
	r.updateTopLayerVisibility()
	if grabInSet {
		r.ResetGrabFor(r.grabID)
	}
	return v
}

// Raise moves id, its transient-group root, and every other view
// sharing that root to the front of the stacking order together,
// preserving their relative order, then updates top-layer visibility
// and the host's cursor focus.
func (r *Registry) Raise(id ViewID) {
	if len(r.order) > 0 {
		front := r.order[len(r.order)-1]
		if id == front || r.RootOf(front) == id {
			return
		}
	}
	if _, ok := r.byID[id]; !ok {
		return
	}
	root := r.RootOf(id)
	group := make(map[ViewID]bool)
	toRaise := []ViewID{root}
	group[root] = true
	for _, i := range r.order {
		if i != id && i != root && r.RootOf(i) == root {
			toRaise = append(toRaise, i)
			group[i] = true
		}
	}
	if id != root {
		toRaise = append(toRaise, id)
		group[id] = true
	}
	for _, i := range toRaise {
		if v, ok := r.byID[i]; ok {
			v.Raise()
		}
	}
	remaining := r.order[:0:0]
	for _, i := range r.order {
		if !group[i] {
			remaining = append(remaining, i)
		}
	}
	r.order = append(remaining, toRaise...)
	r.updateTopLayerVisibility()
	r.seat.CursorUpdateFocus()
}

// AddForeignToplevelClient registers client's interest in every
// currently-focusable view.
func (r *Registry) AddForeignToplevelClient(client host.Resource) {
	r.foreignToplevelClients = append(r.foreignToplevelClients, client)
	for id, v := range r.byID {
		if v.GetState().Focusable() {
			v.AddForeignToplevel(r.tlWire, client, uint64(id))
		}
	}
}

// RemoveForeignToplevelClient drops client from the roster. Existing
// per-view observer handles are torn down individually as each view
// notices the client's resource destruction; the
// roster only governs future views.
func (r *Registry) RemoveForeignToplevelClient(client host.Resource) {
	clients := r.foreignToplevelClients[:0]
	for _, c := range r.foreignToplevelClients {
		if c != client {
			clients = append(clients, c)
		}
	}
	r.foreignToplevelClients = clients
}

// Focus gives id keyboard focus, redirecting to its topmost modal
// dialog if one exists, optionally raising the resolved target first.
// Unminimizing counts as focusing: if id was minimized, Minimize
// itself raises and focuses it, so Focus short-circuits once that
// call reports an actual change.
func (r *Registry) Focus(id ViewID, raise bool) {
	if r.Minimize(id, false) != nil {
		return
	}
	target := id
	if modal, ok := r.ModalDialogOf(id); ok {
		target = modal
	}
	v, ok := r.byID[target]
	if !ok || !v.GetState().Focusable() {
		return
	}
	if raise {
		r.Raise(target)
	}
	r.setActive(target)
	v.OfferFocus()
}

// FocusTopmost focuses the frontmost visible, focusable view, if any.
func (r *Registry) FocusTopmost() {
	for i := len(r.order) - 1; i >= 0; i-- {
		v, ok := r.byID[r.order[i]]
		if ok && v.GetState().Visible() && v.GetState().Focusable() {
			r.Focus(r.order[i], false)
			return
		}
	}
}

// SetGrabContext begins tracking a new interactive gesture against id.
func (r *Registry) SetGrabContext(id ViewID, cursorX, cursorY int, edges view.LabEdge) {
	v, ok := r.byID[id]
	if !ok {
		return
	}
	r.grabID = id
	r.grab.SetContext(v, cursorX, cursorY, edges)
}

// StartMove begins an interactive move of id.
func (r *Registry) StartMove(id ViewID) bool {
	v, ok := r.byID[id]
	if !ok {
		return false
	}
	if !r.grab.StartMove(v) {
		return false
	}
	r.grabID = id
	return true
}

// StartResize begins an interactive resize of id.
func (r *Registry) StartResize(id ViewID, edges view.LabEdge) bool {
	v, ok := r.byID[id]
	if !ok {
		return false
	}
	if !r.grab.StartResize(v, edges) {
		return false
	}
	r.grabID = id
	return true
}

// ContinueMove advances the in-progress move to the cursor's current
// position. A no-op if no view is currently grabbed.
func (r *Registry) ContinueMove(cursorX, cursorY int) {
	v, ok := r.byID[r.grabID]
	if !ok {
		return
	}
	r.grab.ContinueMove(v, cursorX, cursorY)
}

// ContinueResize advances the in-progress resize to the cursor's
// current position. A no-op if no view is currently grabbed.
func (r *Registry) ContinueResize(cursorX, cursorY int) {
	v, ok := r.byID[r.grabID]
	if !ok {
		return
	}
	r.grab.ContinueResize(v, cursorX, cursorY)
}

// GetResizing returns the view currently under an interactive resize,
// or nil if none (used by the host to pick a resize cursor shape).
func (r *Registry) GetResizing() *view.View {
	if r.grab.ResizeEdges() == view.EdgeNone {
		return nil
	}
	v, ok := r.byID[r.grabID]
	if !ok {
		return nil
	}
	return v
}

// GetResizeEdges returns the edge set of the in-progress grab.
func (r *Registry) GetResizeEdges() view.LabEdge { return r.grab.ResizeEdges() }

// SnapToEdge ends an interactive move by snapping the grabbed view to
// whichever output edge the cursor finished within the snap threshold
// of, if any. A resize gesture (one with resize edges set) never snaps.
// For a move, the target output is reassigned unconditionally; only a
// floating view actually snaps. A TOP snap maximizes both axes, a
// BOTTOM snap restores the view's pre-drag position and minimizes it,
// and any other edge set tiles to those edges.
func (r *Registry) SnapToEdge(cursorX, cursorY int) {
	id := r.grabID
	v, ok := r.byID[id]
	if !ok || r.grab.ResizeEdges() != view.EdgeNone {
		return
	}
	output, edges := grab.GetSnapTarget(cursorX, cursorY, r.outputs)
	v.SetOutput(output)
	if !v.GetState().Floating() {
		return
	}
	switch edges {
	case view.EdgeNone:
		return
	case view.EdgeTop:
		r.Maximize(id, view.AxisBoth)
	case view.EdgeBottom:
		v.MoveResize(v.GetState().NaturalGeom)
		r.Minimize(id, true)
	default:
		r.Tile(id, edges)
	}
}

// ResetGrabFor clears the in-progress grab if it is held against id,
// or unconditionally if id is 0 (end of gesture).
func (r *Registry) ResetGrabFor(id ViewID) {
	if id == 0 || id == r.grabID {
		r.grabID = 0
		r.grab = grab.ViewGrab{}
	}
}

// BuildCycleList rebuilds the alt-tab candidate list: every mapped,
// focusable root view (dialogs ride along with their root and are not
// separately cycled), ordered front-to-back so cycling continues
// naturally from whatever is currently focused.
func (r *Registry) BuildCycleList() {
	r.cycleList = r.cycleList[:0]
	for i := len(r.order) - 1; i >= 0; i-- {
		id := r.order[i]
		v, ok := r.byID[id]
		if !ok || !v.GetState().Visible() || !v.GetState().Focusable() {
			continue
		}
		if r.RootOf(id) != id {
			continue
		}
		r.cycleList = append(r.cycleList, id)
	}
}

// CycleListLen returns the length of the last-built cycle list.
func (r *Registry) CycleListLen() int { return len(r.cycleList) }

// CycleListNth returns the nth entry of the last-built cycle list, or
// nil if n is out of range.
func (r *Registry) CycleListNth(n int) *view.View {
	if n < 0 || n >= len(r.cycleList) {
		return nil
	}
	return r.byID[r.cycleList[n]]
}
