package grab

import (
	"testing"

	"viewcore/host"
	"viewcore/rect"
	"viewcore/view"
)

type fakeProtocol struct {
	hasStrut   bool
	sizeHints  host.SizeHints
	isModal    bool
}

func (p *fakeProtocol) SetActive(host.NativeHandle, bool)           {}
func (p *fakeProtocol) SetFullscreen(host.NativeHandle, bool)       {}
func (p *fakeProtocol) Maximize(host.NativeHandle, int)             {}
func (p *fakeProtocol) Minimize(host.NativeHandle, bool)            {}
func (p *fakeProtocol) Configure(host.NativeHandle, rect.Rect)      {}
func (p *fakeProtocol) NotifyTiled(host.NativeHandle)               {}
func (p *fakeProtocol) Close(host.NativeHandle)                     {}
func (p *fakeProtocol) RootID(host.NativeHandle) uint64             { return 0 }
func (p *fakeProtocol) IsModalDialog(host.NativeHandle) bool        { return p.isModal }
func (p *fakeProtocol) SizeHints(host.NativeHandle) host.SizeHints  { return p.sizeHints }
func (p *fakeProtocol) HasStrutPartial(host.NativeHandle) bool      { return p.hasStrut }
func (p *fakeProtocol) OfferFocus(host.NativeHandle)                {}
func (p *fakeProtocol) Raise(host.NativeHandle)                     {}

type fakeSSD struct{}

func (fakeSSD) Margin(host.NativeHandle) rect.Border                 { return rect.Border{} }
func (fakeSSD) IconBufferSize(host.NativeHandle) (int, int)          { return 0, 0 }
func (fakeSSD) Create(host.NativeHandle, any)                        {}
func (fakeSSD) Destroy(host.NativeHandle)                            {}
func (fakeSSD) Update(host.NativeHandle)                             {}
func (fakeSSD) SetActive(host.NativeHandle, bool)                    {}
func (fakeSSD) SetInhibitsKeybinds(host.NativeHandle, bool)          {}

type fakeOutputs struct {
	usable rect.Rect
}

func (f fakeOutputs) UsableArea(host.OutputID) rect.Rect   { return f.usable }
func (f fakeOutputs) LayoutCoords(host.OutputID) rect.Rect { return f.usable }
func (f fakeOutputs) IsUsable(host.OutputID) bool          { return true }
func (f fakeOutputs) NearestTo(x, y int) host.OutputID     { return 1 }

type fakeIcons struct{}

func (fakeIcons) Load([]any, int, int) any { return nil }
func (fakeIcons) Drop(any)                 {}

func newTestView(proto *fakeProtocol, outputs fakeOutputs) *view.View {
	return view.New(nil, false, proto, fakeSSD{}, outputs, fakeIcons{})
}

func TestStartMoveRefusesStrutPartial(t *testing.T) {
	proto := &fakeProtocol{hasStrut: true}
	v := newTestView(proto, fakeOutputs{usable: rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}})
	var g ViewGrab
	if g.StartMove(v) {
		t.Error("StartMove must refuse a panel-strut view")
	}
}

func TestStartMoveRefusesFullscreen(t *testing.T) {
	proto := &fakeProtocol{}
	v := newTestView(proto, fakeOutputs{usable: rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}})
	v.SetPendingGeom(rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080})
	v.Fullscreen(true)
	var g ViewGrab
	if g.StartMove(v) {
		t.Error("StartMove must refuse a fullscreen view")
	}
}

func TestComputeMovePositionTracksCursorDelta(t *testing.T) {
	var g ViewGrab
	g.originCursorX, g.originCursorY = 100, 100
	g.originGeom = rect.Rect{X: 50, Y: 60, Width: 400, Height: 300}
	x, y := g.ComputeMovePosition(120, 95)
	if x != 70 || y != 55 {
		t.Errorf("ComputeMovePosition = (%d,%d), want (70,55)", x, y)
	}
}

func TestContinueMoveUnsnapsPastThreshold(t *testing.T) {
	proto := &fakeProtocol{}
	outputs := fakeOutputs{usable: rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}
	v := newTestView(proto, outputs)
	v.SetPendingGeom(rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080})
	v.SetMaximizedRaw(view.AxisBoth)

	var g ViewGrab
	g.SetContext(v, 960, 0, view.EdgeNone)

	// Small drag: below the combined unsnap threshold, stays maximized.
	g.ContinueMove(v, 965, 5)
	if v.GetState().Maximized != view.AxisBoth {
		t.Error("small drag must not unsnap a maximized view")
	}

	// Large drag: clears the threshold, unsnaps.
	g.ContinueMove(v, 1100, 100)
	if v.GetState().Maximized != view.AxisNone {
		t.Error("large drag must unsnap a maximized view")
	}
}

func TestContinueMoveSingleAxisUsesWiderThreshold(t *testing.T) {
	proto := &fakeProtocol{}
	outputs := fakeOutputs{usable: rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}
	v := newTestView(proto, outputs)
	v.SetPendingGeom(rect.Rect{X: 0, Y: 0, Width: 960, Height: 1080})
	v.SetMaximizedRaw(view.AxisHorizontal)

	var g ViewGrab
	g.SetContext(v, 480, 540, view.EdgeNone)

	// 50px drag: below the single-axis threshold of 100, stays snapped.
	g.ContinueMove(v, 530, 540)
	if v.GetState().Maximized != view.AxisHorizontal {
		t.Error("50px drag must not unsnap a single-axis-maximized view")
	}

	// 150px drag: clears the single-axis threshold.
	g.ContinueMove(v, 630, 540)
	if v.GetState().Maximized != view.AxisNone {
		t.Error("150px drag must unsnap a single-axis-maximized view")
	}
}

func TestStartResizeRefusesBothAxisMaximized(t *testing.T) {
	proto := &fakeProtocol{}
	v := newTestView(proto, fakeOutputs{usable: rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}})
	v.SetMaximizedRaw(view.AxisBoth)
	var g ViewGrab
	if g.StartResize(v, rect.EdgeRight) {
		t.Error("StartResize must refuse a fully-maximized view")
	}
}

func TestStartResizeClearsOnlyResizedAxis(t *testing.T) {
	proto := &fakeProtocol{}
	v := newTestView(proto, fakeOutputs{usable: rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}})
	v.SetPendingGeom(rect.Rect{X: 0, Y: 0, Width: 960, Height: 1080})
	v.SetMaximizedRaw(view.AxisVertical)

	var g ViewGrab
	g.SetContext(v, 960, 540, rect.EdgeRight)
	if !g.StartResize(v, rect.EdgeNone) {
		t.Fatal("StartResize should succeed on a view maximized on one axis only")
	}
	if v.GetState().Maximized != view.AxisVertical {
		t.Errorf("StartResize(right) must clear only the horizontal axis, got %v", v.GetState().Maximized)
	}
}

func TestContinueResizeGrowsFromAnchoredEdge(t *testing.T) {
	proto := &fakeProtocol{sizeHints: host.SizeHints{MinWidth: 100, MinHeight: 60}}
	v := newTestView(proto, fakeOutputs{usable: rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}})
	v.SetPendingGeom(rect.Rect{X: 100, Y: 100, Width: 400, Height: 300})
	v.CommitGeom(400, 300, view.EdgeNone)

	var g ViewGrab
	g.SetContext(v, 500, 400, rect.EdgeBottom|rect.EdgeRight)
	g.ContinueResize(v, 600, 500)

	got := v.GetState().Pending
	if got.X != 100 || got.Y != 100 {
		t.Errorf("resizing bottom-right must not move the fixed corner: got %+v", got)
	}
	if got.Width != 500 || got.Height != 400 {
		t.Errorf("ContinueResize(bottom-right) = %+v, want width=500 height=400", got)
	}
}

func TestContinueResizeTopLeftMovesOrigin(t *testing.T) {
	proto := &fakeProtocol{sizeHints: host.SizeHints{MinWidth: 100, MinHeight: 60}}
	v := newTestView(proto, fakeOutputs{usable: rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}})
	v.SetPendingGeom(rect.Rect{X: 100, Y: 100, Width: 400, Height: 300})
	v.CommitGeom(400, 300, view.EdgeNone)

	var g ViewGrab
	g.SetContext(v, 100, 100, rect.EdgeTop|rect.EdgeLeft)
	g.ContinueResize(v, 50, 50)

	got := v.GetState().Pending
	if got.Width != 450 || got.Height != 350 {
		t.Errorf("ContinueResize(top-left) size = %+v, want width=450 height=350", got)
	}
	if got.X != 50 || got.Y != 50 {
		t.Errorf("ContinueResize(top-left) must move the origin to track the dragged edge: got %+v", got)
	}
}

func TestGetSnapTargetDetectsEdgeProximity(t *testing.T) {
	outputs := fakeOutputs{usable: rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}
	_, edges := GetSnapTarget(3, 540, outputs)
	if !edges.Has(rect.EdgeLeft) {
		t.Errorf("cursor at x=3 should snap to the left edge, got %v", edges)
	}
	_, edges = GetSnapTarget(1917, 540, outputs)
	if !edges.Has(rect.EdgeRight) {
		t.Errorf("cursor at x=1917 should snap to the right edge, got %v", edges)
	}
	_, edges = GetSnapTarget(960, 540, outputs)
	if edges != rect.EdgeNone {
		t.Errorf("cursor in the middle of the output should not snap, got %v", edges)
	}
}

func TestGetSnapTargetEmptyUsableIsNone(t *testing.T) {
	outputs := fakeOutputs{usable: rect.Rect{}}
	_, edges := GetSnapTarget(0, 0, outputs)
	if edges != rect.EdgeNone {
		t.Errorf("an empty usable area must never report a snap edge, got %v", edges)
	}
}
