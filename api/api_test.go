package api

import (
	"testing"

	"viewcore/host"
	"viewcore/rect"
	"viewcore/view"
)

type fakeProtocol struct{ offered int }

func (p *fakeProtocol) SetActive(host.NativeHandle, bool)          {}
func (p *fakeProtocol) SetFullscreen(host.NativeHandle, bool)      {}
func (p *fakeProtocol) Maximize(host.NativeHandle, int)            {}
func (p *fakeProtocol) Minimize(host.NativeHandle, bool)           {}
func (p *fakeProtocol) Configure(host.NativeHandle, rect.Rect)     {}
func (p *fakeProtocol) NotifyTiled(host.NativeHandle)              {}
func (p *fakeProtocol) Close(host.NativeHandle)                    {}
func (p *fakeProtocol) RootID(host.NativeHandle) uint64            { return 0 }
func (p *fakeProtocol) IsModalDialog(host.NativeHandle) bool       { return false }
func (p *fakeProtocol) SizeHints(host.NativeHandle) host.SizeHints { return host.SizeHints{} }
func (p *fakeProtocol) HasStrutPartial(host.NativeHandle) bool     { return false }
func (p *fakeProtocol) OfferFocus(host.NativeHandle)               { p.offered++ }
func (p *fakeProtocol) Raise(host.NativeHandle)                    {}

type fakeSSD struct{}

func (fakeSSD) Margin(host.NativeHandle) rect.Border        { return rect.Border{} }
func (fakeSSD) IconBufferSize(host.NativeHandle) (int, int) { return 0, 0 }
func (fakeSSD) Create(host.NativeHandle, any)               {}
func (fakeSSD) Destroy(host.NativeHandle)                   {}
func (fakeSSD) Update(host.NativeHandle)                    {}
func (fakeSSD) SetActive(host.NativeHandle, bool)           {}
func (fakeSSD) SetInhibitsKeybinds(host.NativeHandle, bool) {}

type fakeOutputs struct{ usable rect.Rect }

func (f fakeOutputs) UsableArea(host.OutputID) rect.Rect   { return f.usable }
func (f fakeOutputs) LayoutCoords(host.OutputID) rect.Rect { return f.usable }
func (f fakeOutputs) IsUsable(host.OutputID) bool          { return true }
func (f fakeOutputs) NearestTo(x, y int) host.OutputID     { return 1 }

type fakeIcons struct{}

func (fakeIcons) Load([]any, int, int) any { return nil }
func (fakeIcons) Drop(any)                 {}

type fakeLayerShell struct{}

func (fakeLayerShell) ShowAllTopLayer()                         {}
func (fakeLayerShell) HideTopLayerOnOutput(o host.OutputID)     {}

type fakeSeat struct{}

func (fakeSeat) CursorUpdateFocus() {}
func (fakeSeat) FocusOverrideEnd()  {}

type fakeToplevelHandle struct{}

func (fakeToplevelHandle) SendAppID(string)                     {}
func (fakeToplevelHandle) SendTitle(string)                     {}
func (fakeToplevelHandle) SendState(host.ForeignToplevelState) {}
func (fakeToplevelHandle) SendDone()                             {}
func (fakeToplevelHandle) Close()                                {}

type fakeWire struct{}

func (fakeWire) Create(client host.Resource, viewID uint64) host.ForeignToplevelHandle {
	return fakeToplevelHandle{}
}

func setup(t *testing.T) {
	t.Helper()
	Teardown()
	Init(fakeOutputs{usable: rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}, fakeLayerShell{}, fakeSeat{}, fakeWire{})
	t.Cleanup(Teardown)
}

func TestInitIsIdempotent(t *testing.T) {
	setup(t)
	first := registry
	Init(fakeOutputs{}, fakeLayerShell{}, fakeSeat{}, fakeWire{})
	if registry != first {
		t.Error("a second Init call must not replace the singleton")
	}
}

func TestAddMapFocusRoundTrip(t *testing.T) {
	setup(t)
	proto := &fakeProtocol{}
	id := Add(nil, false, proto, fakeSSD{}, fakeIcons{})
	if Count() != 1 {
		t.Fatalf("Count() = %d, want 1", Count())
	}
	MapCommon(id, view.FocusLikely)
	Focus(id, false)
	if GetActive() == nil {
		t.Fatal("GetActive must return the focused view")
	}
	if proto.offered != 1 {
		t.Errorf("Focus must offer protocol focus once, got %d", proto.offered)
	}
	Remove(id)
	if Count() != 0 {
		t.Errorf("Count() after Remove = %d, want 0", Count())
	}
}

func TestCommitGeomAnchorsDuringResize(t *testing.T) {
	setup(t)
	proto := &fakeProtocol{}
	id := Add(nil, false, proto, fakeSSD{}, fakeIcons{})
	SetPendingGeom(id, rect.Rect{X: 100, Y: 100, Width: 400, Height: 300})

	SetGrabContext(id, 100, 100, view.EdgeTop|view.EdgeLeft)
	if !StartResize(id, view.EdgeNone) {
		t.Fatal("StartResize must succeed on a floating view")
	}
	CommitGeom(id, 350, 250)

	st := GetState(id)
	if st.Current.X != 150 || st.Current.Y != 150 {
		t.Errorf("CommitGeom must anchor the top-left edge during a top/left resize: got %+v", st.Current)
	}
}

func TestFocusUnminimizesAndFocuses(t *testing.T) {
	setup(t)
	proto := &fakeProtocol{}
	id := Add(nil, false, proto, fakeSSD{}, fakeIcons{})
	MapCommon(id, view.FocusLikely)
	Minimize(id, true)

	Focus(id, false)
	if proto.offered != 1 {
		t.Errorf("Focus on a minimized view must unminimize and offer focus in one call, got %d", proto.offered)
	}
	if GetState(id).Minimized {
		t.Error("Focus must unminimize the view")
	}
	if GetActive() == nil {
		t.Error("Focus must activate the unminimized view")
	}
}
