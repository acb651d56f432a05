package demohost

import (
	"testing"

	"viewcore/host"
	"viewcore/rect"
	"viewcore/view"
)

func TestOutputsUsableAreaSubtractsMargin(t *testing.T) {
	outs := NewOutputs(Output{
		ID:     1,
		Layout: rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
		Margin: rect.Border{Top: 30},
	})
	got := outs.UsableArea(1)
	want := rect.Rect{X: 0, Y: 30, Width: 1920, Height: 1050}
	if got != want {
		t.Errorf("UsableArea = %+v, want %+v", got, want)
	}
}

func TestOutputsUnknownIDIsUnusable(t *testing.T) {
	outs := NewOutputs(Output{ID: 1, Layout: rect.Rect{Width: 100, Height: 100}})
	if outs.IsUsable(2) {
		t.Error("IsUsable(2) = true, want false for an unregistered output")
	}
}

func TestOutputsNearestToPicksClosestCenter(t *testing.T) {
	outs := NewOutputs(
		Output{ID: 1, Layout: rect.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}},
		Output{ID: 2, Layout: rect.Rect{X: 1000, Y: 0, Width: 1000, Height: 1000}},
	)
	if got := outs.NearestTo(1900, 500); got != 2 {
		t.Errorf("NearestTo(1900, 500) = %v, want output 2", got)
	}
	if got := outs.NearestTo(100, 500); got != 1 {
		t.Errorf("NearestTo(100, 500) = %v, want output 1", got)
	}
}

func TestProtocolReportsRegisteredMetadata(t *testing.T) {
	p := NewProtocol()
	p.Register("dialog", HandleMeta{RootID: 42, IsModalDialog: true, HasStrutPartial: true})
	if p.RootID("dialog") != 42 {
		t.Errorf("RootID = %d, want 42", p.RootID("dialog"))
	}
	if !p.IsModalDialog("dialog") {
		t.Error("IsModalDialog = false, want true")
	}
	if !p.HasStrutPartial("dialog") {
		t.Error("HasStrutPartial = false, want true")
	}
}

func TestProtocolUnregisteredHandleReportsZeroValue(t *testing.T) {
	p := NewProtocol()
	if p.RootID("unknown") != 0 || p.IsModalDialog("unknown") {
		t.Error("an unregistered handle must report the zero HandleMeta")
	}
}

func TestSSDReservesConfiguredMargin(t *testing.T) {
	s := NewSSD(24, 16)
	got := s.Margin("any")
	if got.Top != 24 {
		t.Errorf("Margin.Top = %d, want 24", got.Top)
	}
	w, h := s.IconBufferSize("any")
	if w != 16 || h != 16 {
		t.Errorf("IconBufferSize = (%d,%d), want (16,16)", w, h)
	}
}

func TestToplevelWireCreatesLoggedHandle(t *testing.T) {
	w := NewToplevelWire()
	h := w.Create("client-1", 7)
	if h == nil {
		t.Fatal("Create returned nil")
	}
	h.SendAppID("foot")
	h.SendTitle("term")
	h.SendState(host.ForeignToplevelState{Activated: true})
	h.SendDone()
	h.Close()
}

func TestDumpStackOrdersTopmostFirst(t *testing.T) {
	protocol := NewProtocol()
	ssd := NewSSD(0, 0)
	icons := Icons{}
	outs := NewOutputs(Output{ID: 1, Layout: rect.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}})

	bottom := view.New("bottom", false, protocol, ssd, outs, icons)
	bottom.SetAppID("bg")
	top := view.New("top", false, protocol, ssd, outs, icons)
	top.SetAppID("fg")
	top.SetActive(true)

	views := []*view.View{bottom, top}
	nth := func(n int) *view.View {
		if n < 0 || n >= len(views) {
			return nil
		}
		return views[n]
	}

	out := DumpStack(len(views), nth)
	fgIdx := indexOf(out, "fg")
	bgIdx := indexOf(out, "bg")
	if fgIdx == -1 || bgIdx == -1 || fgIdx > bgIdx {
		t.Errorf("DumpStack must list the topmost view (fg) before the bottommost (bg); got:\n%s", out)
	}
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
