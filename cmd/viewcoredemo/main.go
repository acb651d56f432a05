// Command viewcoredemo drives the view-management core from a
// newline-delimited JSON event stream on stdin, against an in-memory
// demohost standing in for a real Wayland/X11 compositor. It exists so
// the core's behavior can be exercised and watched without wiring it
// into an actual compositor, mirroring how a small standalone binary
// reads a compositor's event stream and prints a derived view of it.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"rsc.io/getopt"

	"viewcore/api"
	"viewcore/host"
	"viewcore/internal/demohost"
	"viewcore/internal/logx"
	"viewcore/rect"
	"viewcore/view"
	"viewcore/views"
)

func main() {
	if err := parseFlags(&getopt.CommandLine, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	outputs, err := buildOutputs(*outputSpec, *panelHeight)
	if err != nil {
		fmt.Fprintln(os.Stderr, "viewcoredemo:", err)
		os.Exit(1)
	}

	protocol := demohost.NewProtocol()
	ssd := demohost.NewSSD(*titlebar, 24)
	icons := demohost.Icons{}
	api.Init(outputs, demohost.NewLayerShell(), demohost.NewSeat(), demohost.NewToplevelWire())

	d := &dispatcher{
		protocol: protocol,
		ssd:      ssd,
		icons:    icons,
		ids:      make(map[string]views.ViewID),
		log:      logx.For("demo"),
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			fmt.Fprintln(os.Stderr, "viewcoredemo: malformed event:", err)
			continue
		}
		d.dispatch(&ev)
		if *verbose {
			printStack()
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildOutputs(spec string, panelHeight int) (*demohost.Outputs, error) {
	var outs []demohost.Output
	x := 0
	for i, dim := range strings.Split(spec, ",") {
		w, h, err := parseDims(dim)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		out := demohost.Output{
			ID:     host.OutputID(i + 1),
			Name:   fmt.Sprintf("OUT-%d", i+1),
			Layout: rect.Rect{X: x, Y: 0, Width: w, Height: h},
		}
		if i == 0 && panelHeight > 0 {
			out.Margin.Top = panelHeight
		}
		outs = append(outs, out)
		x += w
	}
	if len(outs) == 0 {
		return nil, fmt.Errorf("no outputs specified")
	}
	return demohost.NewOutputs(outs...), nil
}

func parseDims(dim string) (w, h int, err error) {
	parts := strings.SplitN(dim, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected WxH, got %q", dim)
	}
	w, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	h, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// dispatcher holds the demo-process-local mapping between the
// caller-chosen handle strings used in the event stream and the
// ViewIDs the core actually allocates.
type dispatcher struct {
	protocol *demohost.Protocol
	ssd      *demohost.SSD
	icons    demohost.Icons
	ids      map[string]views.ViewID
	log      *logx.Logger
}

func (d *dispatcher) dispatch(ev *Event) {
	d.log.Tracef("event: %s", ev.Name())
	switch {
	case ev.Add != nil:
		d.add(ev.Add)
	case ev.Remove != nil:
		d.withID(ev.Remove.Handle, func(id views.ViewID) { api.Remove(id); delete(d.ids, ev.Remove.Handle) })
	case ev.Map != nil:
		if id, ok := d.ids[ev.Map.Handle]; ok {
			api.MapCommon(id, parseFocusMode(ev.Map.FocusMode))
		}
	case ev.Unmap != nil:
		d.withID(ev.Unmap.Handle, func(id views.ViewID) { api.UnmapCommon(id) })
	case ev.SetAppID != nil:
		d.withID(ev.SetAppID.Handle, func(id views.ViewID) { api.SetAppID(id, ev.SetAppID.Value) })
	case ev.SetTitle != nil:
		d.withID(ev.SetTitle.Handle, func(id views.ViewID) { api.SetTitle(id, ev.SetTitle.Value) })
	case ev.Focus != nil:
		d.withID(ev.Focus.Handle, func(id views.ViewID) { api.Focus(id, ev.Focus.Raise) })
	case ev.FocusTopmost != nil:
		api.FocusTopmost()
	case ev.Fullscreen != nil:
		d.withID(ev.Fullscreen.Handle, func(id views.ViewID) { api.Fullscreen(id, ev.Fullscreen.Value) })
	case ev.Maximize != nil:
		d.withID(ev.Maximize.Handle, func(id views.ViewID) { api.Maximize(id, parseAxis(ev.Maximize.Axis)) })
	case ev.Tile != nil:
		d.withTileEdge(ev.Tile)
	case ev.Minimize != nil:
		d.withID(ev.Minimize.Handle, func(id views.ViewID) { api.Minimize(id, ev.Minimize.Value) })
	case ev.Raise != nil:
		d.withID(ev.Raise.Handle, func(id views.ViewID) { api.Raise(id) })
	case ev.Close != nil:
		d.withID(ev.Close.Handle, func(id views.ViewID) { api.Close(id) })
	case ev.StartMove != nil:
		d.withID(ev.StartMove.Handle, func(id views.ViewID) {
			api.SetGrabContext(id, ev.StartMove.X, ev.StartMove.Y, view.EdgeNone)
			if !api.StartMove(id) {
				d.log.Warnf("%s: refused to start move", ev.StartMove.Handle)
			}
		})
	case ev.ContinueMove != nil:
		api.ContinueMove(ev.ContinueMove.X, ev.ContinueMove.Y)
	case ev.StartResize != nil:
		d.withResizeEdge(ev.StartResize)
	case ev.ContinueResize != nil:
		api.ContinueResize(ev.ContinueResize.X, ev.ContinueResize.Y)
	case ev.FinishGrab != nil:
		api.FinishGrab(ev.FinishGrab.X, ev.FinishGrab.Y)
	case ev.ResetGrab != nil:
		api.ResetGrab()
	case ev.LayoutChanged != nil:
		api.AdjustForLayoutChange()
	case ev.Dump != nil:
		printStack()
	default:
		d.log.Warnf("received event with no fields set")
	}
}

func (d *dispatcher) withID(handle string, f func(views.ViewID)) {
	id, ok := d.ids[handle]
	if !ok {
		d.log.Warnf("unknown handle %q", handle)
		return
	}
	f(id)
}

func (d *dispatcher) withTileEdge(ev *TileEvent) {
	edges, err := parseEdges(ev.Edge)
	if err != nil {
		d.log.Warnf("%s: %v", ev.Handle, err)
		return
	}
	d.withID(ev.Handle, func(id views.ViewID) { api.Tile(id, edges) })
}

func (d *dispatcher) withResizeEdge(ev *ResizeEvent) {
	edges, err := parseEdges(ev.Edge)
	if err != nil {
		d.log.Warnf("%s: %v", ev.Handle, err)
		return
	}
	d.withID(ev.Handle, func(id views.ViewID) {
		api.SetGrabContext(id, ev.X, ev.Y, edges)
		if !api.StartResize(id, edges) {
			d.log.Warnf("%s: refused to start resize", ev.Handle)
		}
	})
}

func (d *dispatcher) add(ev *AddEvent) {
	if _, exists := d.ids[ev.Handle]; exists {
		d.log.Warnf("handle %q already added", ev.Handle)
		return
	}
	rootID := ev.RootHandle
	if rootID == "" {
		rootID = ev.Handle
	}
	d.protocol.Register(ev.Handle, demohost.HandleMeta{
		RootID:          handleHash(rootID),
		IsModalDialog:   ev.IsModalDialog,
		HasStrutPartial: ev.HasStrutPartial,
		SizeHints:       ev.SizeHints,
	})
	id := api.Add(ev.Handle, ev.IsXWayland, d.protocol, d.ssd, d.icons)
	d.ids[ev.Handle] = id
	api.SetAppID(id, ev.AppID)
	api.SetTitle(id, ev.Title)
	api.SetInitialGeom(id, nil, false)
}

// handleHash derives a stable uint64 id from a handle string so that
// distinct handles sharing a root_handle report the same RootID.
func handleHash(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

func printStack() {
	fmt.Fprint(os.Stdout, demohost.DumpStack(api.Count(), api.Nth))
}
