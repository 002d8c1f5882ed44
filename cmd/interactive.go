package cmd

import (
	"context"
	"os"
	"runtime"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/assetview/internal/drafts"
	"github.com/oakwood-commons/assetview/internal/render"
	"github.com/oakwood-commons/assetview/internal/ui"
	"github.com/oakwood-commons/assetview/pkg/value"
)

var (
	openTerminalIOFn = openTerminalIO
	runViewer        = ui.Run
	openDraftStore   = func(path string, o *rootOptions) (drafts.Store, error) {
		return drafts.OpenSQLite(path, o.log)
	}
)

func (o *rootOptions) runInteractive(v value.Value, r *render.Renderer) error {
	store, err := openDraftStore(o.cfg.Drafts.Path, o)
	if err != nil {
		// Notes are optional; the viewer still works without them.
		o.log.Error(err, "drafts store unavailable")
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts, cleanup := getProgramOptions(o.ctx)
	defer cleanup()

	w, h := detectTerminalSize()
	return runViewer(ui.Params{
		Value:     v,
		Renderer:  r,
		Asset:     o.run.Input.AssetName,
		Clipboard: ui.SystemClipboard{},
		Drafts:    store,
		Autosave:  o.cfg.Drafts.Autosave,
		NoColor:   o.noColor,
		Width:     w,
		Height:    h,
		Log:       o.log,
		Context:   o.ctx,
	}, opts...)
}

// getProgramOptions reattaches the viewer to the terminal when the data came
// in on stdin.
func getProgramOptions(ctx context.Context) ([]tea.ProgramOption, func()) {
	cleanup := func() {}
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !stdinIsPiped() {
		return opts, cleanup
	}

	ttyIn, ttyOut, err := openTerminalIOFn()
	if err != nil {
		// no controlling terminal (CI); keys will not reach the viewer
		return opts, cleanup
	}
	cleanup = func() {
		_ = ttyIn.Close()
		if ttyOut != nil && ttyOut != ttyIn {
			_ = ttyOut.Close()
		}
	}
	opts = append(opts, tea.WithInput(ttyIn))
	if ttyOut != nil {
		opts = append(opts, tea.WithOutput(ttyOut))
	}
	return opts, cleanup
}

func openTerminalIO() (*os.File, *os.File, error) {
	in, out := terminalDeviceNames(runtime.GOOS)

	input, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	if out == "" || out == in {
		return input, input, nil
	}
	output, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		return input, nil, err
	}
	return input, output, nil
}

func terminalDeviceNames(goos string) (input string, output string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}
	return "/dev/tty", "/dev/tty"
}

func detectTerminalSize() (int, int) {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return 0, 0
}
