// Command chtsim drives a contextual hold-tap engine from a scripted event
// stream, for exercising a keymap TOML file without flashing firmware.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chtengine/cht/internal/config/loader"
	"github.com/chtengine/cht/internal/engine"
	"github.com/chtengine/cht/internal/keymap"
	"github.com/chtengine/cht/internal/keys"
	"github.com/chtengine/cht/internal/macro"
	"github.com/chtengine/cht/internal/macro/script"
	"github.com/chtengine/cht/internal/magic"
	"github.com/chtengine/cht/internal/sink"
)

func main() {
	os.Exit(run())
}

func run() int {
	keymapPath := flag.String("keymap", "", "path to a keymap TOML file")
	macrosPath := flag.String("macros", "", "path to a macro definitions TOML file (optional)")
	debug := flag.Bool("debug", false, "enable debug-level logging")
	visualize := flag.Bool("visualize", false, "show a live layer/trace view instead of printing lines")
	flag.Parse()

	if *keymapPath == "" {
		fmt.Fprintln(os.Stderr, "chtsim: -keymap is required")
		flag.Usage()
		return 2
	}

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chtsim: building logger: %v\n", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	km, table, err := keymap.Load(loader.DefaultFS(), *keymapPath)
	if err != nil {
		logger.Errorw("failed to load keymap", "path", *keymapPath, "error", err)
		return 1
	}

	register := macro.NewRegister()
	if *macrosPath != "" {
		register, err = macro.Load(loader.DefaultFS(), *macrosPath)
		if err != nil {
			logger.Errorw("failed to load macros", "path", *macrosPath, "error", err)
			return 1
		}
	}

	state, err := script.NewState()
	if err != nil {
		logger.Errorw("failed to start macro sandbox", "error", err)
		return 1
	}
	defer state.Close()

	out := sink.NewMemory()
	processor := macro.NewProcessor(state, register, out)

	eng := engine.New(engine.Config{
		Keymap:     km,
		MagicTable: table,
		Expander:   processor,
		Sink:       out,
		Log:        logger.Sugar(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go eng.Run(ctx)
	defer eng.Close()

	var view traceView = lineView{}
	if *visualize {
		tv, cleanup, verr := newTUIView(eng)
		if verr != nil {
			logger.Errorw("failed to start visualizer, falling back to line output", "error", verr)
		} else {
			defer cleanup()
			view = tv
		}
	}

	return runScript(os.Stdin, eng, out, view)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// runScript reads one event per line from r and feeds it to eng. Blank
// lines and lines starting with "#" are ignored.
//
//	pos <position> <down|up> [timestamp]
//	key <keycode> <down|up> [timestamp]
func runScript(r *os.File, eng *engine.Engine, out *sink.Memory, view traceView) int {
	scanner := bufio.NewScanner(r)
	status := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		before := len(out.Invocations)
		if err := dispatchLine(eng, line); err != nil {
			fmt.Fprintf(os.Stderr, "chtsim: %v\n", err)
			status = 1
			continue
		}
		view.Update(eng, out.Invocations[before:])
	}
	return status
}

func dispatchLine(eng *engine.Engine, line string) error {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return fmt.Errorf("malformed line %q", line)
	}

	pressed, err := parsePressed(fields[2])
	if err != nil {
		return err
	}
	value, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", fields[1], err)
	}
	var ts int64
	if len(fields) >= 4 {
		ts, err = strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return fmt.Errorf("parsing timestamp %q: %w", fields[3], err)
		}
	}

	switch fields[0] {
	case "pos":
		return eng.HandlePosition(keys.PositionEvent{
			Position:  keys.Position(value),
			Pressed:   pressed,
			Timestamp: keys.Timestamp(ts),
		})
	case "key":
		_, err := eng.HandleKeycode(keys.KeycodeEvent{
			Keycode:   keys.Keycode(value),
			Pressed:   pressed,
			Timestamp: keys.Timestamp(ts),
		})
		return err
	default:
		return fmt.Errorf("unknown event kind %q", fields[0])
	}
}

func parsePressed(s string) (bool, error) {
	switch s {
	case "down":
		return true, nil
	case "up":
		return false, nil
	default:
		return false, fmt.Errorf("want \"down\" or \"up\", got %q", s)
	}
}

// traceView renders the engine's state as a script runs.
type traceView interface {
	Update(eng *engine.Engine, newInvocations []sink.Invocation)
}

// lineView prints each new invocation to stdout, the default non-visual
// mode.
type lineView struct{}

func (lineView) Update(_ *engine.Engine, newInvocations []sink.Invocation) {
	for _, inv := range newInvocations {
		state := "release"
		if inv.Pressed {
			state = "press"
		}
		fmt.Printf("[%6d] %-7s %s(%d,%d) @ pos %d\n",
			time.Duration(inv.Event.Timestamp)*time.Millisecond/time.Millisecond,
			state, inv.Binding.Behavior, inv.Binding.Param1, inv.Binding.Param2, inv.Event.Position)
	}
}

var _ magic.Expander = (*macro.Processor)(nil)
