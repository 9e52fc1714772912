package main

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/chtengine/cht/internal/engine"
	"github.com/chtengine/cht/internal/sink"
)

const traceLines = 20

// tuiView renders the active layer and a scrolling invocation trace with
// tcell, for -visualize mode.
type tuiView struct {
	screen tcell.Screen

	mu    sync.Mutex
	trace []string
}

// newTUIView starts a tcell screen and a goroutine that tears the screen
// down (screen.Fini) and stops polling when the user presses Esc or 'q';
// the process itself keeps running until the script ends. The returned
// cleanup must run before the process exits normally.
func newTUIView(eng *engine.Engine) (*tuiView, func(), error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	v := &tuiView{screen: screen}
	v.render(eng, 0)

	go func() {
		for {
			ev := screen.PollEvent()
			switch e := ev.(type) {
			case *tcell.EventKey:
				if e.Key() == tcell.KeyEscape || e.Rune() == 'q' {
					screen.Fini()
					return
				}
			case nil:
				return
			}
		}
	}()

	return v, screen.Fini, nil
}

func (v *tuiView) Update(eng *engine.Engine, newInvocations []sink.Invocation) {
	v.mu.Lock()
	for _, inv := range newInvocations {
		state := "release"
		if inv.Pressed {
			state = "press"
		}
		v.trace = append(v.trace, fmt.Sprintf("pos %-4d %-7s %s(%d,%d)",
			inv.Event.Position, state, inv.Binding.Behavior, inv.Binding.Param1, inv.Binding.Param2))
	}
	if len(v.trace) > traceLines {
		v.trace = v.trace[len(v.trace)-traceLines:]
	}
	trace := append([]string(nil), v.trace...)
	v.mu.Unlock()

	v.render(eng, len(trace))
}

func (v *tuiView) render(eng *engine.Engine, _ int) {
	v.screen.Clear()
	v.drawText(0, 0, tcell.StyleDefault.Bold(true),
		fmt.Sprintf("highest active layer: %d", eng.LayerStack().HighestActiveLayer()))
	v.drawText(0, 1, tcell.StyleDefault, "press Esc or q to quit")

	v.mu.Lock()
	trace := append([]string(nil), v.trace...)
	v.mu.Unlock()

	for i, line := range trace {
		v.drawText(0, 3+i, tcell.StyleDefault, line)
	}
	v.screen.Show()
}

func (v *tuiView) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range text {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}
