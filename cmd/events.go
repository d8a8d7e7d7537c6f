package main

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/palettepro/internal/app"
	"github.com/irfansharif/palettepro/internal/geom"
	"github.com/irfansharif/palettepro/internal/harmony"
)

// EventHandlers manages all event handling for the application.
type EventHandlers struct {
	application *app.App

	// Dragging on the wheel continuously picks the base color. Drags that
	// start elsewhere are ignored.
	isDragging bool

	// While typing, characters go to the color input instead of triggering
	// shortcuts. '#' starts a hex color, '/' starts any other form
	// (rgb(...), hsl(...), "r, g, b").
	typing bool
}

// NewEventHandlers creates a new event handlers manager.
func NewEventHandlers(application *app.App) *EventHandlers {
	eh := &EventHandlers{application: application}
	eh.SetupCallbacks(application.Window)
	return eh
}

// SetupCallbacks configures all GLFW event callbacks.
func (eh *EventHandlers) SetupCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(wnd *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleKey(key, action, mods) // for non-printable keys
	})
	window.SetCharCallback(func(wnd *glfw.Window, char rune) {
		eh.handleChar(char) // for shortcuts and typed colors
	})
	window.SetMouseButtonCallback(func(wnd *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleMouseButton(button, action) // for picking and copying
	})
	window.SetCursorPosCallback(func(wnd *glfw.Window, xpos, ypos float64) {
		eh.handleCursorPos(xpos, ypos) // for dragging the picker
	})
	window.SetFramebufferSizeCallback(func(wnd *glfw.Window, newW, newH int) {
		eh.application.Invalidate() // relayout on resize
	})
}

// handleKey handles keys that don't produce characters.
func (eh *EventHandlers) handleKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	state := eh.application.State

	if eh.typing {
		switch key {
		case glfw.KeyEnter, glfw.KeyKPEnter:
			eh.application.ApplyInput()
			eh.typing = state.Input != "" // keep editing a rejected color
		case glfw.KeyEscape:
			eh.stopTyping()
		case glfw.KeyBackspace:
			state.Backspace()
			eh.application.Invalidate()
		}
		return
	}

	switch key {
	case glfw.KeyTab:
		if (mods & glfw.ModShift) != 0 {
			state.PrevRule()
		} else {
			state.NextRule()
		}
	case glfw.KeyUp:
		state.Lighter()
	case glfw.KeyDown:
		state.Darker()
	case glfw.KeyEscape:
		state.Status = ""
	default:
		return
	}
	eh.application.Invalidate()
}

// handleChar handles printable characters.
func (eh *EventHandlers) handleChar(char rune) {
	application := eh.application
	state := application.State

	if eh.typing {
		state.Type(char)
		application.Invalidate()
		return
	}

	switch {
	case char == '#':
		eh.typing = true
		state.ClearInput()
		state.Type(char)
	case char == '/':
		eh.typing = true
		state.ClearInput()
	case char >= '1' && char <= '7':
		state.SelectRule(ruleForKey(int(char - '1')))
	case char == '+' || char == '=':
		state.Grow()
	case char == '-' || char == '_':
		state.Shrink()
	case char == 'a' || char == 'A':
		application.CopyAll()
	case char == 'p' || char == 'P':
		application.RequestSample(eh.cursor())
	case char == 'r' || char == 'R':
		application.RandomBase()
	case char == 't' || char == 'T':
		state.ToggleTheme()
	case char == 'e' || char == 'E':
		application.Export(time.Now())
	default:
		return
	}
	application.Invalidate()
}

// ruleForKey maps 1-6 to the selector's rules in order, and 7 to
// split-complementary.
func ruleForKey(idx int) harmony.Rule {
	rules := harmony.Rules()
	if idx < len(rules) {
		return rules[idx]
	}
	return harmony.SplitComplementary
}

func (eh *EventHandlers) stopTyping() {
	eh.typing = false
	eh.application.State.ClearInput()
	eh.application.Invalidate()
}

// handleMouseButton starts a wheel drag or copies the clicked swatch.
func (eh *EventHandlers) handleMouseButton(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft {
		return // nothing to do
	}

	switch action {
	case glfw.Press:
		p := eh.cursor()
		if eh.application.PickWheel(p) {
			eh.isDragging = true
			return
		}
		eh.application.CopySwatch(p, time.Now())
	case glfw.Release:
		eh.isDragging = false
	}
}

// handleCursorPos keeps picking while the wheel is being dragged. Leaving the
// wheel holds the last color until the cursor comes back.
func (eh *EventHandlers) handleCursorPos(xpos, ypos float64) {
	if !eh.isDragging {
		return
	}
	eh.application.PickWheel(eh.toFramebuffer(xpos, ypos))
}

// cursor returns the current mouse position in framebuffer pixels.
func (eh *EventHandlers) cursor() geom.Point {
	return eh.toFramebuffer(eh.application.Window.GetCursorPos())
}

// toFramebuffer converts window coordinates (what GLFW reports for the
// cursor) to framebuffer pixels, which differ on high-DPI displays.
func (eh *EventHandlers) toFramebuffer(x, y float64) geom.Point {
	window := eh.application.Window
	fw, fh := window.GetFramebufferSize()
	ww, wh := window.GetSize()
	if ww == 0 || wh == 0 {
		return geom.MakePoint(x, y)
	}
	return geom.MakePoint(x*float64(fw)/float64(ww), y*float64(fh)/float64(wh))
}
