// Package input turns SDL2 events into viewer gestures: drag to pan,
// wheel to zoom at the cursor, resize and quit.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// WheelZoomStep is the relative window growth per wheel notch.
const WheelZoomStep = 0.1

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventPan
	EventZoom
)

// Event is a processed input event. Positions are in screen coordinates
// with the origin at the top-left.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	// DX, DY is the drag distance for EventPan.
	DX, DY float64
	// DZ is the relative growth for EventZoom: positive zooms out.
	DZ float64
}

// Input polls SDL and tracks drag state between frames.
type Input struct {
	events   []Event
	dragging bool
	mouseX   int
	mouseY   int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update drains the SDL event queue. Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}
			i.mouseX, i.mouseY = int(e.X), int(e.Y)

		case *sdl.MouseMotionEvent:
			i.mouseX, i.mouseY = int(e.X), int(e.Y)
			if i.dragging && (e.XRel != 0 || e.YRel != 0) {
				i.events = append(i.events, Event{
					Type:   EventPan,
					MouseX: i.mouseX,
					MouseY: i.mouseY,
					DX:     float64(e.XRel),
					DY:     float64(e.YRel),
				})
			}

		case *sdl.MouseWheelEvent:
			y := float64(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				y = -y
			}
			if y != 0 {
				i.events = append(i.events, Event{
					Type:   EventZoom,
					MouseX: i.mouseX,
					MouseY: i.mouseY,
					DZ:     -y * WheelZoomStep,
				})
			}
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
