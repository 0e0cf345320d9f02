// Package flow drives the three screens of the passport flow (acquisition, edit,
// grid) and owns the typed handoff passed between them.
package flow

import (
	"errors"
	"fmt"
	"sync"

	"passgrid/pkg/imageref"
)

// Screen identifies a step of the flow.
type Screen int

const (
	ScreenAcquisition Screen = iota
	ScreenEdit
	ScreenGrid
)

func (s Screen) String() string {
	switch s {
	case ScreenAcquisition:
		return "acquisition"
	case ScreenEdit:
		return "edit"
	case ScreenGrid:
		return "grid"
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

var (
	ErrNoImage           = errors.New("no image selected")
	ErrInvalidTransition = errors.New("invalid screen transition")
	ErrBusy              = errors.New("operation already in progress")
)

// Handoff is the only state that crosses a screen boundary.
type Handoff struct {
	ImageRef imageref.Ref
}

// Validate checks the handoff once, at the transition.
func (h Handoff) Validate() error {
	if h.ImageRef.IsZero() {
		return ErrNoImage
	}
	return nil
}

// Navigator moves the flow to another screen.
type Navigator interface {
	Navigate(to Screen, h Handoff) error
}

// Controller tracks the current screen. Transitions only move one step forward,
// or back to acquisition through Restart.
type Controller struct {
	mu      sync.Mutex
	current Screen
	handoff Handoff
	onEnter []func(Screen, Handoff)
}

func NewController() *Controller {
	return &Controller{current: ScreenAcquisition}
}

// OnEnter registers fn to run after every successful transition.
func (c *Controller) OnEnter(fn func(Screen, Handoff)) {
	c.mu.Lock()
	c.onEnter = append(c.onEnter, fn)
	c.mu.Unlock()
}

// Current returns the active screen and the handoff it was entered with.
func (c *Controller) Current() (Screen, Handoff) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.handoff
}

func (c *Controller) Navigate(to Screen, h Handoff) error {
	if err := h.Validate(); err != nil {
		return fmt.Errorf("entering %s: %w", to, err)
	}

	c.mu.Lock()
	if to != c.current+1 || to > ScreenGrid {
		from := c.current
		c.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	c.current = to
	c.handoff = h
	listeners := append([]func(Screen, Handoff){}, c.onEnter...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(to, h)
	}
	return nil
}

// Restart returns to the acquisition screen with an empty handoff.
func (c *Controller) Restart() {
	c.mu.Lock()
	c.current = ScreenAcquisition
	c.handoff = Handoff{}
	listeners := append([]func(Screen, Handoff){}, c.onEnter...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(ScreenAcquisition, Handoff{})
	}
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(title, message string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(title, message string)

func (f AlertFunc) Alert(title, message string) { f(title, message) }

// busy is a screen-local in-flight flag.
type busy struct {
	mu     sync.Mutex
	active bool
}

// acquire sets the flag, failing if it was already set.
func (b *busy) acquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active {
		return false
	}
	b.active = true
	return true
}

func (b *busy) release() {
	b.mu.Lock()
	b.active = false
	b.mu.Unlock()
}

func (b *busy) get() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

func notify(fn func()) {
	if fn != nil {
		fn()
	}
}
