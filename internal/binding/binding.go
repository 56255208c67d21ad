// Package binding defines the boundary between the todo core and whatever
// renders it. A view exposes named callbacks the core registers handlers on,
// and named properties the core hands data to.
package binding

import (
	"context"
	"errors"
	"fmt"
)

// Value is anything that crosses the boundary: strings, ints, bools,
// records, or a bound model.
type Value = any

// Void is returned by callbacks that produce nothing.
var Void Value

// Callback is invoked by the view with the arguments of a user action.
type Callback func(args []Value) Value

var (
	ErrUnknownCallback = errors.New("unknown callback")
	ErrUnknownProperty = errors.New("unknown property")
)

// Instance is a runnable view.
type Instance interface {
	SetCallback(name string, cb Callback) error
	SetProperty(name string, v Value) error
	Run(ctx context.Context) error
}

// Headless is an Instance with no rendering. Actions are fed in through
// Invoke; Run blocks until the context is done.
type Headless struct {
	callbacks  map[string]Callback
	properties map[string]Value
}

// NewHeadless declares the callback and property names the instance accepts.
func NewHeadless(callbacks, properties []string) *Headless {
	h := &Headless{
		callbacks:  make(map[string]Callback, len(callbacks)),
		properties: make(map[string]Value, len(properties)),
	}
	for _, n := range callbacks {
		h.callbacks[n] = nil
	}
	for _, n := range properties {
		h.properties[n] = nil
	}
	return h
}

func (h *Headless) SetCallback(name string, cb Callback) error {
	if _, ok := h.callbacks[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCallback, name)
	}
	h.callbacks[name] = cb
	return nil
}

func (h *Headless) SetProperty(name string, v Value) error {
	if _, ok := h.properties[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	h.properties[name] = v
	return nil
}

// Property returns the value bound to name, or nil.
func (h *Headless) Property(name string) Value { return h.properties[name] }

// Invoke calls the handler registered for name. Declared callbacks without a
// handler are a no-op, as in a view nobody wired up.
func (h *Headless) Invoke(name string, args ...Value) (Value, error) {
	cb, ok := h.callbacks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCallback, name)
	}
	if cb == nil {
		return Void, nil
	}
	return cb(args), nil
}

func (h *Headless) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
