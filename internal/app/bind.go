package app

import (
	"fmt"

	"github.com/idilsaglam/todolist/internal/binding"
)

// Names the view description must declare.
const (
	CallbackTodoAdded   = "todo-added"
	CallbackRemoveDone  = "remove-done"
	CallbackTodoToggled = "todo-toggled"
	PropertyTodoModel   = "todo-model"
)

// Callbacks lists every callback Bind registers.
var Callbacks = []string{CallbackTodoAdded, CallbackRemoveDone, CallbackTodoToggled}

// Properties lists every property Bind sets.
var Properties = []string{PropertyTodoModel}

// Bind registers h on inst and exposes the list as the todo model.
// Arguments of the wrong shape make a callback a no-op.
func Bind(inst binding.Instance, h *Handlers) error {
	err := inst.SetCallback(CallbackTodoAdded, func(args []binding.Value) binding.Value {
		if len(args) == 0 {
			return binding.Void
		}
		if text, ok := args[0].(string); ok {
			h.OnAdd(text)
		}
		return binding.Void
	})
	if err != nil {
		return fmt.Errorf("bind %s: %w", CallbackTodoAdded, err)
	}

	err = inst.SetCallback(CallbackRemoveDone, func([]binding.Value) binding.Value {
		h.OnRemoveCompleted()
		return binding.Void
	})
	if err != nil {
		return fmt.Errorf("bind %s: %w", CallbackRemoveDone, err)
	}

	err = inst.SetCallback(CallbackTodoToggled, func(args []binding.Value) binding.Value {
		if len(args) == 0 {
			return binding.Void
		}
		if i, ok := args[0].(int); ok {
			h.OnToggle(i)
		}
		return binding.Void
	})
	if err != nil {
		return fmt.Errorf("bind %s: %w", CallbackTodoToggled, err)
	}

	if err := inst.SetProperty(PropertyTodoModel, h.list); err != nil {
		return fmt.Errorf("bind %s: %w", PropertyTodoModel, err)
	}
	return nil
}
