package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/todolist/internal/binding"
	"github.com/idilsaglam/todolist/internal/model"
)

// ErrPropertyType is returned when a property is set to a value of the
// wrong type.
var ErrPropertyType = errors.New("property type mismatch")

// Instance is a live view created from a Definition. It implements
// binding.Instance. All methods must be called from one goroutine; once Run
// starts, callbacks fire on the bubbletea event loop.
type Instance struct {
	def       *Definition
	log       zerolog.Logger
	callbacks map[string]binding.Callback
	models    map[string]*model.List
	cancels   map[string]func()

	// dirty is set by list observers and cleared when the view re-reads rows.
	dirty bool

	programOpts []tea.ProgramOption
}

// Create instantiates the definition. Extra program options are appended to
// the defaults used by Run.
func (d *Definition) Create(log zerolog.Logger, opts ...tea.ProgramOption) *Instance {
	return &Instance{
		def:         d,
		log:         log.With().Str("component", "tui").Logger(),
		callbacks:   make(map[string]binding.Callback),
		models:      make(map[string]*model.List),
		cancels:     make(map[string]func()),
		dirty:       true,
		programOpts: opts,
	}
}

var _ binding.Instance = (*Instance)(nil)

func (i *Instance) SetCallback(name string, cb binding.Callback) error {
	if _, ok := i.def.callbacks[name]; !ok {
		return fmt.Errorf("%w: %s", binding.ErrUnknownCallback, name)
	}
	i.callbacks[name] = cb
	return nil
}

// SetProperty binds v to name. Model properties take a *model.List; the
// view observes it and never writes to it.
func (i *Instance) SetProperty(name string, v binding.Value) error {
	typ, ok := i.def.properties[name]
	if !ok {
		return fmt.Errorf("%w: %s", binding.ErrUnknownProperty, name)
	}
	switch typ {
	case TypeTodoModel:
		l, ok := v.(*model.List)
		if !ok || l == nil {
			return fmt.Errorf("%w: %s wants %s, got %T", ErrPropertyType, name, typ, v)
		}
		if cancel := i.cancels[name]; cancel != nil {
			cancel()
		}
		i.models[name] = l
		i.cancels[name] = l.Subscribe(func(c model.Change) {
			i.log.Trace().Stringer("kind", c.Kind).Int("index", c.Index).Msg("model changed")
			i.dirty = true
		})
		i.dirty = true
	}
	return nil
}

// invoke calls the callback registered for name. Unregistered callbacks are
// a no-op.
func (i *Instance) invoke(name string, args ...binding.Value) {
	if name == "" {
		return
	}
	cb := i.callbacks[name]
	if cb == nil {
		i.log.Debug().Str("callback", name).Msg("no handler")
		return
	}
	cb(args)
}

// rows returns the rows of the list bound to the view's model property.
func (i *Instance) rows() []any {
	l := i.models[i.def.desc.List.Model]
	if l == nil {
		return nil
	}
	return l.Rows()
}

// Run shows the view in the terminal until the user quits or ctx is done.
func (i *Instance) Run(ctx context.Context) error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, i.programOpts...)
	p := tea.NewProgram(newView(i), opts...)
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("run view: %w", err)
	}
	return nil
}

// Close drops every model subscription.
func (i *Instance) Close() {
	for name, cancel := range i.cancels {
		cancel()
		delete(i.cancels, name)
	}
}
