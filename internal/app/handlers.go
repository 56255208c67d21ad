// Package app wires the todo list to a view: it owns the list handle and
// translates view callbacks into list operations.
package app

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/todolist/internal/model"
)

// Options tune handler policy.
type Options struct {
	// RejectEmpty turns adding a blank title into a no-op. Off by default,
	// which accepts any text including "".
	RejectEmpty bool
}

// Handlers are the entry points a view triggers. Every mutation of the list
// goes through them.
type Handlers struct {
	list *model.List
	opt  Options
	log  zerolog.Logger
}

// NewHandlers returns handlers operating on list.
func NewHandlers(list *model.List, opt Options, log zerolog.Logger) *Handlers {
	return &Handlers{
		list: list,
		opt:  opt,
		log:  log.With().Str("component", "app").Logger(),
	}
}

// List returns the handle the handlers mutate.
func (h *Handlers) List() *model.List { return h.list }

// OnAdd appends an unchecked item titled text.
func (h *Handlers) OnAdd(text string) {
	if h.opt.RejectEmpty && strings.TrimSpace(text) == "" {
		h.log.Debug().Msg("add: empty title ignored")
		return
	}
	h.list.Append(model.NewRecord(text, false))
	h.log.Debug().Str("title", text).Int("len", h.list.Len()).Msg("added")
}

// OnRemoveCompleted drops every checked item.
func (h *Handlers) OnRemoveCompleted() {
	n := model.RemoveCompleted(h.list)
	h.log.Debug().Int("removed", n).Int("len", h.list.Len()).Msg("removed completed")
}

// OnToggle flips the checked flag of the item at index. Out-of-range
// indexes and malformed rows are left alone.
func (h *Handlers) OnToggle(index int) {
	row, err := h.list.Get(index)
	if err != nil {
		h.log.Warn().Err(err).Msg("toggle")
		return
	}
	it, ok := model.TryDecode(row)
	if !ok {
		h.log.Warn().Int("index", index).Msg("toggle: malformed row skipped")
		return
	}
	it.Checked = !it.Checked
	if err := h.list.Set(index, it.Record()); err != nil {
		h.log.Warn().Err(err).Msg("toggle")
		return
	}
	h.log.Debug().Int("index", index).Bool("checked", it.Checked).Msg("toggled")
}
