package model

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is matched by every *IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports an access outside [0, Len).
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index out of range: have %d, got %d", e.Op, e.Len, e.Index)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// ChangeKind says what a mutation did to a List.
type ChangeKind int

const (
	Inserted ChangeKind = iota
	Removed
	Changed
)

func (k ChangeKind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	}
	return "unknown"
}

// Change describes one completed mutation.
type Change struct {
	Kind  ChangeKind
	Index int
}

// Observer is called once per mutation, after it is visible.
type Observer func(Change)

// List is an insertion-ordered, observable sequence of rows.
// Rows are usually Records but a view may hand back anything, so the list
// stores values as-is and leaves decoding to TryDecode.
//
// A List is not safe for concurrent use; callers serialise access on the
// UI event loop.
type List struct {
	rows      []any
	observers []*observerEntry
}

type observerEntry struct {
	fn Observer
}

// NewList returns a list holding rows, without notifying anyone.
func NewList(rows ...any) *List {
	l := &List{rows: make([]any, 0, len(rows))}
	l.rows = append(l.rows, rows...)
	return l
}

// Len returns the current row count.
func (l *List) Len() int { return len(l.rows) }

// Get returns the row at i.
func (l *List) Get(i int) (any, error) {
	if err := l.check("get", i); err != nil {
		return nil, err
	}
	return l.rows[i], nil
}

// Append adds v at the end.
func (l *List) Append(v any) {
	l.rows = append(l.rows, v)
	l.notify(Change{Kind: Inserted, Index: len(l.rows) - 1})
}

// RemoveAt removes the row at i and shifts later rows left by one.
func (l *List) RemoveAt(i int) error {
	if err := l.check("remove", i); err != nil {
		return err
	}
	copy(l.rows[i:], l.rows[i+1:])
	l.rows[len(l.rows)-1] = nil
	l.rows = l.rows[:len(l.rows)-1]
	l.notify(Change{Kind: Removed, Index: i})
	return nil
}

// Set replaces the row at i in place.
func (l *List) Set(i int, v any) error {
	if err := l.check("set", i); err != nil {
		return err
	}
	l.rows[i] = v
	l.notify(Change{Kind: Changed, Index: i})
	return nil
}

// Rows returns a copy of the current rows.
func (l *List) Rows() []any {
	out := make([]any, len(l.rows))
	copy(out, l.rows)
	return out
}

// Items decodes every well-formed row, skipping the rest.
func (l *List) Items() []Item {
	out := make([]Item, 0, len(l.rows))
	for _, r := range l.rows {
		if it, ok := TryDecode(r); ok {
			out = append(out, it)
		}
	}
	return out
}

// Subscribe registers fn and returns a func that removes it again.
func (l *List) Subscribe(fn Observer) (cancel func()) {
	e := &observerEntry{fn: fn}
	l.observers = append(l.observers, e)
	return func() {
		for i, o := range l.observers {
			if o == e {
				l.observers = append(l.observers[:i], l.observers[i+1:]...)
				return
			}
		}
	}
}

func (l *List) check(op string, i int) error {
	if i < 0 || i >= len(l.rows) {
		return &IndexError{Op: op, Index: i, Len: len(l.rows)}
	}
	return nil
}

func (l *List) notify(c Change) {
	// Snapshot so an observer may unsubscribe itself.
	obs := make([]*observerEntry, len(l.observers))
	copy(obs, l.observers)
	for _, o := range obs {
		o.fn(c)
	}
}
