package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boundsCheckingSeq fails the test whenever the compactor reads or removes
// outside the list's current length.
type boundsCheckingSeq struct {
	t *testing.T
	*List
	reads, removes int
}

func (s *boundsCheckingSeq) Get(i int) (any, error) {
	s.reads++
	require.Less(s.t, i, s.List.Len(), "read at %d", i)
	require.GreaterOrEqual(s.t, i, 0)
	return s.List.Get(i)
}

func (s *boundsCheckingSeq) RemoveAt(i int) error {
	s.removes++
	require.Less(s.t, i, s.List.Len(), "remove at %d", i)
	require.GreaterOrEqual(s.t, i, 0)
	return s.List.RemoveAt(i)
}

func records(items ...Item) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it.Record()
	}
	return out
}

func unchecked(items []Item) []Item {
	out := []Item{}
	for _, it := range items {
		if !it.Checked {
			out = append(out, it)
		}
	}
	return out
}

func TestRemoveCompletedSeed(t *testing.T) {
	l := NewList(Seed()...)

	n := RemoveCompleted(l)

	assert.Equal(t, 2, n)
	assert.Equal(t, []Item{
		{Title: "Make the C++ code"},
		{Title: "Write some JavaScript code"},
		{Title: "Test the application"},
		{Title: "Ship to customer"},
		{Title: "???"},
		{Title: "Profit"},
	}, l.Items())
}

func TestRemoveCompletedEmpty(t *testing.T) {
	l := NewList()
	notified := 0
	l.Subscribe(func(Change) { notified++ })

	assert.Zero(t, RemoveCompleted(l))
	assert.Zero(t, l.Len())
	assert.Zero(t, notified)
}

func TestRemoveCompletedAllChecked(t *testing.T) {
	l := NewList(records(
		Item{"a", true}, Item{"b", true}, Item{"c", true},
	)...)
	var removedAt []int
	l.Subscribe(func(c Change) { removedAt = append(removedAt, c.Index) })

	assert.Equal(t, 3, RemoveCompleted(l))
	assert.Zero(t, l.Len())
	// every removal happens at the front once earlier rows are gone
	assert.Equal(t, []int{0, 0, 0}, removedAt)
}

func TestRemoveCompletedNoneChecked(t *testing.T) {
	rows := records(Item{"a", false}, Item{"b", false}, Item{"a", false})
	l := NewList(rows...)
	notified := 0
	l.Subscribe(func(Change) { notified++ })

	assert.Zero(t, RemoveCompleted(l))
	assert.Equal(t, rows, l.Rows())
	assert.Zero(t, notified)
}

func TestRemoveCompletedAdjacentAndTrailing(t *testing.T) {
	l := NewList(records(
		Item{"keep1", false},
		Item{"drop1", true},
		Item{"drop2", true},
		Item{"keep2", false},
		Item{"drop3", true},
		Item{"drop4", true},
	)...)

	assert.Equal(t, 4, RemoveCompleted(l))
	assert.Equal(t, []Item{{Title: "keep1"}, {Title: "keep2"}}, l.Items())
}

func TestRemoveCompletedSkipsMalformed(t *testing.T) {
	l := NewList(
		NewRecord("done", true),
		"not a record",
		Record{"title": "half"},
		NewRecord("todo", false),
		NewRecord("done too", true),
	)

	assert.Equal(t, 2, RemoveCompleted(l))
	assert.Equal(t, []any{
		"not a record",
		Record{"title": "half"},
		NewRecord("todo", false),
	}, l.Rows())
}

func TestRemoveCompletedProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		n := rng.Intn(20)
		items := make([]Item, n)
		for i := range items {
			items[i] = Item{Title: string(rune('a' + rng.Intn(26))), Checked: rng.Intn(2) == 0}
		}

		seq := &boundsCheckingSeq{t: t, List: NewList(records(items...)...)}
		RemoveCompleted(seq)

		got := seq.Items()
		// order preserved, exhaustive
		assert.Equal(t, unchecked(items), got)
		for _, it := range got {
			assert.False(t, it.Checked)
		}
		// every original row read exactly once
		assert.Equal(t, n, seq.reads)
		assert.Equal(t, n-len(got), seq.removes)

		// idempotent
		once := seq.Rows()
		assert.Zero(t, RemoveCompleted(seq.List))
		assert.Equal(t, once, seq.Rows())
	}
}
