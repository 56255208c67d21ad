package tui

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/app"
	"github.com/idilsaglam/todolist/internal/binding"
	"github.com/idilsaglam/todolist/internal/model"
)

func newBoundInstance(t *testing.T, rows ...any) (*Instance, *model.List) {
	t.Helper()
	def, diags := Compile(DefaultDescription())
	require.NotNil(t, def, messages(diags))

	inst := def.Create(zerolog.Nop())
	t.Cleanup(inst.Close)

	list := model.NewList(rows...)
	require.NoError(t, app.Bind(inst, app.NewHandlers(list, app.Options{}, zerolog.Nop())))
	return inst, list
}

func send(t *testing.T, v view, msgs ...tea.Msg) view {
	t.Helper()
	for _, msg := range msgs {
		m, _ := v.Update(msg)
		var ok bool
		v, ok = m.(view)
		require.True(t, ok)
	}
	return v
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func titles(v view) []string {
	var out []string
	for _, li := range v.list.Items() {
		out = append(out, li.(row).item.Title)
	}
	return out
}

func TestViewShowsBoundRows(t *testing.T) {
	inst, _ := newBoundInstance(t, model.Seed()...)
	v := newView(inst)

	assert.Len(t, v.list.Items(), 8)
	assert.Contains(t, v.list.Title, "Todos")
	assert.Contains(t, v.View(), "Implement the .60 file")
}

func TestViewRemoveDone(t *testing.T) {
	inst, list := newBoundInstance(t, model.Seed()...)
	v := newView(inst)

	v = send(t, v, runes("x"))

	assert.Equal(t, 6, list.Len())
	assert.Equal(t, []string{
		"Make the C++ code",
		"Write some JavaScript code",
		"Test the application",
		"Ship to customer",
		"???",
		"Profit",
	}, titles(v))
}

func TestViewAdd(t *testing.T) {
	inst, list := newBoundInstance(t, model.Seed()...)
	v := newView(inst)

	v = send(t, v, runes("a"))
	require.True(t, v.adding)

	v = send(t, v, runes("Buy milk"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, v.adding)

	require.Equal(t, 9, list.Len())
	assert.Equal(t, model.Item{Title: "Buy milk"}, list.Items()[8])
	assert.Equal(t, "Buy milk", titles(v)[8])
	assert.Equal(t, 8, v.list.Index(), "the new entry is selected")
}

func TestViewAddCancelled(t *testing.T) {
	inst, list := newBoundInstance(t, model.Seed()...)
	v := newView(inst)

	v = send(t, v, runes("a"), runes("nope"), tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, v.adding)
	assert.Equal(t, 8, list.Len())
	assert.Empty(t, v.input.Value())
}

func TestViewAddingCapturesActionKeys(t *testing.T) {
	inst, list := newBoundInstance(t, model.Seed()...)
	v := newView(inst)

	// "x" and "q" are text while the input is open
	v = send(t, v, runes("a"), runes("x"), runes("q"), tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, 9, list.Len())
	assert.Equal(t, "xq", list.Items()[8].Title)
}

func TestViewToggle(t *testing.T) {
	inst, list := newBoundInstance(t, model.NewRecord("a", false), model.NewRecord("b", false))
	v := newView(inst)

	v = send(t, v, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.Equal(t, []model.Item{{Title: "a", Checked: true}, {Title: "b"}}, list.Items())
	assert.True(t, v.list.Items()[0].(row).item.Checked)
}

func TestViewToggleEmptyList(t *testing.T) {
	inst, list := newBoundInstance(t)
	v := newView(inst)

	v = send(t, v, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, runes("x"))
	assert.Zero(t, list.Len())
	assert.Empty(t, v.list.Items())
}

func TestViewRendersMalformedRows(t *testing.T) {
	inst, _ := newBoundInstance(t, "junk", model.NewRecord("ok", false))
	v := newView(inst)
	v = send(t, v, tea.WindowSizeMsg{Width: 60, Height: 20})

	out := v.View()
	assert.Contains(t, out, "malformed entry")
	assert.Contains(t, out, "ok")
}

func TestViewQuit(t *testing.T) {
	inst, _ := newBoundInstance(t)
	v := newView(inst)

	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := v.Update(msg)
		require.NotNil(t, cmd, msg.String())
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestViewFollowsOutsideChanges(t *testing.T) {
	inst, list := newBoundInstance(t)
	v := newView(inst)

	list.Append(model.NewRecord("late", false))
	assert.True(t, inst.dirty)

	v = send(t, v, tea.WindowSizeMsg{Width: 80, Height: 24}, runes("j"))
	assert.Equal(t, []string{"late"}, titles(v))
	assert.False(t, inst.dirty)
}

func TestInstanceSetProperty(t *testing.T) {
	def, _ := Compile(DefaultDescription())
	inst := def.Create(zerolog.Nop())
	defer inst.Close()

	assert.ErrorIs(t, inst.SetProperty("todo-model", []any{}), ErrPropertyType)
	assert.ErrorIs(t, inst.SetProperty("todo-model", (*model.List)(nil)), ErrPropertyType)
	assert.ErrorIs(t, inst.SetProperty("nope", model.NewList()), binding.ErrUnknownProperty)
	assert.ErrorIs(t, inst.SetCallback("nope", nil), binding.ErrUnknownCallback)

	first, second := model.NewList(), model.NewList()
	require.NoError(t, inst.SetProperty("todo-model", first))
	require.NoError(t, inst.SetProperty("todo-model", second))
	inst.dirty = false

	first.Append("ignored")
	assert.False(t, inst.dirty, "replaced models are no longer observed")
	second.Append(model.NewRecord("seen", false))
	assert.True(t, inst.dirty)
}

func TestInstanceRunStopsOnCancel(t *testing.T) {
	def, _ := Compile(DefaultDescription())
	inst := def.Create(zerolog.Nop(), tea.WithInput(nil), tea.WithOutput(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, inst.Run(ctx))
}
