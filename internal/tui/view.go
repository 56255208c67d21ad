package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

// row adapts one model row to bubbles/list.Item.
type row struct {
	item  model.Item
	valid bool
}

func (r row) FilterValue() string { return r.item.Title }

// rowDelegate renders each row on a single line.
type rowDelegate struct{}

func (d rowDelegate) Height() int                         { return 1 }
func (d rowDelegate) Spacing() int                        { return 0 }
func (d rowDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	r, _ := li.(row)
	theme := ui.Current()

	var line string
	switch {
	case !r.valid:
		line = errorStyle.Render("? malformed entry")
	case r.item.Checked:
		line = successStyle.Render(theme.Box(true)) + " " + doneStyle.Render(r.item.Title)
	default:
		line = mutedStyle.Render(theme.Box(false)) + " " + r.item.Title
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type keyMap struct {
	add     key.Binding
	toggle  key.Binding
	quit    key.Binding
	actions []action
}

type action struct {
	binding  key.Binding
	callback string
}

func newKeyMap(d Description) keyMap {
	km := keyMap{
		add:    key.NewBinding(key.WithKeys(d.Keys.Add...), key.WithHelp(keyHelp(d.Keys.Add), "add")),
		toggle: key.NewBinding(key.WithKeys(d.Keys.Toggle...), key.WithHelp(keyHelp(d.Keys.Toggle), "toggle")),
		quit:   key.NewBinding(key.WithKeys(d.Keys.Quit...), key.WithHelp(keyHelp(d.Keys.Quit), "quit")),
	}
	for _, a := range d.Actions {
		help := a.Help
		if help == "" {
			help = a.Callback
		}
		km.actions = append(km.actions, action{
			binding:  key.NewBinding(key.WithKeys(a.Key), key.WithHelp(keyHelp([]string{a.Key}), help)),
			callback: a.Callback,
		})
	}
	return km
}

func (k keyMap) help() []key.Binding {
	out := []key.Binding{k.add, k.toggle}
	for _, a := range k.actions {
		out = append(out, a.binding)
	}
	return out
}

func keyHelp(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return strings.Join(names, "/")
}

// view is the bubbletea model. It renders the bound list and turns key
// presses into callbacks on the instance; it never mutates the list.
type view struct {
	inst   *Instance
	list   list.Model
	input  textinput.Model
	keys   keyMap
	adding bool

	width, height int
}

func newView(inst *Instance) view {
	desc := inst.def.desc

	l := list.New(nil, rowDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("item", "items")

	km := newKeyMap(desc)
	l.AdditionalShortHelpKeys = km.help
	l.AdditionalFullHelpKeys = km.help

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = desc.Input.Placeholder
	ti.CharLimit = desc.Input.CharLimit

	v := view{
		inst:   inst,
		list:   l,
		input:  ti,
		keys:   km,
		width:  80,
		height: 24,
	}
	v.sync()
	v.resize()
	return v
}

func (v view) Init() tea.Cmd { return nil }

func (v view) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		v.width, v.height = ws.Width, ws.Height
		v.resize()
		return v, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyCtrlC {
		return v, tea.Quit
	}
	if v.adding {
		return v.updateAdding(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, v.keys.quit):
			return v, tea.Quit
		case key.Matches(km, v.keys.add):
			v.adding = true
			v.input.SetValue("")
			v.resize()
			cmd := v.input.Focus()
			return v, cmd
		case key.Matches(km, v.keys.toggle):
			if len(v.list.Items()) > 0 {
				v.inst.invoke(v.inst.def.desc.List.OnToggle, v.list.Index())
			}
			cmd := v.sync()
			return v, cmd
		}
		for _, a := range v.keys.actions {
			if key.Matches(km, a.binding) {
				v.inst.invoke(a.callback)
				cmd := v.sync()
				return v, cmd
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	syncCmd := v.sync()
	return v, tea.Batch(cmd, syncCmd)
}

func (v view) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEnter:
			text := v.input.Value()
			v.closeInput()
			v.inst.invoke(v.inst.def.desc.Input.OnAccepted, text)
			cmd := v.sync()
			if n := len(v.list.Items()); n > 0 {
				v.list.Select(n - 1)
			}
			return v, cmd
		case tea.KeyEsc:
			v.closeInput()
			return v, nil
		}
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *view) closeInput() {
	v.adding = false
	v.input.SetValue("")
	v.input.Blur()
	v.resize()
}

// sync re-reads the bound rows when an observer reported a change.
func (v *view) sync() tea.Cmd {
	if !v.inst.dirty {
		return nil
	}
	v.inst.dirty = false

	rows := v.inst.rows()
	items := make([]list.Item, 0, len(rows))
	done, pending := 0, 0
	for _, raw := range rows {
		it, ok := model.TryDecode(raw)
		items = append(items, row{item: it, valid: ok})
		switch {
		case !ok:
		case it.Checked:
			done++
		default:
			pending++
		}
	}

	v.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render(v.inst.def.Title()),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), len(items),
	)
	cmd := v.list.SetItems(items)
	if idx := v.list.Index(); idx >= len(items) && len(items) > 0 {
		v.list.Select(len(items) - 1)
	}
	return cmd
}

func (v *view) resize() {
	h := v.height - 2
	if v.adding {
		h -= 4
	}
	v.list.SetSize(max(v.width-4, 0), max(h, 0))
}

func (v view) View() string {
	content := v.list.View()
	if v.adding {
		inputLine := "Add new item\n" + v.input.View()
		content += "\n" + frameStyle.Render(inputLine)
	}
	return frameStyle.Render(content)
}
