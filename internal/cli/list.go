package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/app"
	"github.com/idilsaglam/todolist/internal/logger"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

type listFlags struct {
	group      bool
	add        []string
	toggle     []int
	removeDone bool
}

func newListCommand(rf *rootFlags, stdout, stderr io.Writer) *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Print the list after applying actions",
		Long: `ls starts from the built-in list, applies the requested actions in the
order adds, toggles, remove-done, and prints the result.`,
		Example: `  todo ls
  todo ls --add "Buy milk" --toggle 9 --remove-done
  todo ls --group`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSettings(cmd, *rf)
			if err != nil {
				return err
			}
			level, err := logger.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			log := logger.NewConsole(stderr, level)

			list := model.NewList(model.Seed()...)
			h := app.NewHandlers(list, app.Options{RejectEmpty: cfg.Todo.RejectEmpty}, log)
			inst, err := newHeadless(h)
			if err != nil {
				return err
			}

			for _, text := range lf.add {
				if _, err := inst.Invoke(app.CallbackTodoAdded, text); err != nil {
					return err
				}
			}
			for _, n := range lf.toggle {
				if n < 1 || n > list.Len() {
					return usagef("toggle: index out of range: have %d, got %d", list.Len(), n)
				}
				if _, err := inst.Invoke(app.CallbackTodoToggled, n-1); err != nil {
					return err
				}
			}
			if lf.removeDone {
				if _, err := inst.Invoke(app.CallbackRemoveDone); err != nil {
					return err
				}
			}

			printList(stdout, list.Items(), lf.group)
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVar(&lf.group, "group", false, "group output by pending/done")
	f.StringArrayVar(&lf.add, "add", nil, "add an item (repeatable)")
	f.IntSliceVar(&lf.toggle, "toggle", nil, "toggle the item at a 1-based index (repeatable)")
	f.BoolVar(&lf.removeDone, "remove-done", false, "remove completed items")
	return cmd
}

// -------------- rendering helpers --------------

func printList(w io.Writer, items []model.Item, group bool) {
	t := ui.Current()
	d, p := stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Success, "✔"), d,
		ui.C(t.Pending, "•"), p,
		ui.C(t.Accent, "Total"), len(items),
	)

	lines := []string{
		header,
		ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)),
		"",
	}
	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items, 1)...)
	}
	ui.Panel(w, lines)
}

func stats(items []model.Item) (done, pending int) {
	for _, it := range items {
		if it.Checked {
			done++
		} else {
			pending++
		}
	}
	return
}

// flatLines renders items numbered from first.
func flatLines(items []model.Item, first int) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		color := t.Muted
		if it.Checked {
			color = t.Success
		}
		title := it.Title
		if r := []rune(title); len(r) > 80 {
			title = string(r[:77]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C(t.Muted, fmt.Sprintf("%2d.", first+i)), ui.C(color, t.Box(it.Checked)), title))
	}
	return out
}

func groupLines(items []model.Item) []string {
	var pend, done []model.Item
	for _, it := range items {
		if it.Checked {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	t := ui.Current()
	section := func(name string, items []model.Item) []string {
		lines := []string{ui.C(t.Accent, name)}
		if len(items) == 0 {
			return append(lines, ui.C(t.Muted, "(none)"))
		}
		return append(lines, flatLines(items, 1)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
