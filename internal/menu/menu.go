// Package menu presents a numbered list of items and dispatches the
// action of the one the user picks. Input is parsed by a
// convert.Choice built from the row numbers and item tags.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/cooked/internal/convert"
	"github.com/unbound-force/cooked/internal/prompt"
	"github.com/unbound-force/cooked/internal/report"
)

// ErrNoItems is returned when a menu has nothing to choose from.
var ErrNoItems = errors.New("menu has no items")

// ActionFunc handles a chosen item. Returning false stops Run.
type ActionFunc func(ctx context.Context, item Item) (bool, error)

type actionKind int

const (
	actionDefault actionKind = iota
	actionNone
	actionExit
	actionCall
)

// Action is what happens when an item is chosen. The zero value is
// ActionDefault.
type Action struct {
	kind actionKind
	fn   ActionFunc
}

var (
	// ActionDefault runs the menu's DefaultAction.
	ActionDefault = Action{kind: actionDefault}

	// ActionNone does nothing and keeps the menu running.
	ActionNone = Action{kind: actionNone}

	// ActionExit stops Run.
	ActionExit = Action{kind: actionExit}
)

// Call returns an Action that runs fn.
func Call(fn ActionFunc) Action {
	if fn == nil {
		return ActionNone
	}
	return Action{kind: actionCall, fn: fn}
}

// Item is one menu row.
type Item struct {
	Text   string
	Tag    string
	Action Action
}

// exitItem is appended when Menu.AddExit is set.
var exitItem = Item{Text: "exit", Tag: "exit", Action: ActionExit}

// Menu is a titled list of items.
type Menu struct {
	Title  string
	Prompt string
	Items  []Item

	// DefaultChoice is a row number or tag used on blank input.
	DefaultChoice string

	// DefaultAction runs for items whose Action is ActionDefault.
	// A nil DefaultAction keeps the menu running.
	DefaultAction ActionFunc

	// AddExit appends an "exit" item.
	AddExit bool

	// CaseSensitive disables case folding of tags.
	CaseSensitive bool

	ErrorFormat string
	MaxRetries  int
}

// Rows returns the items as displayed, including the exit item.
func (m *Menu) Rows() []Item {
	rows := make([]Item, 0, len(m.Items)+1)
	rows = append(rows, m.Items...)
	if m.AddExit {
		rows = append(rows, exitItem)
	}
	return rows
}

// Convertor returns the Choice mapping row numbers (from 1) and tags to
// row indexes.
func (m *Menu) Convertor() *convert.Choice[int] {
	rows := m.Rows()
	keys := make(map[string]int, 2*len(rows))
	for i, it := range rows {
		if it.Tag != "" {
			keys[m.fold(it.Tag)] = i
		}
	}
	// Row numbers win over tags that look like numbers.
	for i := range rows {
		keys[strconv.Itoa(i+1)] = i
	}
	return convert.NewChoice(keys, convert.WithDescription("a valid menu choice"))
}

// fold must match the Lower cleaner applied to typed answers.
func (m *Menu) fold(s string) string {
	if m.CaseSensitive {
		return s
	}
	return prompt.Lower{}.Clean(s)
}

func (m *Menu) cleaners() []prompt.Cleaner {
	cs := []prompt.Cleaner{prompt.Strip{Left: true, Right: true}}
	if !m.CaseSensitive {
		cs = append(cs, prompt.Lower{})
	}
	return cs
}

// Render writes the title and the numbered items.
func (m *Menu) Render(w io.Writer, s report.Styles) {
	if m.Title != "" {
		fmt.Fprintln(w, s.Header.Render(m.Title))
	}

	rows := m.Rows()
	data := make([][]string, 0, len(rows))
	hasTags := false
	for i, it := range rows {
		data = append(data, []string{strconv.Itoa(i + 1), it.Text, it.Tag})
		if it.Tag != "" {
			hasTags = true
		}
	}
	headers := []string{"#", "ITEM", "TAG"}
	if !hasTags {
		headers = headers[:2]
		for i := range data {
			data[i] = data[i][:2]
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return s.TableCell
		}).
		Headers(headers...).
		Rows(data...)
	fmt.Fprintln(w, t.Render())
}

// Choose renders the menu and asks until a valid row is picked.
func (m *Menu) Choose(ctx context.Context, con *prompt.Console) (Item, error) {
	rows := m.Rows()
	if len(rows) == 0 {
		return Item{}, ErrNoItems
	}
	m.Render(con.Out(), con.Styles())

	text := m.Prompt
	if text == "" {
		text = "Choose a menu item"
	}
	idx, err := prompt.Ask[int](ctx, con, m.Convertor(), prompt.Options{
		Prompt:      text,
		Default:     m.DefaultChoice,
		Cleaners:    m.cleaners(),
		ErrorFormat: m.ErrorFormat,
		MaxRetries:  m.MaxRetries,
	})
	if err != nil {
		return Item{}, err
	}
	return rows[idx], nil
}

// Do runs the action of item and reports whether the menu should keep
// running.
func (m *Menu) Do(ctx context.Context, item Item) (bool, error) {
	switch item.Action.kind {
	case actionNone:
		return true, nil
	case actionExit:
		return false, nil
	case actionCall:
		return item.Action.fn(ctx, item)
	default:
		if m.DefaultAction == nil {
			return true, nil
		}
		return m.DefaultAction(ctx, item)
	}
}

// Run repeats Choose and Do until an exit item is picked or an action
// returns false or an error.
func (m *Menu) Run(ctx context.Context, con *prompt.Console) error {
	for {
		item, err := m.Choose(ctx, con)
		if err != nil {
			return err
		}
		more, err := m.Do(ctx, item)
		if err != nil {
			return fmt.Errorf("menu item %q: %w", item.Text, err)
		}
		if !more {
			return nil
		}
	}
}
