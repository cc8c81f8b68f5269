package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unbound-force/cooked/internal/menu"
	"github.com/unbound-force/cooked/internal/prompt"
)

// keyMap defines keybindings for the interactive picker.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Select key.Binding
	Quit   key.Binding
	Help   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Select, k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the picker.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("40"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// pickerModel is the Bubble Tea model for choosing a menu item.
type pickerModel struct {
	title  string
	items  []menu.Item
	cursor int
	chosen int
	help   help.Model
	keys   keyMap
}

func newPickerModel(m *menu.Menu) pickerModel {
	rows := m.Rows()
	cursor := 0
	if def := strings.TrimSpace(m.DefaultChoice); def != "" {
		c := m.Convertor()
		if idx, err := c.Convert(def, nil, ""); err == nil {
			cursor = idx
		} else if idx, err := c.Convert(prompt.Lower{}.Clean(def), nil, ""); err == nil && !m.CaseSensitive {
			cursor = idx
		}
	}
	return pickerModel{
		title:  m.Title,
		items:  rows,
		cursor: cursor,
		chosen: -1,
		help:   help.New(),
		keys:   defaultKeyMap,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.Select):
		m.chosen = m.cursor
		return m, tea.Quit
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Top):
		m.cursor = 0
	case key.Matches(km, m.keys.Bottom):
		m.cursor = len(m.items) - 1
	case key.Matches(km, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		// Digits jump to a row.
		if n, err := strconv.Atoi(km.String()); err == nil && n >= 1 && n <= len(m.items) {
			m.cursor = n - 1
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var sb strings.Builder
	if m.title != "" {
		sb.WriteString(titleStyle.Render(m.title))
		sb.WriteString("\n")
	}
	for i, it := range m.items {
		line := fmt.Sprintf("%d. %s", i+1, it.Text)
		if it.Tag != "" {
			line += " " + tagStyle.Render("("+it.Tag+")")
		}
		if i == m.cursor {
			sb.WriteString(cursorStyle.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return sb.String()
}

// selected returns the chosen item, if any.
func (m pickerModel) selected() (menu.Item, bool) {
	if m.chosen < 0 || m.chosen >= len(m.items) {
		return menu.Item{}, false
	}
	return m.items[m.chosen], true
}

// runInteractiveMenu launches the Bubble Tea picker for m. The picker
// draws on out so stdout stays free for the result.
func runInteractiveMenu(m *menu.Menu, in io.Reader, out io.Writer) (menu.Item, bool, error) {
	if len(m.Rows()) == 0 {
		return menu.Item{}, false, menu.ErrNoItems
	}
	p := tea.NewProgram(newPickerModel(m), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return menu.Item{}, false, err
	}
	item, ok := final.(pickerModel).selected()
	return item, ok, nil
}
