package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/unbound-force/cooked/internal/taxonomy"
)

// Styles defines the visual theme for prompts, menus and reports.
// Lipgloss automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Header is used for titles (menu titles, form titles).
	Header lipgloss.Style

	// SubHeader is used for secondary information lines.
	SubHeader lipgloss.Style

	// Prompt styles the question text.
	Prompt lipgloss.Style

	// Default styles the "[default]" hint after a prompt.
	Default lipgloss.Style

	// Error styles conversion failure messages.
	Error lipgloss.Style

	// Hint styles "did you mean" suggestions.
	Hint lipgloss.Style

	// Selected styles the highlighted row of the interactive picker.
	Selected lipgloss.Style

	// TableHeader styles the header row of tables.
	TableHeader lipgloss.Style

	// TableCell styles regular table cells.
	TableCell lipgloss.Style

	// KindNumber through KindOther color-code answer kind families.
	KindNumber lipgloss.Style
	KindBool   lipgloss.Style
	KindChoice lipgloss.Style
	KindDate   lipgloss.Style
	KindOther  lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		SubHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		Prompt:   lipgloss.NewStyle().Bold(true),
		Default:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Hint:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("40")),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),

		KindNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		KindBool:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		KindChoice: lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		KindDate:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		KindOther:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),

		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// PlainStyles returns styles that render text unchanged, for
// COOKED_NO_COLOR and tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header: plain, SubHeader: plain,
		Prompt: plain, Default: plain, Error: plain, Hint: plain, Selected: plain,
		TableHeader: plain, TableCell: plain.PaddingRight(1),
		KindNumber: plain, KindBool: plain, KindChoice: plain, KindDate: plain, KindOther: plain,
		Border: plain, Muted: plain,
	}
}

// KindStyle returns the style for an answer kind.
func (s Styles) KindStyle(k taxonomy.Kind) lipgloss.Style {
	switch taxonomy.FamilyOf(k) {
	case taxonomy.FamilyNumber:
		return s.KindNumber
	case taxonomy.FamilyBoolean:
		return s.KindBool
	case taxonomy.FamilySelection:
		return s.KindChoice
	case taxonomy.FamilyTime:
		return s.KindDate
	default:
		return s.KindOther
	}
}
