package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/cooked/internal/convert"
	"github.com/unbound-force/cooked/internal/taxonomy"
)

// WriteText writes run as a human-readable styled table.
func WriteText(w io.Writer, run *taxonomy.Run, s Styles) error {
	if run.Title != "" {
		fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("=== %s ===", run.Title)))
	}
	if len(run.Answers) == 0 {
		fmt.Fprintln(w, s.Muted.Render("    No answers collected."))
		return nil
	}

	// Budget: 80 cols. NAME=20, KIND=8, VALUE=42 plus borders and padding.
	const maxValue = 42
	rows := make([][]string, 0, len(run.Answers))
	for _, a := range run.Answers {
		v := FormatValue(a.Value)
		if len(v) > maxValue {
			v = v[:maxValue-3] + "..."
		}
		rows = append(rows, []string{a.Name, string(a.Kind), v})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if col == 1 && row >= 0 && row < len(rows) {
				return s.KindStyle(taxonomy.Kind(rows[row][1])).PaddingRight(1)
			}
			return s.TableCell
		}).
		Headers("NAME", "KIND", "VALUE").
		Rows(rows...)
	fmt.Fprintln(w, t)

	blank := 0
	for _, a := range run.Answers {
		if a.Value == nil {
			blank++
		}
	}
	fmt.Fprintln(w, s.SubHeader.Render(fmt.Sprintf(
		"%d answer(s) collected, %d blank", len(run.Answers), blank)))
	return nil
}

// FormatValue renders an answer value on one line. Dates at midnight
// are shown without a time of day.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "(blank)"
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	case convert.TableRow:
		return fmt.Sprintf("%s (id %d)", x.Value, x.ID)
	case []string:
		return strings.Join(x, ", ")
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = FormatValue(e)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + FormatValue(x[k])
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(x)
	}
}
