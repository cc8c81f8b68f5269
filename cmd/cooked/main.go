package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unbound-force/cooked/internal/config"
	"github.com/unbound-force/cooked/internal/form"
	"github.com/unbound-force/cooked/internal/menu"
	"github.com/unbound-force/cooked/internal/prompt"
	"github.com/unbound-force/cooked/internal/report"
	"github.com/unbound-force/cooked/internal/scaffold"
	"github.com/unbound-force/cooked/internal/taxonomy"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

// errNoSelection is returned when a menu is left without choosing.
var errNoSelection = errors.New("no menu item chosen")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "cooked",
		Short: "cooked: typed console input for shell scripts",
		Long: `cooked asks questions on the terminal, converts the answers to
typed values (integers, floats, booleans, lists, dates, yes/no,
choices, table rows, phone numbers) and re-asks until the answer
is valid. Prompts and errors go to stderr; results go to stdout.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newAskCmd())
	root.AddCommand(newMenuCmd())
	root.AddCommand(newFormCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newInitCmd())
	return root
}

// ioParams are the streams shared by every interactive command.
type ioParams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func stdio() ioParams {
	return ioParams{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

// loadSettings reads COOKED_* settings, applying flag overrides.
func loadSettings(maxRetries int, errorFormat string) (config.Settings, error) {
	s, err := config.LoadSettings()
	if err != nil {
		return config.Settings{}, err
	}
	if maxRetries > 0 {
		s.MaxRetries = maxRetries
	}
	if errorFormat != "" {
		s.ErrorFormat = errorFormat
	}
	logger.Debug("settings loaded", "max_retries", s.MaxRetries, "no_color", s.NoColor)
	return s, nil
}

func stylesFor(s config.Settings) report.Styles {
	if s.NoColor {
		return report.PlainStyles()
	}
	return report.DefaultStyles()
}

func validateFormat(format string) error {
	switch format {
	case "text", "json", "msgpack":
		return nil
	}
	return fmt.Errorf("invalid format %q: must be 'text', 'json', or 'msgpack'", format)
}

// writeRun outputs run in the requested format. Text output of a single
// answer is the bare value, for use in shell substitutions.
func writeRun(w io.Writer, format string, run *taxonomy.Run, styles report.Styles) error {
	switch format {
	case "json":
		return report.WriteJSON(w, run)
	case "msgpack":
		return report.WriteMsgpack(w, run)
	}
	if len(run.Answers) == 1 && run.Title == "" {
		_, err := fmt.Fprintln(w, report.FormatValue(run.Answers[0].Value))
		return err
	}
	return report.WriteText(w, run, styles)
}

// askParams holds the parsed flags for the ask command.
type askParams struct {
	question    config.Question
	format      string
	maxRetries  int
	errorFormat string
	ioParams
}

// runAsk is the extracted, testable body of the ask command.
func runAsk(ctx context.Context, p askParams) error {
	if err := validateFormat(p.format); err != nil {
		return err
	}
	s, err := loadSettings(p.maxRetries, p.errorFormat)
	if err != nil {
		return err
	}
	if p.question.Name == "" {
		p.question.Name = p.question.Kind
	}

	f := &config.Form{Questions: []config.Question{p.question}}
	qs, err := form.Compile(f)
	if err != nil {
		return err
	}

	start := time.Now()
	run := taxonomy.NewRun(version, "", start)
	con := prompt.NewConsole(p.stdin, p.stderr, stylesFor(s))
	a, err := form.Ask(ctx, con, qs[0], s)
	if err != nil {
		return err
	}
	run.Answers = append(run.Answers, a)
	run.Duration = time.Since(start)
	logger.Debug("answer converted", "kind", a.Kind, "raw", a.Raw)

	return writeRun(p.stdout, p.format, run, stylesFor(s))
}

func newAskCmd() *cobra.Command {
	var (
		q           config.Question
		base        int
		rows        []string
		format      string
		maxRetries  int
		errorFormat string
	)

	cmd := &cobra.Command{
		Use:   "ask KIND",
		Short: "Ask one typed question",
		Long: `Ask one question and print the converted answer.

KIND is one of: ` + kindList() + `.

Examples:
  cooked ask int --prompt "Workers" --default 4
  cooked ask list --sniff --elem float --prompt "Weights"
  cooked ask choice --choice s=small --choice l=large
  cooked ask table --row free --row pro --mode id_or_value`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Kind = args[0]
			q.Base = &base
			for i, v := range rows {
				q.Table = append(q.Table, config.TableRow{ID: i + 1, Value: v})
			}
			return runAsk(cmd.Context(), askParams{
				question:    q,
				format:      format,
				maxRetries:  maxRetries,
				errorFormat: errorFormat,
				ioParams:    stdio(),
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&q.Name, "name", "", "answer name in json/msgpack output (default: KIND)")
	fl.StringVarP(&q.Prompt, "prompt", "p", "", "question text")
	fl.StringVar(&q.Description, "description", "", "expected-value text used in error messages")
	fl.StringVarP(&q.Default, "default", "d", "", "answer used when the input is blank")
	fl.BoolVar(&q.BlankOK, "blank-ok", false, "accept a blank answer")
	fl.IntVar(&base, "base", config.DefaultBase, "integer base, 0 or 2-36 (0 infers from 0x/0o/0b prefixes)")
	fl.StringVar(&q.Delimiter, "delimiter", "", "list delimiter (default ',')")
	fl.BoolVar(&q.Sniff, "sniff", false, "detect the list delimiter from the input")
	fl.StringVar(&q.Elem, "elem", "", "list element kind")
	fl.StringToStringVar(&q.Choices, "choice", nil, "choice as key=value (repeatable)")
	fl.StringArrayVar(&rows, "row", nil, "table row value; ids are assigned from 1 (repeatable)")
	fl.StringVar(&q.Mode, "mode", "", "table lookup mode: value, id or id_or_value")
	fl.StringVar(&q.Region, "region", "", "default phone region, e.g. US")
	fl.StringSliceVar(&q.Cleaners, "clean", nil, "cleaners: strip, lstrip, rstrip, lower, upper, capitalize, title")
	fl.StringVar(&format, "format", "text", "output format: text, json, or msgpack")
	fl.IntVar(&maxRetries, "max-retries", 0, "give up after this many invalid answers (0 = COOKED_MAX_RETRIES or unlimited)")
	fl.StringVar(&errorFormat, "error-format", "", "error template with {value} and {error_content}")

	return cmd
}

func kindNames() []string {
	names := make([]string, len(taxonomy.Kinds))
	for i, k := range taxonomy.Kinds {
		names[i] = string(k)
	}
	return names
}

func kindList() string {
	return strings.Join(kindNames(), ", ")
}

// menuParams holds the parsed flags for the menu command.
type menuParams struct {
	menu        menu.Menu
	format      string
	interactive bool
	ioParams
}

// parseMenuItems turns "tag=Text" or "Text" arguments into items.
func parseMenuItems(args []string) []menu.Item {
	items := make([]menu.Item, 0, len(args))
	for _, a := range args {
		if tag, text, ok := strings.Cut(a, "="); ok && tag != "" {
			items = append(items, menu.Item{Text: text, Tag: tag})
			continue
		}
		items = append(items, menu.Item{Text: a})
	}
	return items
}

// runMenu is the extracted, testable body of the menu command.
func runMenu(ctx context.Context, p menuParams) error {
	if err := validateFormat(p.format); err != nil {
		return err
	}
	s, err := loadSettings(p.menu.MaxRetries, p.menu.ErrorFormat)
	if err != nil {
		return err
	}
	m := p.menu
	m.MaxRetries, m.ErrorFormat = s.MaxRetries, s.ErrorFormat

	start := time.Now()
	var item menu.Item
	if p.interactive {
		var ok bool
		item, ok, err = runInteractiveMenu(&m, p.stdin, p.stderr)
		if err == nil && !ok {
			err = errNoSelection
		}
	} else {
		item, err = m.Choose(ctx, prompt.NewConsole(p.stdin, p.stderr, stylesFor(s)))
	}
	if err != nil {
		return err
	}
	if more, err := m.Do(ctx, item); err != nil {
		return err
	} else if !more {
		return errNoSelection
	}

	value := item.Tag
	if value == "" {
		value = item.Text
	}
	run := taxonomy.NewRun(version, "", start)
	run.Answers = append(run.Answers, taxonomy.Answer{Name: "menu", Kind: taxonomy.KindChoice, Raw: item.Text, Value: value})
	run.Duration = time.Since(start)
	return writeRun(p.stdout, p.format, run, stylesFor(s))
}

func newMenuCmd() *cobra.Command {
	var (
		m           menu.Menu
		format      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "menu ITEM...",
		Short: "Pick one item from a numbered menu",
		Long: `Show a numbered menu and print the tag (or text) of the chosen
item. An item written as TAG=TEXT can also be picked by its tag.
Choosing the exit item exits with status 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m.Items = parseMenuItems(args)
			return runMenu(cmd.Context(), menuParams{
				menu:        m,
				format:      format,
				interactive: interactive,
				ioParams:    stdio(),
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&m.Title, "title", "t", "", "menu title")
	fl.StringVarP(&m.Prompt, "prompt", "p", "", "question text")
	fl.StringVarP(&m.DefaultChoice, "default", "d", "", "row number or tag used when the input is blank")
	fl.BoolVar(&m.AddExit, "exit", false, "add an exit item")
	fl.BoolVar(&m.CaseSensitive, "case-sensitive", false, "match tags case-sensitively")
	fl.IntVar(&m.MaxRetries, "max-retries", 0, "give up after this many invalid answers")
	fl.StringVar(&m.ErrorFormat, "error-format", "", "error template with {value} and {error_content}")
	fl.StringVar(&format, "format", "text", "output format: text, json, or msgpack")
	fl.BoolVarP(&interactive, "interactive", "i", false, "pick with the arrow keys")

	return cmd
}

// formParams holds the parsed flags for the form command.
type formParams struct {
	path   string
	format string
	ioParams
}

// runForm is the extracted, testable body of the form command.
func runForm(ctx context.Context, p formParams) error {
	if err := validateFormat(p.format); err != nil {
		return err
	}
	s, err := loadSettings(0, "")
	if err != nil {
		return err
	}
	f, err := config.LoadForm(p.path)
	if err != nil {
		return err
	}
	logger.Debug("form loaded", "path", p.path, "questions", len(f.Questions))

	start := time.Now()
	run := taxonomy.NewRun(version, f.Title, start)
	if f.Title != "" {
		fmt.Fprintln(p.stderr, stylesFor(s).Header.Render(f.Title))
	}
	answers, err := form.Run(ctx, prompt.NewConsole(p.stdin, p.stderr, stylesFor(s)), f, s)
	if err != nil {
		return err
	}
	run.Answers = answers
	run.Duration = time.Since(start)
	logger.Debug("form complete", "answers", len(answers), "duration", run.Duration)

	if p.format == "text" {
		return report.WriteText(p.stdout, run, stylesFor(s))
	}
	return writeRun(p.stdout, p.format, run, stylesFor(s))
}

func newFormCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "form FILE",
		Short: "Ask every question of a YAML form file",
		Long: `Ask the questions of a form file in order and print all answers.
Run 'cooked init' for an example and 'cooked schema --form' for the
file format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd.Context(), formParams{
				path:     args[0],
				format:   format,
				ioParams: stdio(),
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, or msgpack")
	return cmd
}

// runShow renders a saved msgpack run as text.
func runShow(path string, stdout io.Writer) error {
	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening run: %w", err)
	}
	defer fh.Close()

	run, err := report.ReadMsgpack(fh)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s, err := loadSettings(0, "")
	if err != nil {
		return err
	}
	return report.WriteText(stdout, run, stylesFor(s))
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print a run saved with --format msgpack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args[0], cmd.OutOrStdout())
		},
	}
}

func newSchemaCmd() *cobra.Command {
	var formSchema bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for cooked output or form files",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of --format=json output. With --form, print the schema of
form files instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !formSchema {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
				return err
			}
			data, err := config.FormSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().BoolVar(&formSchema, "form", false, "print the form file schema")
	return cmd
}

func newInitCmd() *cobra.Command {
	var (
		force bool
		forms []string
	)

	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Write example form files",
		Long: `Write example forms into DIR (default: the current directory):
cooked.yaml at the root and the rest under forms/. Existing files
are kept unless --force is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := scaffold.Options{
				Forms:   forms,
				Force:   force,
				Version: version,
				Stdout:  cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				opts.Dir = args[0]
			}
			res, err := scaffold.Run(opts)
			if err != nil {
				return err
			}
			logger.Debug("scaffold complete", "written", len(res.Written), "skipped", len(res.Skipped))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace existing files")
	cmd.Flags().StringSliceVar(&forms, "form", nil, "example to write, e.g. cooked or contact (repeatable; default all)")
	return cmd
}
