// Package prompt runs the ask-convert-retry loop on top of the
// convertors in internal/convert.
//
// Ask reads a line, cleans it, substitutes the default for blank input,
// and hands the result to a convertor. Conversion failures are printed
// through the convertor's error callback and the question is asked
// again, up to MaxRetries times.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/unbound-force/cooked/internal/convert"
	"github.com/unbound-force/cooked/internal/report"
)

// DefaultErrorFormat is the template printed when a conversion fails.
// {value} is replaced by the rejected input and {error_content} by the
// convertor's description.
const DefaultErrorFormat = `"{value}" cannot be converted to {error_content}`

var (
	// ErrEOF is returned when input ends before a valid answer is read.
	ErrEOF = errors.New("input closed before a valid answer was given")

	// ErrRetriesExhausted is returned after MaxRetries failed attempts.
	ErrRetriesExhausted = errors.New("too many invalid answers")

	// ErrBlank is reported when blank input is not allowed.
	ErrBlank = errors.New("blank values are not allowed")
)

// Console pairs the input and output streams of an interactive session.
// Reuse one Console across questions so buffered input is not lost.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	styles report.Styles
}

// NewConsole wraps in and out. in may already be a *bufio.Reader.
func NewConsole(in io.Reader, out io.Writer, styles report.Styles) *Console {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Console{in: br, out: out, styles: styles}
}

// Out returns the output stream.
func (c *Console) Out() io.Writer { return c.out }

// Styles returns the console theme.
func (c *Console) Styles() report.Styles { return c.styles }

// ReadLine reads one line without its line terminator. ErrEOF is
// returned only when the stream is exhausted with nothing read.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			return "", ErrEOF
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReportFunc returns an ErrorFunc that prints the formatted error.
func (c *Console) ReportFunc() convert.ErrorFunc {
	return func(format, value, description string) {
		fmt.Fprintln(c.out, c.styles.Error.Render(FormatError(format, value, description)))
	}
}

// FormatError fills the {value} and {error_content} placeholders.
// An empty format selects DefaultErrorFormat.
func FormatError(format, value, description string) string {
	if format == "" {
		format = DefaultErrorFormat
	}
	return strings.NewReplacer("{value}", value, "{error_content}", description).Replace(format)
}

// Options control a single question.
type Options struct {
	// Prompt is the question text.
	Prompt string

	// Default is converted when the cleaned answer is blank.
	Default string

	// BlankOK makes a blank answer (with no default) return the zero value.
	BlankOK bool

	// Cleaners normalize the answer before conversion.
	Cleaners []Cleaner

	// ErrorFormat overrides DefaultErrorFormat.
	ErrorFormat string

	// MaxRetries bounds failed attempts. 0 means unlimited.
	MaxRetries int
}

// Ask prompts until c converts an answer, input ends, ctx is cancelled
// or MaxRetries attempts have failed. ctx is checked between reads; a
// read already in progress is not interrupted.
func Ask[T any](ctx context.Context, con *Console, c convert.Convertor[T], opts Options) (T, error) {
	var zero T
	format := opts.ErrorFormat
	if format == "" {
		format = DefaultErrorFormat
	}
	reportFn := con.ReportFunc()

	failures := 0
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		con.writePrompt(opts.Prompt, opts.Default)
		line, err := con.ReadLine()
		if err != nil {
			return zero, err
		}

		value := Apply(line, opts.Cleaners)
		if value == "" && opts.Default != "" {
			value = Apply(opts.Default, opts.Cleaners)
		}

		var convErr error
		if value == "" && !opts.BlankOK {
			fmt.Fprintln(con.out, con.styles.Error.Render(ErrBlank.Error()))
			convErr = ErrBlank
		} else if value == "" {
			return zero, nil
		} else {
			var v T
			v, convErr = c.Convert(value, reportFn, format)
			if convErr == nil {
				return v, nil
			}
			con.writeHint(convErr)
		}

		failures++
		if opts.MaxRetries > 0 && failures >= opts.MaxRetries {
			return zero, fmt.Errorf("%w: %w", ErrRetriesExhausted, convErr)
		}
	}
}

func (c *Console) writePrompt(text, def string) {
	if text == "" && def == "" {
		return
	}
	var b strings.Builder
	b.WriteString(c.styles.Prompt.Render(text))
	if def != "" {
		if text != "" {
			b.WriteString(" ")
		}
		b.WriteString(c.styles.Default.Render("[" + def + "]"))
	}
	b.WriteString(": ")
	fmt.Fprint(c.out, b.String())
}

func (c *Console) writeHint(err error) {
	var ce *convert.ConversionError
	if errors.As(err, &ce) && ce.Suggestion != "" {
		fmt.Fprintln(c.out, c.styles.Hint.Render(fmt.Sprintf("did you mean %q?", ce.Suggestion)))
	}
}
