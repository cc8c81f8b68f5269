// Package form turns form-file questions into convertors and asks them
// in order.
package form

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/unbound-force/cooked/internal/config"
	"github.com/unbound-force/cooked/internal/convert"
	"github.com/unbound-force/cooked/internal/prompt"
	"github.com/unbound-force/cooked/internal/taxonomy"
)

// ErrUnknownKind is returned for a question kind no convertor handles.
var ErrUnknownKind = errors.New("unknown question kind")

// Build returns the convertor for q.
func Build(q config.Question) (convert.Convertor[any], error) {
	kind, ok := taxonomy.ParseKind(q.Kind)
	if !ok {
		return nil, fmt.Errorf("question %q: %w %q", q.Name, ErrUnknownKind, q.Kind)
	}
	c, err := build(kind, q, describe(q.Description))
	if err != nil {
		return nil, fmt.Errorf("question %q: %w", q.Name, err)
	}
	return c, nil
}

func describe(desc string) []convert.Option {
	if desc == "" {
		return nil
	}
	return []convert.Option{convert.WithDescription(desc)}
}

func build(kind taxonomy.Kind, q config.Question, opts []convert.Option) (convert.Convertor[any], error) {
	switch kind {
	case taxonomy.KindList:
		return buildList(q, opts)
	case taxonomy.KindChoice:
		if len(q.Choices) == 0 {
			return nil, errors.New("choice question needs choices")
		}
		return convert.Erase[string](convert.NewChoice(q.Choices, opts...)), nil
	case taxonomy.KindTable:
		if len(q.Table) == 0 {
			return nil, errors.New("table question needs rows")
		}
		mode, ok := convert.ParseTableMode(q.Mode)
		if !ok {
			return nil, fmt.Errorf("unknown table mode %q", q.Mode)
		}
		rows := make([]convert.TableRow, len(q.Table))
		for i, r := range q.Table {
			rows[i] = convert.TableRow{ID: r.ID, Value: r.Value}
		}
		return convert.Erase[convert.TableRow](convert.NewTable(rows, mode, nil, opts...)), nil
	default:
		return buildScalar(kind, q, opts)
	}
}

func buildScalar(kind taxonomy.Kind, q config.Question, opts []convert.Option) (convert.Convertor[any], error) {
	switch kind {
	case taxonomy.KindInt:
		base := q.IntBase()
		if base != 0 && (base < 2 || base > 36) {
			return nil, fmt.Errorf("%w: %d", convert.ErrInvalidBase, base)
		}
		return convert.Erase[int64](convert.NewInt(base, opts...)), nil
	case taxonomy.KindFloat:
		return convert.Erase[float64](convert.NewFloat(opts...)), nil
	case taxonomy.KindBool:
		return convert.Erase[bool](convert.NewBoolean(opts...)), nil
	case taxonomy.KindYesNo:
		return convert.Erase[string](convert.NewYesNo(opts...)), nil
	case taxonomy.KindDate:
		return convert.Erase[time.Time](convert.NewDate(opts...)), nil
	case taxonomy.KindPhone:
		return convert.Erase[string](convert.NewPhone(q.Region, opts...)), nil
	case taxonomy.KindString:
		return convert.Erase[string](convert.NewText(opts...)), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
}

func buildList(q config.Question, opts []convert.Option) (convert.Convertor[any], error) {
	switch {
	case q.Sniff && q.Delimiter != "":
		return nil, errors.New("list question sets both delimiter and sniff")
	case q.Sniff:
		opts = append(opts, convert.WithSniffedDelimiter())
	case q.Delimiter != "":
		r, size := utf8.DecodeRuneInString(q.Delimiter)
		if size != len(q.Delimiter) || r == '"' || r == '\n' || r == '\r' {
			return nil, fmt.Errorf("invalid list delimiter %q", q.Delimiter)
		}
		opts = append(opts, convert.WithDelimiter(r))
	}

	if q.Elem == "" {
		return convert.Erase[[]string](convert.NewList(opts...)), nil
	}
	elemKind, ok := taxonomy.ParseKind(q.Elem)
	if !ok || taxonomy.FamilyOf(elemKind) == taxonomy.FamilyList || taxonomy.FamilyOf(elemKind) == taxonomy.FamilySelection {
		return nil, fmt.Errorf("unsupported list element kind %q", q.Elem)
	}
	elem, err := buildScalar(elemKind, config.Question{Base: q.Base, Region: q.Region}, nil)
	if err != nil {
		return nil, err
	}
	return convert.Erase[[]any](convert.NewListOf(elem, opts...)), nil
}

// Question is a form question ready to be asked.
type Question struct {
	config.Question
	Convertor convert.Convertor[any]
	Cleaners  []prompt.Cleaner
}

// Compile builds every question of f. All errors are returned together.
func Compile(f *config.Form) ([]Question, error) {
	out := make([]Question, 0, len(f.Questions))
	var errs []error
	for _, q := range f.Questions {
		c, err := Build(q)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cleaners, err := prompt.ParseCleaners(q.Cleaners)
		if err != nil {
			errs = append(errs, fmt.Errorf("question %q: %w", q.Name, err))
			continue
		}
		out = append(out, Question{Question: q, Convertor: c, Cleaners: cleaners})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Run asks every question of f in order and returns the answers. On
// error the answers collected so far are returned with it.
func Run(ctx context.Context, con *prompt.Console, f *config.Form, s config.Settings) ([]taxonomy.Answer, error) {
	qs, err := Compile(f)
	if err != nil {
		return nil, err
	}
	s = f.Merge(s)

	answers := make([]taxonomy.Answer, 0, len(qs))
	for _, q := range qs {
		a, err := Ask(ctx, con, q, s)
		if err != nil {
			return answers, fmt.Errorf("question %q: %w", q.Name, err)
		}
		answers = append(answers, a)
	}
	return answers, nil
}

// Ask asks a single compiled question.
func Ask(ctx context.Context, con *prompt.Console, q Question, s config.Settings) (taxonomy.Answer, error) {
	text := q.Prompt
	if text == "" {
		text = q.Name
	}
	rec := &recording{Convertor: q.Convertor}
	v, err := prompt.Ask[any](ctx, con, rec, prompt.Options{
		Prompt:      text,
		Default:     q.Default,
		BlankOK:     q.BlankOK,
		Cleaners:    q.Cleaners,
		ErrorFormat: s.ErrorFormat,
		MaxRetries:  s.MaxRetries,
	})
	if err != nil {
		return taxonomy.Answer{}, err
	}
	return taxonomy.Answer{Name: q.Name, Kind: taxonomy.Kind(q.Kind), Raw: rec.raw, Value: v}, nil
}

// recording remembers the last input it converted successfully.
type recording struct {
	convert.Convertor[any]
	raw string
}

func (r *recording) Convert(value string, report convert.ErrorFunc, format string) (any, error) {
	v, err := r.Convertor.Convert(value, report, format)
	if err == nil {
		r.raw = value
	}
	return v, err
}
