package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/unbound-force/cooked/internal/config"
	"github.com/unbound-force/cooked/internal/menu"
	"github.com/unbound-force/cooked/internal/prompt"
	"github.com/unbound-force/cooked/internal/report"
)

// cleanEnv isolates a test from COOKED_* variables in the caller's
// environment.
func cleanEnv(t *testing.T) {
	t.Helper()
	t.Setenv("COOKED_MAX_RETRIES", "")
	t.Setenv("COOKED_ERROR_FORMAT", "")
	t.Setenv("COOKED_NO_COLOR", "true")
}

func testIO(input string) (ioParams, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return ioParams{stdin: strings.NewReader(input), stdout: &stdout, stderr: &stderr}, &stdout, &stderr
}

func TestRunAsk_InvalidFormat(t *testing.T) {
	cleanEnv(t)
	io, _, _ := testIO("1\n")
	err := runAsk(context.Background(), askParams{question: config.Question{Kind: "int"}, format: "xml", ioParams: io})
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Fatalf("expected invalid format error, got %v", err)
	}
}

func TestRunAsk_UnknownKind(t *testing.T) {
	cleanEnv(t)
	io, _, _ := testIO("1\n")
	err := runAsk(context.Background(), askParams{question: config.Question{Kind: "color"}, format: "text", ioParams: io})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

// TestRunAsk_TextFormat verifies prompts and errors go to stderr while
// only the bare value reaches stdout.
func TestRunAsk_TextFormat(t *testing.T) {
	cleanEnv(t)
	io, stdout, stderr := testIO("many\n007\n")

	err := runAsk(context.Background(), askParams{
		question: config.Question{Kind: "int", Prompt: "Workers"},
		format:   "text",
		ioParams: io,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != "7\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "7\n")
	}
	if !strings.Contains(stderr.String(), "Workers: ") {
		t.Errorf("prompt missing from stderr: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), `"many" cannot be converted to an integer number`) {
		t.Errorf("error missing from stderr: %q", stderr.String())
	}
}

func TestAskCmd_BaseDefaultsToDecimal(t *testing.T) {
	fl := newAskCmd().Flags().Lookup("base")
	if fl == nil {
		t.Fatal("--base flag not registered")
	}
	if fl.DefValue != "10" {
		t.Errorf("--base default = %q, want %q", fl.DefValue, "10")
	}
}

func TestRunAsk_JSONFormat(t *testing.T) {
	cleanEnv(t)
	io, stdout, _ := testIO("a; b\n")

	err := runAsk(context.Background(), askParams{
		question: config.Question{Name: "tags", Kind: "list", Sniff: true},
		format:   "json",
		ioParams: io,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var parsed struct {
		Version string `json:"version"`
		Answers []struct {
			Name  string   `json:"name"`
			Kind  string   `json:"kind"`
			Value []string `json:"value"`
		} `json:"answers"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		t.Fatalf("stdout is not valid JSON: %v\n%s", err, stdout.String())
	}
	if parsed.Version != version || len(parsed.Answers) != 1 {
		t.Fatalf("unexpected output: %+v", parsed)
	}
	if diff := cmp.Diff([]string{"a", "b"}, parsed.Answers[0].Value); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestRunAsk_MaxRetriesFlagOverridesEnv(t *testing.T) {
	cleanEnv(t)
	t.Setenv("COOKED_MAX_RETRIES", "10")
	io, _, _ := testIO("x\ny\n1\n")

	err := runAsk(context.Background(), askParams{
		question:   config.Question{Kind: "int"},
		format:     "text",
		maxRetries: 2,
		ioParams:   io,
	})
	if !errors.Is(err, prompt.ErrRetriesExhausted) {
		t.Fatalf("expected ErrRetriesExhausted, got %v", err)
	}
}

func TestRunAsk_ErrorFormatFromEnv(t *testing.T) {
	cleanEnv(t)
	t.Setenv("COOKED_ERROR_FORMAT", "nope: {value}")
	io, _, stderr := testIO("maybe\nyes\n")

	if err := runAsk(context.Background(), askParams{
		question: config.Question{Kind: "yesno"},
		format:   "text",
		ioParams: io,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stderr.String(), "nope: maybe") {
		t.Errorf("env error format not used: %q", stderr.String())
	}
}

func TestParseMenuItems(t *testing.T) {
	got := parseMenuItems([]string{"a=Apple", "Banana", "=Odd", "k=v=w"})
	want := []menu.Item{
		{Text: "Apple", Tag: "a"},
		{Text: "Banana"},
		{Text: "=Odd"},
		{Text: "v=w", Tag: "k"},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(menu.Action{})); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestRunMenu_PrintsTag(t *testing.T) {
	cleanEnv(t)
	io, stdout, stderr := testIO("B\n")

	err := runMenu(context.Background(), menuParams{
		menu:     menu.Menu{Title: "Fruit", Items: parseMenuItems([]string{"a=Apple", "b=Banana", "Cherry"})},
		format:   "text",
		ioParams: io,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != "b\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "b\n")
	}
	if !strings.Contains(stderr.String(), "Fruit") {
		t.Errorf("menu not rendered on stderr: %q", stderr.String())
	}
}

func TestRunMenu_TextWithoutTag(t *testing.T) {
	cleanEnv(t)
	io, stdout, _ := testIO("3\n")

	err := runMenu(context.Background(), menuParams{
		menu:     menu.Menu{Items: parseMenuItems([]string{"a=Apple", "b=Banana", "Cherry"})},
		format:   "text",
		ioParams: io,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != "Cherry\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "Cherry\n")
	}
}

func TestRunMenu_ExitItem(t *testing.T) {
	cleanEnv(t)
	io, stdout, _ := testIO("exit\n")

	err := runMenu(context.Background(), menuParams{
		menu:     menu.Menu{Items: parseMenuItems([]string{"Apple"}), AddExit: true},
		format:   "text",
		ioParams: io,
	})
	if !errors.Is(err, errNoSelection) {
		t.Fatalf("expected errNoSelection, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no stdout, got %q", stdout.String())
	}
}

const testForm = `
title: Test
questions:
  - name: n
    kind: int
  - name: ok
    kind: yesno
`

func writeTestForm(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.yaml")
	if err := os.WriteFile(path, []byte(testForm), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunForm_TextFormat(t *testing.T) {
	cleanEnv(t)
	io, stdout, stderr := testIO("7\nja\n")

	if err := runForm(context.Background(), formParams{path: writeTestForm(t), format: "text", ioParams: io}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"Test", "NAME", "7", "yes", "2 answer(s) collected"} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(stderr.String(), "n: ") {
		t.Errorf("prompts should be on stderr: %q", stderr.String())
	}
}

// TestRunForm_MsgpackThenShow verifies a run saved as msgpack can be
// rendered by the show command.
func TestRunForm_MsgpackThenShow(t *testing.T) {
	cleanEnv(t)
	io, stdout, _ := testIO("7\nno\n")

	if err := runForm(context.Background(), formParams{path: writeTestForm(t), format: "msgpack", ioParams: io}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	saved := filepath.Join(t.TempDir(), "run.msgpack")
	if err := os.WriteFile(saved, stdout.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runShow(saved, &out); err != nil {
		t.Fatalf("runShow failed: %v", err)
	}
	for _, want := range []string{"Test", "7", "no"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("show output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunForm_MissingFile(t *testing.T) {
	cleanEnv(t)
	io, _, _ := testIO("")
	err := runForm(context.Background(), formParams{path: filepath.Join(t.TempDir(), "nope.yaml"), format: "text", ioParams: io})
	if err == nil {
		t.Fatal("expected error for missing form")
	}
}

func TestRunForm_EOF(t *testing.T) {
	cleanEnv(t)
	io, _, _ := testIO("7\n")
	err := runForm(context.Background(), formParams{path: writeTestForm(t), format: "json", ioParams: io})
	if !errors.Is(err, prompt.ErrEOF) {
		t.Fatalf("expected ErrEOF, got %v", err)
	}
}

func TestSchemaCmd_OutputsValidJSON(t *testing.T) {
	for _, args := range [][]string{{}, {"--form"}} {
		cmd := newSchemaCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("schema %v failed: %v", args, err)
		}
		var parsed map[string]any
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Errorf("schema %v output is not valid JSON: %v", args, err)
		}
	}
}

func TestSchemaCmd_ContainsSchemaFields(t *testing.T) {
	cmd := newSchemaCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != report.Schema+"\n" {
		t.Error("schema output should be report.Schema")
	}

	cmd = newSchemaCmd()
	buf.Reset()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--form"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"questions"`, `"kind"`, `"blank_ok"`, `"cleaners"`} {
		if !strings.Contains(buf.String(), field) {
			t.Errorf("form schema missing %s", field)
		}
	}
}

func TestInitCmd_WritesForms(t *testing.T) {
	dir := t.TempDir()
	cmd := newInitCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--form", "cooked", dir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := config.LoadForm(filepath.Join(dir, "cooked.yaml")); err != nil {
		t.Errorf("scaffolded form does not load: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "forms")); !os.IsNotExist(err) {
		t.Errorf("only the selected example should be written: %v", err)
	}
	if !strings.Contains(buf.String(), "wrote    cooked.yaml") {
		t.Errorf("unexpected summary:\n%s", buf.String())
	}
}

func TestRootCmd_HasCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"ask", "menu", "form", "show", "schema", "init"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}
