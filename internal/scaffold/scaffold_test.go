package scaffold

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/unbound-force/cooked/internal/config"
)

func TestExamples_MainFormFirst(t *testing.T) {
	exs, err := Examples()
	if err != nil {
		t.Fatalf("Examples() returned error: %v", err)
	}
	got := make([]string, len(exs))
	for i, ex := range exs {
		got[i] = ex.Name + "=" + ex.Path
	}
	want := []string{"cooked=cooked.yaml", "contact=forms/contact.yaml"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("examples mismatch (-want +got):\n%s", diff)
	}
	for _, ex := range exs {
		if ex.Title == "" || ex.Questions == 0 {
			t.Errorf("%s: expected title and questions, got %+v", ex.Name, ex)
		}
	}
}

func TestRun_WritesAllExamples(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	res, err := Run(Options{Dir: dir, Version: "1.2.3", Stdout: &buf})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"cooked.yaml", "forms/contact.yaml"}, res.Written); diff != "" {
		t.Errorf("written mismatch (-want +got):\n%s", diff)
	}

	// Every written file, header included, loads as a form.
	for _, rel := range res.Written {
		if _, err := config.LoadForm(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			t.Errorf("%s: %v", rel, err)
		}
	}

	out := buf.String()
	if !strings.Contains(out, "wrote    cooked.yaml") {
		t.Errorf("summary should list written files, got:\n%s", out)
	}
	if !strings.Contains(out, "Try it: cooked form cooked.yaml") {
		t.Errorf("summary should contain hint, got:\n%s", out)
	}
}

func TestRun_SelectedForms(t *testing.T) {
	dir := t.TempDir()

	res, err := Run(Options{Dir: dir, Forms: []string{"contact"}, Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"forms/contact.yaml"}, res.Written); diff != "" {
		t.Errorf("written mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(dir, MainForm)); !os.IsNotExist(err) {
		t.Errorf("%s should not be written: %v", MainForm, err)
	}
}

func TestRun_UnknownForm(t *testing.T) {
	dir := t.TempDir()

	_, err := Run(Options{Dir: dir, Forms: []string{"cooked", "survey"}, Stdout: &bytes.Buffer{}})
	if !errors.Is(err, ErrUnknownExample) {
		t.Fatalf("expected ErrUnknownExample, got %v", err)
	}
	if !strings.Contains(err.Error(), "available: cooked, contact") {
		t.Errorf("error should list available examples: %v", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("nothing should be written on error, found %d entries", len(entries))
	}
}

func TestRun_SkipsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, MainForm)
	if err := os.WriteFile(path, []byte("mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	res, err := Run(Options{Dir: dir, Forms: []string{"cooked"}, Stdout: &buf})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if diff := cmp.Diff([]string{MainForm}, res.Skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
	if len(res.Written) != 0 {
		t.Errorf("expected nothing written, got %v", res.Written)
	}
	content, _ := os.ReadFile(path)
	if string(content) != "mine\n" {
		t.Errorf("existing file was modified: %q", content)
	}
	if !strings.Contains(buf.String(), "use --force to replace") {
		t.Errorf("expected force hint, got:\n%s", buf.String())
	}
}

func TestRun_ForceReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, MainForm)
	if err := os.WriteFile(path, []byte("mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Run(Options{Dir: dir, Forms: []string{"cooked"}, Force: true, Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if diff := cmp.Diff([]string{MainForm}, res.Written); diff != "" {
		t.Errorf("written mismatch (-want +got):\n%s", diff)
	}
	if _, err := config.LoadForm(path); err != nil {
		t.Errorf("replaced file is not a form: %v", err)
	}
}

func TestRun_VersionHeader(t *testing.T) {
	for _, tc := range []struct{ version, want string }{
		{"1.2.3", "# scaffolded by cooked 1.2.3"},
		{"", "# scaffolded by cooked dev"},
	} {
		dir := t.TempDir()
		if _, err := Run(Options{Dir: dir, Version: tc.version, Forms: []string{"cooked"}, Stdout: &bytes.Buffer{}}); err != nil {
			t.Fatalf("Run() returned error: %v", err)
		}
		content, err := os.ReadFile(filepath.Join(dir, MainForm))
		if err != nil {
			t.Fatal(err)
		}
		firstLine := strings.SplitN(string(content), "\n", 2)[0]
		if firstLine != tc.want {
			t.Errorf("expected first line %q, got %q", tc.want, firstLine)
		}
	}
}
