// Package scaffold ships the example form files behind `cooked init`.
//
// Examples are embedded YAML forms addressed by name: "cooked" is the
// root cooked.yaml, and every other example lives under forms/. Each
// example is parsed and compiled before it is written, so init never
// leaves a form behind that `cooked form` would reject.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/unbound-force/cooked/internal/config"
	"github.com/unbound-force/cooked/internal/form"
)

//go:embed assets
var assets embed.FS

// MainForm is the example written at the target root.
const MainForm = "cooked.yaml"

// ErrUnknownExample is returned for an example name that is not embedded.
var ErrUnknownExample = errors.New("unknown example form")

// Example is one embedded form.
type Example struct {
	// Name is what `cooked init --form` accepts.
	Name string

	// Path is the file path relative to the target directory.
	Path string

	// Title is the form title.
	Title string

	// Questions is the number of questions in the form.
	Questions int

	data []byte
}

// Examples returns every embedded example, cooked.yaml first and the
// rest by name, after checking that each one is a valid form.
func Examples() ([]Example, error) {
	var out []Example
	err := fs.WalkDir(assets, "assets", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		ex, err := loadExample(strings.TrimPrefix(p, "assets/"))
		if err != nil {
			return err
		}
		out = append(out, ex)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if mi, mj := out[i].Path == MainForm, out[j].Path == MainForm; mi != mj {
			return mi
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func loadExample(rel string) (Example, error) {
	data, err := assets.ReadFile("assets/" + rel)
	if err != nil {
		return Example{}, fmt.Errorf("reading example %s: %w", rel, err)
	}
	f, err := config.ParseForm(data)
	if err != nil {
		return Example{}, fmt.Errorf("example %s: %w", rel, err)
	}
	if _, err := form.Compile(f); err != nil {
		return Example{}, fmt.Errorf("example %s: %w", rel, err)
	}
	return Example{
		Name:      strings.TrimSuffix(path.Base(rel), path.Ext(rel)),
		Path:      rel,
		Title:     f.Title,
		Questions: len(f.Questions),
		data:      data,
	}, nil
}

// Options configures Run.
type Options struct {
	// Dir is the target directory. Empty means the working directory.
	Dir string

	// Forms names the examples to write. Empty means all of them.
	Forms []string

	// Force replaces files that already exist.
	Force bool

	// Version goes into the header comment of each written file.
	Version string

	// Stdout receives the summary. Nil means os.Stdout.
	Stdout io.Writer
}

// Result lists the paths Run wrote and the ones it left alone.
type Result struct {
	Written []string
	Skipped []string
}

// Run writes the selected examples into opts.Dir, each prefixed with
//
//	# scaffolded by cooked <version>
func Run(opts Options) (*Result, error) {
	selected, err := selectExamples(opts.Forms)
	if err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	header := fmt.Sprintf("# scaffolded by cooked %s\n", version)

	res := &Result{}
	for _, ex := range selected {
		dst := filepath.Join(dir, filepath.FromSlash(ex.Path))
		if _, err := os.Stat(dst); err == nil && !opts.Force {
			res.Skipped = append(res.Skipped, ex.Path)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", ex.Path, err)
		}
		if err := os.WriteFile(dst, append([]byte(header), ex.data...), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", ex.Path, err)
		}
		res.Written = append(res.Written, ex.Path)
	}

	w := opts.Stdout
	if w == nil {
		w = os.Stdout
	}
	res.print(w)
	return res, nil
}

// selectExamples resolves names to examples, keeping the embedded order.
func selectExamples(names []string) ([]Example, error) {
	all, err := Examples()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return all, nil
	}

	byName := make(map[string]Example, len(all))
	for _, ex := range all {
		byName[ex.Name] = ex
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := byName[n]; !ok {
			return nil, fmt.Errorf("%w %q: available: %s", ErrUnknownExample, n, strings.Join(exampleNames(all), ", "))
		}
		want[n] = true
	}

	var out []Example
	for _, ex := range all {
		if want[ex.Name] {
			out = append(out, ex)
		}
	}
	return out, nil
}

func exampleNames(exs []Example) []string {
	names := make([]string, len(exs))
	for i, ex := range exs {
		names[i] = ex.Name
	}
	return names
}

func (r *Result) print(w io.Writer) {
	for _, p := range r.Written {
		fmt.Fprintf(w, "  wrote    %s\n", p)
	}
	for _, p := range r.Skipped {
		fmt.Fprintf(w, "  exists   %s (use --force to replace)\n", p)
	}
	if len(r.Written) > 0 {
		fmt.Fprintf(w, "\nTry it: cooked form %s\n", r.Written[0])
	}
}
