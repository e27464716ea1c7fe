package scaffold

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/fhevm-examples/exgen/internal/registry"
	"github.com/fhevm-examples/exgen/internal/render"
	"github.com/spf13/afero"
)

// exampleArtifacts is the loaded contract and test text of one example.
type exampleArtifacts struct {
	example *registry.Example
	source  render.Artifact
	test    render.Artifact // zero when the example declares no test
}

// contractName returns the contract file name without its extension.
func (a *exampleArtifacts) contractName() string {
	base := path.Base(a.source.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

// loadArtifacts reads every artifact e references. Paths are relative to
// the root of src.
func loadArtifacts(src afero.Fs, e *registry.Example) (*exampleArtifacts, error) {
	source, err := readArtifact(src, e, e.Contract)
	if err != nil {
		return nil, err
	}

	a := &exampleArtifacts{example: e, source: source}
	if e.Test != "" {
		if a.test, err = readArtifact(src, e, e.Test); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func readArtifact(src afero.Fs, e *registry.Example, p string) (render.Artifact, error) {
	if p == "" {
		return render.Artifact{}, &MissingArtifactError{Example: e.Name, Path: "(none)", Err: render.ErrMissingArtifact}
	}
	data, err := afero.ReadFile(src, filepath.FromSlash(p))
	if err != nil {
		return render.Artifact{}, &MissingArtifactError{Example: e.Name, Path: p, Err: err}
	}

	a := render.Artifact{Path: p, Text: string(data)}
	if !a.Present() {
		return render.Artifact{}, &MissingArtifactError{Example: e.Name, Path: p, Err: render.ErrMissingArtifact}
	}
	return a, nil
}

// place assigns project paths to every artifact. A file name used by more
// than one example moves into a per-example subdirectory so nothing is
// overwritten; each move is reported as a warning.
func place(all []*exampleArtifacts) []string {
	counts := make(map[string]int)
	for _, a := range all {
		counts["contracts/"+a.source.Name()]++
		if a.test.Path != "" {
			counts["test/"+a.test.Name()]++
		}
	}

	var warnings []string
	for _, a := range all {
		a.source.Target = target(counts, "contracts", a.example.Name, a.source.Name())
		if a.test.Path != "" {
			a.test.Target = target(counts, "test", a.example.Name, a.test.Name())
		}
		for _, t := range []string{a.source.Target, a.test.Target} {
			if strings.Count(t, "/") > 1 {
				warnings = append(warnings, fmt.Sprintf("%s: file name shared with another example, written to %s", a.example.Name, t))
			}
		}
	}
	return warnings
}

func target(counts map[string]int, dir, id, name string) string {
	flat := dir + "/" + name
	if counts[flat] > 1 {
		return dir + "/" + id + "/" + name
	}
	return flat
}
