package scaffold

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/afero"
)

//go:embed all:base
var baseFS embed.FS

// DefaultBase returns the embedded Hardhat project template.
func DefaultBase() fs.FS {
	sub, err := fs.Sub(baseFS, "base")
	if err != nil {
		panic(err)
	}
	return sub
}

// excludedNames are never copied from a base template.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
	"artifacts":    true,
	"cache":        true,
}

// placeholderDirs hold the template's sample contract and test, which the
// injected artifacts replace.
var placeholderDirs = map[string]bool{
	"contracts": true,
	"test":      true,
}

// ProjectData holds the variables available to .tmpl files in the base
// template.
type ProjectData struct {
	ID          string   // example or category identifier
	Name        string   // npm package name
	Title       string
	Description string
	Contracts   []string // contract names without extension, in injection order
}

// projectWriter writes files under root and records their relative paths
// in write order.
type projectWriter struct {
	fs    afero.Fs
	root  string
	files []string
}

func (w *projectWriter) write(step, rel string, data []byte, perm os.FileMode) error {
	dst := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := w.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return &FilesystemError{Step: step, Path: filepath.Dir(dst), Err: err}
	}
	if err := afero.WriteFile(w.fs, dst, data, perm); err != nil {
		return &FilesystemError{Step: step, Path: dst, Err: err}
	}
	w.files = append(w.files, rel)
	return nil
}

// copyBase copies the base template tree into the project. Files ending in
// .tmpl are executed with data and written without the suffix; everything
// else is copied verbatim.
func (w *projectWriter) copyBase(base fs.FS, data ProjectData) error {
	return fs.WalkDir(base, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return &FilesystemError{Step: stepTemplate, Path: p, Err: err}
		}
		if p == "." {
			return nil
		}
		if excludedNames[d.Name()] || (d.IsDir() && placeholderDirs[p]) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		// Skip symlinks and other special files.
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		raw, err := fs.ReadFile(base, p)
		if err != nil {
			return &FilesystemError{Step: stepTemplate, Path: p, Err: err}
		}

		perm := os.FileMode(0o644)
		if info, err := d.Info(); err == nil && info.Mode()&0o111 != 0 {
			perm = 0o755
		}

		rel := p
		if strings.HasSuffix(p, ".tmpl") {
			rel = strings.TrimSuffix(p, ".tmpl")
			if raw, err = executeProjectFile(p, raw, data); err != nil {
				return err
			}
		}
		return w.write(stepTemplate, rel, raw, perm)
	})
}

func executeProjectFile(name string, raw []byte, data ProjectData) ([]byte, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(template.FuncMap{"json": jsonString}).
		Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func jsonString(s string) (string, error) {
	b, err := json.Marshal(s)
	return string(b), err
}
