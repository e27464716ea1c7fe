package scaffold

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fhevm-examples/exgen/internal/registry"
	"github.com/fhevm-examples/exgen/internal/render"
	"github.com/fhevm-examples/exgen/internal/summary"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Config wires a Materializer or DocGenerator to its inputs and outputs.
type Config struct {
	Registry *registry.Registry
	Renderer *render.Renderer

	// Sources is rooted at the source root; artifact paths resolve against it.
	// Defaults to the OS filesystem.
	Sources afero.Fs

	// Output receives generated files. Defaults to the OS filesystem.
	Output afero.Fs

	// Base is the project template tree. Defaults to DefaultBase().
	Base fs.FS

	Logger *zap.Logger
}

func (c Config) withDefaults() Config {
	if c.Sources == nil {
		c.Sources = afero.NewOsFs()
	}
	if c.Output == nil {
		c.Output = afero.NewOsFs()
	}
	if c.Base == nil {
		c.Base = DefaultBase()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Options control what a single run produces.
type Options struct {
	API       bool // also write the API reference
	Guide     bool // also write the learning guide
	NoSummary bool // leave the shared index untouched

	// SummaryPath overrides the index location. Project commands default to
	// SUMMARY.md next to the target; doc commands to <output>/SUMMARY.md.
	SummaryPath string

	// Parallelism bounds concurrent examples in GenerateAll. Values below 1
	// mean sequential.
	Parallelism int
}

func (o Options) kinds() []render.Kind {
	kinds := []render.Kind{render.KindReadme}
	if o.API {
		kinds = append(kinds, render.KindAPI)
	}
	if o.Guide {
		kinds = append(kinds, render.KindGuide)
	}
	return kinds
}

// GeneratedProject describes a materialized project.
type GeneratedProject struct {
	Root        string
	Example     string // set for single-example projects
	Category    string // set for category projects
	Files       []string
	SummaryPath string // index that was updated, empty when skipped
	Warnings    []string
}

// Materializer builds standalone projects.
type Materializer struct {
	cfg Config
}

// NewMaterializer returns a Materializer for cfg. Registry and Renderer
// are required.
func NewMaterializer(cfg Config) *Materializer {
	return &Materializer{cfg: cfg.withDefaults()}
}

// MaterializeExample creates a project for example id in targetDir.
//
// Artifacts are read and documents rendered before anything is written.
// targetDir must be missing or empty. If a write fails, targetDir is
// restored to its prior state. A failure to update the shared index is
// returned together with the finished project and does not roll it back.
func (m *Materializer) MaterializeExample(ctx context.Context, id, targetDir string, opts Options) (*GeneratedProject, error) {
	e, err := m.cfg.Registry.Example(id)
	if err != nil {
		return nil, err
	}

	art, err := loadArtifacts(m.cfg.Sources, e)
	if err != nil {
		return nil, err
	}
	place([]*exampleArtifacts{art})

	var docs []*render.Document
	for _, kind := range opts.kinds() {
		doc, err := m.cfg.Renderer.Render(kind, e, art.source, art.test)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	data := ProjectData{
		ID:          e.Name,
		Name:        e.Name,
		Title:       e.Title,
		Description: e.Description,
		Contracts:   []string{art.contractName()},
	}

	project := &GeneratedProject{Root: targetDir, Example: e.Name}
	err = m.build(ctx, targetDir, data, func(w *projectWriter) error {
		if err := injectArtifacts(w, art); err != nil {
			return err
		}
		return writeDocs(w, docs)
	}, project)
	if err != nil {
		return nil, err
	}

	if !opts.NoSummary {
		entry := summary.Entry{
			Section: m.cfg.Registry.CategoryTitle(e.Category),
			Title:   e.Title,
		}
		if err := m.updateSummary(project, opts, entry); err != nil {
			return project, err
		}
	}

	m.cfg.Logger.Info("materialized example",
		zap.String("example", e.Name),
		zap.String("target", targetDir),
		zap.Int("files", len(project.Files)))
	return project, nil
}

// MaterializeCategory creates one project holding every example of the
// category. The project README lists the examples; each example gets its
// own page under docs/.
func (m *Materializer) MaterializeCategory(ctx context.Context, categoryID, targetDir string, opts Options) (*GeneratedProject, error) {
	c, err := m.cfg.Registry.Category(categoryID)
	if err != nil {
		return nil, err
	}
	examples, err := m.cfg.Registry.ExamplesInCategory(categoryID)
	if err != nil {
		return nil, err
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("category %q has no examples", categoryID)
	}

	arts := make([]*exampleArtifacts, 0, len(examples))
	for _, e := range examples {
		art, err := loadArtifacts(m.cfg.Sources, e)
		if err != nil {
			return nil, err
		}
		arts = append(arts, art)
	}
	warnings := place(arts)

	readme, err := m.cfg.Renderer.RenderCategory(c, examples)
	if err != nil {
		return nil, err
	}
	docs := []*render.Document{readme}
	data := ProjectData{ID: c.Name, Name: c.Name, Title: c.Title, Description: c.Description}

	deployedBy := make(map[string]string, len(arts))
	for _, art := range arts {
		name := art.contractName()
		if first, ok := deployedBy[name]; ok {
			warnings = append(warnings, fmt.Sprintf("%s: contract name %s already used by %s, deployed once", art.example.Name, name, first))
		} else {
			deployedBy[name] = art.example.Name
			data.Contracts = append(data.Contracts, name)
		}
		for _, kind := range opts.kinds() {
			doc, err := m.cfg.Renderer.Render(kind, art.example, art.source, art.test)
			if err != nil {
				return nil, err
			}
			doc.Path = categoryDocPath(art.example.Name, kind)
			docs = append(docs, doc)
		}
	}

	project := &GeneratedProject{Root: targetDir, Category: c.Name, Warnings: warnings}
	err = m.build(ctx, targetDir, data, func(w *projectWriter) error {
		for _, art := range arts {
			if err := injectArtifacts(w, art); err != nil {
				return err
			}
		}
		return writeDocs(w, docs)
	}, project)
	if err != nil {
		return nil, err
	}

	if !opts.NoSummary {
		entry := summary.Entry{Section: "Categories", Title: c.Title}
		if err := m.updateSummary(project, opts, entry); err != nil {
			return project, err
		}
	}

	m.cfg.Logger.Info("materialized category",
		zap.String("category", c.Name),
		zap.String("target", targetDir),
		zap.Int("examples", len(arts)))
	return project, nil
}

// build claims and checks targetDir, copies the base template, then runs
// fill. Any write failure rolls targetDir back.
func (m *Materializer) build(ctx context.Context, targetDir string, data ProjectData, fill func(*projectWriter) error, project *GeneratedProject) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	release, err := claimTarget(m.cfg.Output, targetDir)
	if err != nil {
		return err
	}
	defer release()

	existed, err := checkTarget(m.cfg.Output, targetDir)
	if err != nil {
		return err
	}

	w := &projectWriter{fs: m.cfg.Output, root: targetDir}
	err = w.copyBase(m.cfg.Base, data)
	if err == nil {
		err = fill(w)
	}
	if err != nil {
		if rbErr := rollback(m.cfg.Output, targetDir, existed); rbErr != nil {
			m.cfg.Logger.Warn("rollback failed", zap.String("target", targetDir), zap.Error(rbErr))
		}
		return err
	}

	project.Files = w.files
	return nil
}

func (m *Materializer) updateSummary(project *GeneratedProject, opts Options, entry summary.Entry) error {
	root := absPath(project.Root)
	path := opts.SummaryPath
	if path == "" {
		path = filepath.Join(filepath.Dir(root), summary.FileName)
	}
	entry.Target = summary.Link(absPath(path), filepath.Join(root, "README.md"))

	if _, err := summary.Upsert(m.cfg.Output, path, entry); err != nil {
		return &FilesystemError{Step: stepSummary, Path: path, Err: err}
	}
	project.SummaryPath = path
	return nil
}

func injectArtifacts(w *projectWriter, art *exampleArtifacts) error {
	if err := w.write(stepInject, art.source.Target, []byte(art.source.Text), 0o644); err != nil {
		return err
	}
	if art.test.Path == "" {
		return nil
	}
	return w.write(stepInject, art.test.Target, []byte(art.test.Text), 0o644)
}

func writeDocs(w *projectWriter, docs []*render.Document) error {
	for _, doc := range docs {
		if err := w.write(stepDocs, doc.Path, []byte(doc.Content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func categoryDocPath(id string, kind render.Kind) string {
	return "docs/" + docPath(id, kind)
}
