package scaffold

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fhevm-examples/exgen/internal/registry"
	"github.com/fhevm-examples/exgen/internal/render"
	"github.com/fhevm-examples/exgen/internal/summary"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DocGenerator writes documentation pages without a project around them.
type DocGenerator struct {
	cfg Config
}

// NewDocGenerator returns a DocGenerator for cfg. Registry and Renderer
// are required; Base is unused.
func NewDocGenerator(cfg Config) *DocGenerator {
	return &DocGenerator{cfg: cfg.withDefaults()}
}

// Generate writes the pages for example id into outputDir, overwriting
// earlier output, and adds the example to <outputDir>/SUMMARY.md unless
// opts.NoSummary is set. It returns the paths written, relative to
// outputDir.
func (d *DocGenerator) Generate(ctx context.Context, id, outputDir string, opts Options) ([]string, error) {
	e, err := d.cfg.Registry.Example(id)
	if err != nil {
		return nil, err
	}

	files, entry, err := d.generate(ctx, e, outputDir, opts)
	if err != nil {
		return nil, err
	}

	if !opts.NoSummary {
		path := d.summaryPath(outputDir, opts)
		if _, err := summary.Upsert(d.cfg.Output, path, entry); err != nil {
			return files, &FilesystemError{Step: stepSummary, Path: path, Err: err}
		}
	}
	return files, nil
}

// Preview renders one document for example id without writing anything.
func (d *DocGenerator) Preview(id string, kind render.Kind) (*render.Document, error) {
	e, err := d.cfg.Registry.Example(id)
	if err != nil {
		return nil, err
	}
	art, err := loadArtifacts(d.cfg.Sources, e)
	if err != nil {
		return nil, err
	}
	return d.cfg.Renderer.Render(kind, e, art.source, art.test)
}

// Outcome is the result of one example in a batch.
type Outcome struct {
	ID      string
	Files   []string
	Err     error
	Skipped bool // not attempted because the batch was cancelled
}

// BatchReport accumulates per-example outcomes in registry order.
type BatchReport struct {
	Outcomes   []Outcome
	SummaryErr error // failure writing the shared index, if any
}

// Total returns the number of examples visited.
func (r *BatchReport) Total() int { return len(r.Outcomes) }

// Succeeded returns the number of examples generated without error.
func (r *BatchReport) Succeeded() int { return r.Total() - r.Failed() }

// Failed returns the number of examples that failed or were skipped.
func (r *BatchReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Failures returns the failed outcomes in registry order.
func (r *BatchReport) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Err summarizes the batch as a single error, or nil when every example
// succeeded and the index was written.
func (r *BatchReport) Err() error {
	if n := r.Failed(); n > 0 {
		return fmt.Errorf("%d of %d examples failed", n, r.Total())
	}
	return r.SummaryErr
}

// GenerateAll runs Generate for every registered example in registry
// order. A failing example never stops the batch. With opts.Parallelism
// above 1 examples are processed concurrently; the shared index is written
// once, after every example finished, with the entries of the successful
// ones. Cancelling ctx stops new examples from starting and marks them
// skipped.
func (d *DocGenerator) GenerateAll(ctx context.Context, outputDir string, opts Options) *BatchReport {
	examples := d.cfg.Registry.Examples()
	report := &BatchReport{Outcomes: make([]Outcome, len(examples))}
	entries := make([]*summary.Entry, len(examples))

	limit := opts.Parallelism
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, e := range examples {
		report.Outcomes[i].ID = e.Name
		if err := ctx.Err(); err != nil {
			report.Outcomes[i].Err = err
			report.Outcomes[i].Skipped = true
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				report.Outcomes[i].Err = err
				report.Outcomes[i].Skipped = true
				return nil
			}

			files, entry, err := d.generate(ctx, e, outputDir, opts)
			report.Outcomes[i].Files = files
			report.Outcomes[i].Err = err
			if err != nil {
				d.cfg.Logger.Warn("example failed", zap.String("example", e.Name), zap.Error(err))
				return nil
			}
			entries[i] = &entry
			return nil
		})
	}
	_ = g.Wait()

	if opts.NoSummary {
		return report
	}

	var collected []summary.Entry
	for _, entry := range entries {
		if entry != nil {
			collected = append(collected, *entry)
		}
	}
	if len(collected) > 0 {
		path := d.summaryPath(outputDir, opts)
		if _, err := summary.Upsert(d.cfg.Output, path, collected...); err != nil {
			report.SummaryErr = &FilesystemError{Step: stepSummary, Path: path, Err: err}
		}
	}
	return report
}

// generate renders and writes the pages of one example and returns the
// index entry for it.
func (d *DocGenerator) generate(ctx context.Context, e *registry.Example, outputDir string, opts Options) ([]string, summary.Entry, error) {
	art, err := loadArtifacts(d.cfg.Sources, e)
	if err != nil {
		return nil, summary.Entry{}, err
	}

	var docs []*render.Document
	for _, kind := range opts.kinds() {
		doc, err := d.cfg.Renderer.Render(kind, e, art.source, art.test)
		if err != nil {
			return nil, summary.Entry{}, err
		}
		doc.Path = docPath(e.Name, kind)
		docs = append(docs, doc)
	}

	if err := ctx.Err(); err != nil {
		return nil, summary.Entry{}, err
	}

	w := &projectWriter{fs: d.cfg.Output, root: outputDir}
	if err := writeDocs(w, docs); err != nil {
		return w.files, summary.Entry{}, err
	}

	d.cfg.Logger.Debug("generated docs", zap.String("example", e.Name), zap.Strings("files", w.files))
	entry := summary.Entry{
		Section: d.cfg.Registry.CategoryTitle(e.Category),
		Title:   e.Title,
		Target:  summary.Link(absPath(d.summaryPath(outputDir, opts)), absPath(filepath.Join(outputDir, docPath(e.Name, render.KindReadme)))),
	}
	return w.files, entry, nil
}

func (d *DocGenerator) summaryPath(outputDir string, opts Options) string {
	if opts.SummaryPath != "" {
		return opts.SummaryPath
	}
	return filepath.Join(outputDir, summary.FileName)
}

func docPath(id string, kind render.Kind) string {
	switch kind {
	case render.KindAPI:
		return id + "-api.md"
	case render.KindGuide:
		return id + "-guide.md"
	default:
		return id + ".md"
	}
}
