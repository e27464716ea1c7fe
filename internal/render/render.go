package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/fhevm-examples/exgen/internal/registry"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ErrMissingArtifact is returned when an example's primary source text is
// empty or absent.
var ErrMissingArtifact = errors.New("missing artifact")

// Kind names a per-example document template.
type Kind string

const (
	KindReadme Kind = "readme"
	KindAPI    Kind = "api"
	KindGuide  Kind = "guide"
)

// Kinds lists every per-example document kind.
var Kinds = []Kind{KindReadme, KindAPI, KindGuide}

// DefaultPath returns the project-relative path a document of kind k is
// written to.
func (k Kind) DefaultPath() string {
	switch k {
	case KindAPI:
		return "docs/API.md"
	case KindGuide:
		return "docs/GUIDE.md"
	default:
		return "README.md"
	}
}

// Document is one rendered Markdown file.
type Document struct {
	Kind    Kind
	Path    string // relative target path
	Content string
}

// Artifact is the text of a source file together with the path it was read
// from, relative to the source root.
type Artifact struct {
	Path   string
	Text   string
	Target string // project-relative destination; defaults under contracts/ or test/
}

// Name returns the artifact's base file name.
func (a Artifact) Name() string {
	return path.Base(a.Path)
}

// Lang returns the code fence language for the artifact.
func (a Artifact) Lang() string {
	return fenceLang(a.Path)
}

// Present reports whether the artifact carries any non-blank text.
func (a Artifact) Present() bool {
	return strings.TrimSpace(a.Text) != ""
}

// Renderer executes the embedded document templates.
type Renderer struct {
	tmpl  *template.Template
	title func(categoryID string) string
}

// New parses the embedded templates. Category titles are resolved through
// reg; a nil registry derives titles from the category identifier.
func New(reg *registry.Registry) (*Renderer, error) {
	tmpl, err := template.New("docs").Funcs(funcMap()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing document templates: %w", err)
	}

	title := registry.TitleFromName
	if reg != nil {
		title = reg.CategoryTitle
	}
	return &Renderer{tmpl: tmpl, title: title}, nil
}

// exampleContext is the data every per-example template receives.
type exampleContext struct {
	*registry.Example
	CategoryTitle string
	Objectives    []string
	Source        Artifact
	Test          *Artifact
	ContractFile  string
	TestFile      string
	Declarations  []Declaration
	Groups        []DeclarationGroup
}

// Render produces the document of the given kind for e. source is required;
// test may be empty.
func (r *Renderer) Render(kind Kind, e *registry.Example, source, test Artifact) (*Document, error) {
	if !source.Present() {
		return nil, fmt.Errorf("example %q: contract %s: %w", e.Name, source.Path, ErrMissingArtifact)
	}

	ctx := exampleContext{
		Example:       e,
		CategoryTitle: r.title(e.Category),
		Objectives:    e.Objectives(),
		Source:        source,
		ContractFile:  targetOr(source, "contracts"),
	}
	if test.Present() {
		ctx.Test = &test
		ctx.TestFile = targetOr(test, "test")
	}
	if kind == KindAPI || kind == KindGuide {
		ctx.Declarations = ScanDeclarations(source.Text)
		ctx.Groups = GroupDeclarations(ctx.Declarations)
	}

	content, err := r.execute(string(kind)+".md.tmpl", ctx)
	if err != nil {
		return nil, fmt.Errorf("rendering %s for %q: %w", kind, e.Name, err)
	}
	return &Document{Kind: kind, Path: kind.DefaultPath(), Content: content}, nil
}

// categoryContext is the data the category template receives.
type categoryContext struct {
	*registry.Category
	Examples []*registry.Example
}

// RenderCategory produces the README of a category project. Each example is
// linked to its page under docs/.
func (r *Renderer) RenderCategory(c *registry.Category, examples []*registry.Example) (*Document, error) {
	content, err := r.execute("category.md.tmpl", categoryContext{Category: c, Examples: examples})
	if err != nil {
		return nil, fmt.Errorf("rendering category %q: %w", c.Name, err)
	}
	return &Document{Kind: KindReadme, Path: "README.md", Content: content}, nil
}

func targetOr(a Artifact, dir string) string {
	if a.Target != "" {
		return a.Target
	}
	return dir + "/" + a.Name()
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
