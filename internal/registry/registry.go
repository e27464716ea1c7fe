package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fhevm-examples/exgen/internal/manifest"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Registry is an immutable index of examples and categories. The zero value
// is not usable; build one with New or FromCatalog.
type Registry struct {
	examples   []*Example
	byName     map[string]*Example
	categories []*Category
	byCategory map[string]*Category

	// issues found while building (duplicates, unknown difficulty levels).
	issues []string
}

// New builds a Registry from descriptor values. Inputs are copied, so the
// caller may reuse its slices. Duplicate identifiers keep the first
// definition and are reported by Validate.
func New(categories []Category, examples []Example) *Registry {
	r := &Registry{
		byName:     make(map[string]*Example, len(examples)),
		byCategory: make(map[string]*Category, len(categories)),
	}

	for _, c := range categories {
		if _, dup := r.byCategory[c.Name]; dup {
			r.issues = append(r.issues, fmt.Sprintf("duplicate category identifier %q", c.Name))
			continue
		}
		if c.Difficulty != "" && !c.Difficulty.Valid() {
			r.issues = append(r.issues, fmt.Sprintf("category %q has unknown difficulty %q", c.Name, c.Difficulty))
		}
		cp := c
		if cp.Title == "" {
			cp.Title = TitleFromName(cp.Name)
		}
		cp.Examples = clone(c.Examples)
		r.categories = append(r.categories, &cp)
		r.byCategory[cp.Name] = &cp
	}

	for _, e := range examples {
		if _, dup := r.byName[e.Name]; dup {
			r.issues = append(r.issues, fmt.Sprintf("duplicate example identifier %q", e.Name))
			continue
		}
		if !e.Difficulty.Valid() {
			r.issues = append(r.issues, fmt.Sprintf("example %q has unknown difficulty %q", e.Name, e.Difficulty))
		}
		cp := e
		cp.Concepts = clone(e.Concepts)
		cp.Tags = clone(e.Tags)
		cp.Prerequisites = clone(e.Prerequisites)
		cp.LearningObjectives = clone(e.LearningObjectives)
		r.examples = append(r.examples, &cp)
		r.byName[cp.Name] = &cp
	}

	return r
}

// FromCatalog converts a decoded catalog into a Registry.
func FromCatalog(c *manifest.Catalog) *Registry {
	categories := make([]Category, 0, len(c.Categories))
	for _, entry := range c.Categories {
		categories = append(categories, Category{
			Name:        entry.Name,
			Title:       entry.Title,
			Description: entry.Description,
			Examples:    entry.Examples,
			Difficulty:  Difficulty(entry.Difficulty),
		})
	}

	examples := make([]Example, 0, len(c.Examples))
	for _, entry := range c.Examples {
		examples = append(examples, Example{
			Name:               entry.Name,
			Title:              entry.Title,
			Description:        entry.Description,
			Category:           entry.Category,
			Contract:           entry.Contract,
			Test:               entry.Test,
			Difficulty:         Difficulty(entry.Difficulty),
			Concepts:           entry.Concepts,
			Tags:               entry.Tags,
			Prerequisites:      entry.Prerequisites,
			LearningObjectives: entry.LearningObjectives,
		})
	}

	return New(categories, examples)
}

// Example returns the descriptor for id.
func (r *Registry) Example(id string) (*Example, error) {
	e, ok := r.byName[id]
	if !ok {
		return nil, &NotFoundError{Kind: "example", ID: id, Known: r.sortedExampleIDs()}
	}
	return e, nil
}

// Category returns the category descriptor for id.
func (r *Registry) Category(id string) (*Category, error) {
	c, ok := r.byCategory[id]
	if !ok {
		return nil, &NotFoundError{Kind: "category", ID: id, Known: r.sortedCategoryIDs()}
	}
	return c, nil
}

// ExamplesInCategory returns the category's examples in member order.
func (r *Registry) ExamplesInCategory(id string) ([]*Example, error) {
	c, err := r.Category(id)
	if err != nil {
		return nil, err
	}

	result := make([]*Example, 0, len(c.Examples))
	for _, member := range c.Examples {
		e, err := r.Example(member)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", id, err)
		}
		result = append(result, e)
	}
	return result, nil
}

// ExamplesByDifficulty returns every example at level d, in catalog order.
func (r *Registry) ExamplesByDifficulty(d Difficulty) []*Example {
	return r.filter(func(e *Example) bool { return e.Difficulty == d })
}

// ExamplesByTag returns examples carrying tag as a free tag or a concept.
// Comparison is case-insensitive and exact.
func (r *Registry) ExamplesByTag(tag string) []*Example {
	return r.filter(func(e *Example) bool {
		return containsFold(e.Tags, tag) || containsFold(e.Concepts, tag)
	})
}

// Search returns examples whose title, description, concepts, or tags
// contain query as a case-insensitive substring. An empty query matches
// every example.
func (r *Registry) Search(query string) []*Example {
	q := strings.ToLower(strings.TrimSpace(query))
	return r.filter(func(e *Example) bool { return matchesQuery(e, q) })
}

// Examples returns every example in catalog order.
func (r *Registry) Examples() []*Example {
	return append([]*Example(nil), r.examples...)
}

// Categories returns every category in catalog order.
func (r *Registry) Categories() []*Category {
	return append([]*Category(nil), r.categories...)
}

// IDs returns every example identifier in catalog order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.examples))
	for i, e := range r.examples {
		ids[i] = e.Name
	}
	return ids
}

// Len returns the number of registered examples.
func (r *Registry) Len() int {
	return len(r.examples)
}

// CategoryTitle returns the display title of a category, falling back to a
// title derived from the identifier when the category is unknown.
func (r *Registry) CategoryTitle(id string) string {
	if c, ok := r.byCategory[id]; ok {
		return c.Title
	}
	return TitleFromName(id)
}

// TitleFromName turns an identifier like "access-control" into "Access Control".
func TitleFromName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

func (r *Registry) filter(keep func(*Example) bool) []*Example {
	result := make([]*Example, 0)
	for _, e := range r.examples {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

func (r *Registry) sortedExampleIDs() []string {
	ids := r.IDs()
	sort.Strings(ids)
	return ids
}

func (r *Registry) sortedCategoryIDs() []string {
	ids := make([]string, len(r.categories))
	for i, c := range r.categories {
		ids[i] = c.Name
	}
	sort.Strings(ids)
	return ids
}

func clone(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
