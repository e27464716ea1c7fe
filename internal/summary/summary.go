// Package summary maintains the shared SUMMARY.md index that links every
// generated example. Entries are grouped under "## <section>" headings and
// keyed by link target, so adding the same entry twice is a no-op.
package summary

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultHeader starts a newly created index.
const DefaultHeader = "# Summary"

// FileName is the conventional name of the index file.
const FileName = "SUMMARY.md"

// Entry is one link in the index.
type Entry struct {
	Section string // heading the link is listed under, usually a category title
	Title   string
	Target  string // link target; identifies the entry
}

// Line returns the Markdown list item for e.
func (e Entry) Line() string {
	return fmt.Sprintf("- [%s](%s)", e.Title, e.Target)
}

// Apply adds entries to content and returns the new content together with
// the number of entries actually inserted. Entries whose target is already
// linked are skipped. A new entry goes after the last list item of its
// section; a missing section is appended at the end.
func Apply(content string, entries ...Entry) (string, int) {
	if strings.TrimSpace(content) == "" {
		content = DefaultHeader + "\n"
	}
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")

	inserted := 0
	for _, e := range entries {
		if linked(lines, e.Target) {
			continue
		}
		lines = insert(lines, e)
		inserted++
	}

	return strings.Join(lines, "\n") + "\n", inserted
}

// Upsert applies entries to the index file at path on fsys, creating the
// file (and its directory) when absent. The file is written at most once
// and left untouched when nothing was inserted.
func Upsert(fsys afero.Fs, path string, entries ...Entry) (int, error) {
	data, err := afero.ReadFile(fsys, path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	content, inserted := Apply(string(data), entries...)
	if exists && inserted == 0 {
		return 0, nil
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return inserted, nil
}

// Link returns the index link target for a file, relative to the directory
// holding the index, with forward slashes.
func Link(indexPath, target string) string {
	rel, err := filepath.Rel(filepath.Dir(indexPath), target)
	if err != nil {
		rel = target
	}
	return filepath.ToSlash(rel)
}

func linked(lines []string, target string) bool {
	marker := "](" + target + ")"
	for _, l := range lines {
		if strings.Contains(l, marker) {
			return true
		}
	}
	return false
}

func insert(lines []string, e Entry) []string {
	heading := "## " + e.Section
	start := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == heading {
			start = i
			break
		}
	}

	if start < 0 {
		if lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		return append(lines, heading, "", e.Line())
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "# ") || strings.HasPrefix(lines[i], "## ") {
			end = i
			break
		}
	}

	at := -1
	for i := start + 1; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			at = i + 1
		}
	}

	var add []string
	if at < 0 {
		at = start + 1
		add = []string{"", e.Line()}
		if at < len(lines) && lines[at] != "" {
			add = append(add, "")
		}
	} else {
		add = []string{e.Line()}
	}

	out := make([]string, 0, len(lines)+len(add))
	out = append(out, lines[:at]...)
	out = append(out, add...)
	return append(out, lines[at:]...)
}
