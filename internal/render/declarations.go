package render

import (
	"regexp"
	"strings"
)

// Declaration is one public-facing item found in contract source.
type Declaration struct {
	Kind      string // function, event, error, or modifier
	Name      string
	Signature string
	Doc       string // NatSpec text immediately above the declaration
}

var declPattern = regexp.MustCompile(`^(function|event|error|modifier)\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

var (
	natspecTag  = regexp.MustCompile(`^@(notice|dev)\s*`)
	natspecSkip = regexp.MustCompile(`^@(param|return|inheritdoc|title|author|custom)\b`)
)

// DeclarationGroup collects declarations of one kind under a heading.
type DeclarationGroup struct {
	Title string
	Items []Declaration
}

var groupOrder = []struct{ kind, title string }{
	{"function", "Functions"},
	{"event", "Events"},
	{"error", "Errors"},
	{"modifier", "Modifiers"},
}

// GroupDeclarations buckets decls by kind. Empty groups are omitted and
// source order is kept within a group.
func GroupDeclarations(decls []Declaration) []DeclarationGroup {
	var groups []DeclarationGroup
	for _, g := range groupOrder {
		var items []Declaration
		for _, d := range decls {
			if d.Kind == g.kind {
				items = append(items, d)
			}
		}
		if len(items) > 0 {
			groups = append(groups, DeclarationGroup{Title: g.title, Items: items})
		}
	}
	return groups
}

// ScanDeclarations lists function, event, error, and modifier declarations
// in Solidity source, in source order. It is a line scan, not a parser:
// signatures that span lines are joined up to the opening brace or
// terminating semicolon.
func ScanDeclarations(src string) []Declaration {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	var (
		decls   []Declaration
		doc     []string
		inBlock bool
	)
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		switch {
		case inBlock:
			if strings.HasSuffix(line, "*/") {
				inBlock = false
				line = strings.TrimSuffix(line, "*/")
			}
			if text := natspecText(strings.TrimPrefix(line, "*")); text != "" {
				doc = append(doc, text)
			}
			continue
		case strings.HasPrefix(line, "///"):
			if text := natspecText(strings.TrimPrefix(line, "///")); text != "" {
				doc = append(doc, text)
			}
			continue
		case strings.HasPrefix(line, "/**"):
			rest := strings.TrimPrefix(line, "/**")
			if strings.HasSuffix(rest, "*/") {
				rest = strings.TrimSuffix(rest, "*/")
			} else {
				inBlock = true
			}
			if text := natspecText(rest); text != "" {
				doc = append(doc, text)
			}
			continue
		}

		m := declPattern.FindStringSubmatch(line)
		if m == nil {
			if line != "" {
				doc = nil
			}
			continue
		}

		sig := line
		for !strings.ContainsAny(sig, "{;") && i+1 < len(lines) {
			i++
			sig += " " + strings.TrimSpace(lines[i])
		}
		if idx := strings.IndexAny(sig, "{;"); idx >= 0 {
			sig = sig[:idx]
		}

		decls = append(decls, Declaration{
			Kind:      m[1],
			Name:      m[2],
			Signature: strings.Join(strings.Fields(sig), " "),
			Doc:       strings.Join(doc, " "),
		})
		doc = nil
	}
	return decls
}

func natspecText(s string) string {
	s = strings.TrimSpace(s)
	if natspecSkip.MatchString(s) {
		return ""
	}
	return strings.TrimSpace(natspecTag.ReplaceAllString(s, ""))
}
