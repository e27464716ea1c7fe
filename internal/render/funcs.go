package render

import (
	"path"
	"strings"
	"text/template"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"join":  strings.Join,
		"fence": fence,
		"cell":  cell,
		"inc":   func(i int) int { return i + 1 },
	}
}

// fenceLang maps a file extension to a Markdown code fence language.
func fenceLang(p string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".sol":
		return "solidity"
	case ".ts":
		return "typescript"
	case ".js":
		return "javascript"
	case ".json":
		return "json"
	default:
		return ""
	}
}

// fence wraps text in a code block whose backtick fence is longer than any
// backtick run inside text, so embedded fences cannot close it early.
func fence(text, lang string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	n := 3
	if longest >= n {
		n = longest + 1
	}
	marker := strings.Repeat("`", n)

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString(lang)
	b.WriteByte('\n')
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(marker)
	return b.String()
}

// cell makes s safe for a single Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
