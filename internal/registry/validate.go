package registry

import "fmt"

// ValidationResult holds the outcome of a registry integrity check.
type ValidationResult struct {
	Valid  bool
	Issues []string
}

// Err returns a *ConfigurationError when the result is invalid, nil otherwise.
func (v ValidationResult) Err() error {
	if v.Valid {
		return nil
	}
	return &ConfigurationError{Issues: v.Issues}
}

// Validate checks that every category member names a registered example,
// that every example names a registered category, and reports duplicates
// and unknown difficulty levels found while building.
func (r *Registry) Validate() ValidationResult {
	issues := append([]string(nil), r.issues...)

	for _, c := range r.categories {
		seen := make(map[string]bool, len(c.Examples))
		for _, member := range c.Examples {
			if seen[member] {
				issues = append(issues, fmt.Sprintf("category %q lists example %q more than once", c.Name, member))
				continue
			}
			seen[member] = true
			if _, ok := r.byName[member]; !ok {
				issues = append(issues, fmt.Sprintf("category %q lists unknown example %q", c.Name, member))
			}
		}
	}

	for _, e := range r.examples {
		if _, ok := r.byCategory[e.Category]; !ok {
			issues = append(issues, fmt.Sprintf("example %q references unknown category %q", e.Name, e.Category))
		}
	}

	return ValidationResult{Valid: len(issues) == 0, Issues: issues}
}
