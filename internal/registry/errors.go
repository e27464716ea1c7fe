package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports an example or category identifier that is not in
// the registry. Known lists the valid identifiers of the same kind.
type NotFoundError struct {
	Kind  string // "example" or "category"
	ID    string
	Known []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) true for any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConfigurationError reports a registry that failed integrity validation.
type ConfigurationError struct {
	Issues []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("catalog configuration is invalid (%d issue(s)): %s",
		len(e.Issues), strings.Join(e.Issues, "; "))
}
