package manifest

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// DefaultOrigin names the embedded catalog in diagnostics.
const DefaultOrigin = "embedded catalog"

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Decode(defaultCatalog, FormatYAML, DefaultOrigin)
}

// Load reads a catalog file, validates it against the catalog schema, and
// returns the decoded catalog. The format is chosen from the file extension.
func Load(path string) (*Catalog, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, format, path)
}

// Decode validates raw catalog bytes, unmarshals them, and checks the
// catalog format version. origin is only used in error messages.
func Decode(data []byte, format Format, origin string) (*Catalog, error) {
	result, err := Validate(data, format)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", origin, err)
	}
	if !result.Valid {
		return nil, &SchemaError{Origin: origin, Issues: result.Issues}
	}

	var c Catalog
	if err := unmarshal(data, format, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", origin, err)
	}

	if err := CheckVersion(c.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", origin, err)
	}

	return &c, nil
}

// DetectFormat maps a file extension to a catalog format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported catalog extension %q in %s (want .yaml, .yml, or .toml)", filepath.Ext(path), path)
	}
}

// SchemaError reports a catalog that does not satisfy the catalog schema.
type SchemaError struct {
	Origin string
	Issues []ValidationIssue
}

func (e *SchemaError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msg := issue.Message
		if issue.Path != "" {
			msg = issue.Path + ": " + msg
		}
		msgs = append(msgs, msg)
	}
	return fmt.Sprintf("catalog %s failed schema validation: %s", e.Origin, strings.Join(msgs, "; "))
}

// unmarshal decodes data in the given format into v.
func unmarshal(data []byte, format Format, v interface{}) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatTOML:
		return toml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unknown catalog format %q", format)
	}
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
