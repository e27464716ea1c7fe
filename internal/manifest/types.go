package manifest

// Catalog is the on-disk representation of an example catalog.
type Catalog struct {
	Version    string          `yaml:"version" toml:"version" json:"version"`
	Categories []CategoryEntry `yaml:"categories" toml:"categories" json:"categories"`
	Examples   []ExampleEntry  `yaml:"examples" toml:"examples" json:"examples"`
}

// CategoryEntry groups examples under a shared theme.
type CategoryEntry struct {
	Name        string   `yaml:"name" toml:"name" json:"name"`
	Title       string   `yaml:"title,omitempty" toml:"title" json:"title,omitempty"`
	Description string   `yaml:"description,omitempty" toml:"description" json:"description,omitempty"`
	Difficulty  string   `yaml:"difficulty,omitempty" toml:"difficulty" json:"difficulty,omitempty"`
	Examples    []string `yaml:"examples" toml:"examples" json:"examples"`
}

// ExampleEntry describes one documented code sample.
type ExampleEntry struct {
	Name               string   `yaml:"name" toml:"name" json:"name"`
	Title              string   `yaml:"title" toml:"title" json:"title"`
	Description        string   `yaml:"description" toml:"description" json:"description"`
	Category           string   `yaml:"category" toml:"category" json:"category"`
	Contract           string   `yaml:"contract" toml:"contract" json:"contract"`
	Test               string   `yaml:"test,omitempty" toml:"test" json:"test,omitempty"`
	Difficulty         string   `yaml:"difficulty" toml:"difficulty" json:"difficulty"`
	Concepts           []string `yaml:"concepts,omitempty" toml:"concepts" json:"concepts,omitempty"`
	Tags               []string `yaml:"tags,omitempty" toml:"tags" json:"tags,omitempty"`
	Prerequisites      []string `yaml:"prerequisites,omitempty" toml:"prerequisites" json:"prerequisites,omitempty"`
	LearningObjectives []string `yaml:"learning_objectives,omitempty" toml:"learning_objectives" json:"learning_objectives,omitempty"`
}

// Format identifies the encoding of a catalog document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)
