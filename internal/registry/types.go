package registry

import "fmt"

// Difficulty is the level tag carried by examples and categories.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Difficulties lists every valid level in ascending order.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// ParseDifficulty converts a string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q (want beginner, intermediate, or advanced)", s)
	}
	return d, nil
}

// DefaultObjective is the learning objective shown for examples that do not
// declare any.
const DefaultObjective = "Understand core concepts"

// Example describes one documented code sample. Values handed out by a
// Registry are shared and must not be modified.
type Example struct {
	Name               string // unique identifier, e.g. "fhe-counter"
	Title              string
	Description        string
	Category           string // identifier of the owning category
	Contract           string // primary source artifact, relative to the source root
	Test               string // test artifact, relative to the source root; may be empty
	Difficulty         Difficulty
	Concepts           []string
	Tags               []string
	Prerequisites      []string
	LearningObjectives []string
}

// Objectives returns the declared learning objectives, or a single
// DefaultObjective when none are declared.
func (e *Example) Objectives() []string {
	if len(e.LearningObjectives) == 0 {
		return []string{DefaultObjective}
	}
	return e.LearningObjectives
}

// Category groups examples under a shared theme.
type Category struct {
	Name        string
	Title       string
	Description string
	Examples    []string // ordered member example identifiers
	Difficulty  Difficulty
}
