//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fhevm-examples/exgen/internal/manifest"
	"github.com/fhevm-examples/exgen/internal/registry"
	"github.com/fhevm-examples/exgen/internal/render"
	"github.com/fhevm-examples/exgen/internal/scaffold"
	"github.com/spf13/afero"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	SourceDir string // contracts/ and test/ the catalog points at
	OutputDir string // where projects and docs are generated
	Catalog   string // catalog file inside SourceDir
}

// setupTestEnv creates a source tree with two categories and a catalog
// describing it. HOME is redirected so no user settings leak in.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		SourceDir: t.TempDir(),
		OutputDir: t.TempDir(),
	}
	env.Catalog = filepath.Join(env.SourceDir, "catalog.yaml")
	t.Setenv("HOME", t.TempDir())

	writeFile(t, env.Catalog, `version: "1.0.0"

categories:
  - name: basic
    title: Basic
    difficulty: beginner
    examples: [counter, adder]
  - name: access-control
    title: Access Control
    examples: [allow-counter]

examples:
  - name: counter
    title: Encrypted Counter
    description: A counter stored as an encrypted value.
    category: basic
    contract: contracts/basic/Counter.sol
    test: test/basic/Counter.ts
    difficulty: beginner
    concepts: [euint32, FHE.add]

  - name: adder
    title: Encrypted Adder
    description: Adds two encrypted inputs.
    category: basic
    contract: contracts/basic/Adder.sol
    difficulty: beginner

  - name: allow-counter
    title: Counter With Access Control
    description: A counter that grants decryption rights to the caller.
    category: access-control
    contract: contracts/acl/Counter.sol
    test: test/acl/Counter.ts
    difficulty: intermediate
    tags: [acl]
`)

	writeFile(t, filepath.Join(env.SourceDir, "contracts/basic/Counter.sol"), `pragma solidity ^0.8.24;

contract Counter {
    /// @notice Increments the counter.
    function increment(uint32 value) external {}
}
`)
	writeFile(t, filepath.Join(env.SourceDir, "test/basic/Counter.ts"), "describe(\"Counter\", () => {});\n")
	writeFile(t, filepath.Join(env.SourceDir, "contracts/basic/Adder.sol"), `pragma solidity ^0.8.24;

contract Adder {
    event Added(uint8 result);
}
`)
	writeFile(t, filepath.Join(env.SourceDir, "contracts/acl/Counter.sol"), `pragma solidity ^0.8.24;

contract Counter {
    function allow(address who) external {}
}
`)
	writeFile(t, filepath.Join(env.SourceDir, "test/acl/Counter.ts"), "describe(\"ACL Counter\", () => {});\n")

	return env
}

// loadConfig builds a scaffold configuration over the real filesystem
// from the environment's catalog.
func loadConfig(t *testing.T, env *testEnv) scaffold.Config {
	t.Helper()

	catalog, err := manifest.Load(env.Catalog)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	reg := registry.FromCatalog(catalog)
	if err := reg.Validate().Err(); err != nil {
		t.Fatalf("catalog is invalid: %v", err)
	}
	r, err := render.New(reg)
	if err != nil {
		t.Fatalf("creating renderer: %v", err)
	}

	return scaffold.Config{
		Registry: reg,
		Renderer: r,
		Sources:  afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), env.SourceDir)),
		Output:   afero.NewOsFs(),
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// readFile returns the contents of path, failing the test on error.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
