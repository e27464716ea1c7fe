package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fhevm-examples/exgen/internal/registry"
	"github.com/fhevm-examples/exgen/internal/scaffold"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture isolates HOME, the working directory, and viper state, and
// returns absolute paths to the test catalog and source root.
type fixture struct {
	catalog string
	broken  string
	dangle  string
	src     string
	work    string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	testdata, err := filepath.Abs("testdata")
	require.NoError(t, err)

	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())
	work := t.TempDir()
	t.Chdir(work)

	return fixture{
		catalog: filepath.Join(testdata, "catalog.yaml"),
		broken:  filepath.Join(testdata, "broken-catalog.yaml"),
		dangle:  filepath.Join(testdata, "dangling-catalog.yaml"),
		src:     filepath.Join(testdata, "src"),
		work:    work,
	}
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestHelpListsExamples(t *testing.T) {
	newFixture(t)

	out, err := run(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Available examples:")
	assert.Contains(t, out, "fhe-counter")
	assert.Contains(t, out, "A counter whose value is stored encrypted and incremented...")
	assert.NotContains(t, out, "incremented with encrypted inputs.")
}

func TestHelpUsesConfiguredCatalog(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "create-example", "--help", "--catalog", f.catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "create-example <example-id> <target-dir>")
	assert.Contains(t, out, "counter")
	assert.Contains(t, out, "An encrypted counter.")
	assert.NotContains(t, out, "fhe-counter")
}

func TestListJSON(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "list", "--json", "--catalog", f.catalog)
	require.NoError(t, err)

	var entries []exampleEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "counter", entries[0].Name)
	assert.Equal(t, "adder", entries[1].Name)
	assert.Equal(t, "intermediate", entries[1].Difficulty)
}

func TestListTable(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "list", "--difficulty", "intermediate", "--catalog", f.catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "adder")
	assert.NotContains(t, out, "counter")

	out, err = run(t, "list", "--categories", "--catalog", f.catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "basic")

	_, err = run(t, "list", "--difficulty", "expert", "--catalog", f.catalog)
	assert.Error(t, err)
}

func TestSelectExamples(t *testing.T) {
	reg := registry.New(
		[]registry.Category{{Name: "basic", Examples: []string{"a", "b"}}, {Name: "other", Examples: []string{"c"}}},
		[]registry.Example{
			{Name: "a", Category: "basic", Difficulty: registry.Beginner, Tags: []string{"x"}},
			{Name: "b", Category: "basic", Difficulty: registry.Advanced, Tags: []string{"x"}},
			{Name: "c", Category: "other", Difficulty: registry.Beginner, Concepts: []string{"X"}},
		},
	)

	tests := []struct {
		name                      string
		category, difficulty, tag string
		want                      []string
	}{
		{"no filters", "", "", "", []string{"a", "b", "c"}},
		{"category", "basic", "", "", []string{"a", "b"}},
		{"difficulty", "", "beginner", "", []string{"a", "c"}},
		{"tag", "", "", "x", []string{"a", "b", "c"}},
		{"category and difficulty", "basic", "advanced", "", []string{"b"}},
		{"tag and difficulty", "", "beginner", "X", []string{"a", "c"}},
		{"category and tag", "other", "", "x", []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectExamples(reg, tt.category, tt.difficulty, tt.tag)
			require.NoError(t, err)
			names := make([]string, len(got))
			for i, e := range got {
				names[i] = e.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}

	_, err := selectExamples(reg, "nope", "", "")
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestSearchCommand(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "search", "PERMISSION", "--catalog", f.catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "counter")
	assert.NotContains(t, out, "adder")

	out, err = run(t, "search", "nothing-here", "--catalog", f.catalog)
	require.NoError(t, err)
	assert.Equal(t, "No examples found matching \"nothing-here\"\n", out)
}

func TestSearchExamplesWithTags(t *testing.T) {
	reg := registry.New(
		[]registry.Category{{Name: "basic", Examples: []string{"a", "b"}}},
		[]registry.Example{
			{Name: "a", Title: "Encrypted counter", Category: "basic", Difficulty: registry.Beginner, Tags: []string{"state"}},
			{Name: "b", Title: "Encrypted adder", Category: "basic", Difficulty: registry.Beginner, Tags: []string{"Math"}},
		},
	)

	tests := []struct {
		name  string
		query string
		tags  string
		want  int
	}{
		{"query only", "encrypted", "", 2},
		{"query and tag", "encrypted", "math", 1},
		{"any of several tags", "", "state, math", 2},
		{"tag without match", "", "nope", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, searchExamples(reg, tt.query, parseTags(tt.tags)), tt.want)
		})
	}
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, parseTags(" a,,b ,"))
	assert.Nil(t, parseTags(""))
}

func TestCreateExample(t *testing.T) {
	f := newFixture(t)
	target := filepath.Join(f.work, "out", "counter")

	out, err := run(t, "create-example", "counter", target, "--catalog", f.catalog, "--source-root", f.src, "--api")
	require.NoError(t, err)
	assert.Contains(t, out, "Created example counter in "+target)
	assert.Contains(t, out, "npx hardhat test")

	for _, name := range []string{"README.md", "docs/API.md", "contracts/Counter.sol", "test/Counter.ts", "package.json", "hardhat.config.ts", ".gitignore"} {
		assert.FileExists(t, filepath.Join(target, name))
	}
	assert.NoFileExists(t, filepath.Join(target, "contracts", "FHECounter.sol"))
	assert.NoFileExists(t, target+".exgen.lock")

	index, err := os.ReadFile(filepath.Join(f.work, "out", "SUMMARY.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Summary\n\n## Basic\n\n- [Counter](counter/README.md)\n", string(index))

	_, err = run(t, "create-example", "counter", target, "--catalog", f.catalog, "--source-root", f.src)
	assert.ErrorIs(t, err, scaffold.ErrTargetNotEmpty)
}

func TestCreateExampleRelativeSourceRoot(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.CopyFS(filepath.Join(f.work, "src"), os.DirFS(f.src)))

	_, err := run(t, "create-example", "adder", "adder", "--catalog", f.catalog, "--source-root", "src", "--no-summary")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.work, "adder", "contracts", "Adder.sol"))
	assert.NoFileExists(t, filepath.Join(f.work, "SUMMARY.md"))
}

func TestCreateExampleMissingArtifact(t *testing.T) {
	f := newFixture(t)
	target := filepath.Join(f.work, "ghost")

	_, err := run(t, "create-example", "ghost-file", target, "--catalog", f.broken, "--source-root", f.src)
	var missing *scaffold.MissingArtifactError
	require.ErrorAs(t, err, &missing)
	assert.NoDirExists(t, target)
}

func TestCreateExampleUnknownID(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, "create-example", "countr", filepath.Join(f.work, "x"), "--catalog", f.catalog, "--source-root", f.src)
	require.ErrorIs(t, err, registry.ErrNotFound)

	report := describeError(err)
	assert.Equal(t, "example not found", report.Context)
	assert.Equal(t, []string{"counter"}, report.Suggestions)
	assert.Equal(t, []string{"Valid example ids: adder, counter"}, report.Details)
}

func TestNotFoundListsValidIDsWithoutCloseMatch(t *testing.T) {
	report := describeError(&registry.NotFoundError{
		Kind:  "example",
		ID:    "does-not-exist",
		Known: []string{"access-control", "encrypt-single-value", "fhe-counter"},
	})

	assert.Empty(t, report.Suggestions)
	require.Len(t, report.Details, 1)
	for _, id := range []string{"access-control", "encrypt-single-value", "fhe-counter"} {
		assert.Contains(t, report.Details[0], id)
	}
}

func TestGlobalFlagsBindSettings(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "config", "get", "catalog", "--catalog", f.catalog)
	require.NoError(t, err)
	assert.Equal(t, f.catalog+"\n", out)
}

func TestCreateExampleInWorkingDirectory(t *testing.T) {
	f := newFixture(t)
	dir := filepath.Join(f.work, "counter")
	require.NoError(t, os.Mkdir(dir, 0o755))
	t.Chdir(dir)

	_, err := run(t, "create-example", "counter", ".", "--catalog", f.catalog, "--source-root", f.src)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "contracts", "Counter.sol"))
	assert.NoFileExists(t, filepath.Join(dir, "SUMMARY.md"))
	assert.FileExists(t, filepath.Join(f.work, "SUMMARY.md"))
}

func TestCreateCategory(t *testing.T) {
	f := newFixture(t)
	target := filepath.Join(f.work, "basic")

	out, err := run(t, "create-category", "basic", target, "--catalog", f.catalog, "--source-root", f.src)
	require.NoError(t, err)
	assert.Contains(t, out, "Created category basic")

	for _, name := range []string{"README.md", "docs/counter.md", "docs/adder.md", "contracts/Counter.sol", "contracts/Adder.sol"} {
		assert.FileExists(t, filepath.Join(target, name))
	}
	deploy, err := os.ReadFile(filepath.Join(target, "deploy", "deploy.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(deploy), `deploy("Counter"`)
	assert.Contains(t, string(deploy), `deploy("Adder"`)
}

func TestGenerateDocsSingle(t *testing.T) {
	f := newFixture(t)
	output := filepath.Join(f.work, "site")

	out, err := run(t, "generate-docs", "counter", "--output", output, "--guide", "--catalog", f.catalog, "--source-root", f.src)
	require.NoError(t, err)
	assert.Contains(t, out, "counter.md")
	assert.Contains(t, out, "counter-guide.md")
	assert.FileExists(t, filepath.Join(output, "counter.md"))
	assert.FileExists(t, filepath.Join(output, "SUMMARY.md"))
}

func TestGenerateDocsDefaultOutput(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, "generate-docs", "adder", "--catalog", f.catalog, "--source-root", f.src)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.work, "docs", "adder.md"))
}

func TestGenerateDocsAll(t *testing.T) {
	f := newFixture(t)
	output := filepath.Join(f.work, "site")

	out, err := run(t, "generate-docs", "--all", "--parallel", "2", "--output", output, "--catalog", f.broken, "--source-root", f.src)
	require.Error(t, err)
	assert.Contains(t, out, "2 succeeded, 1 failed")
	assert.Contains(t, out, "ghost-file")

	index, err := os.ReadFile(filepath.Join(output, "SUMMARY.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Summary\n\n## Basic\n\n- [Counter](counter.md)\n- [Adder](adder.md)\n", string(index))
}

func TestGenerateDocsArgs(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, "generate-docs", "--catalog", f.catalog)
	assert.Error(t, err)

	_, err = run(t, "generate-docs", "counter", "--all", "--catalog", f.catalog)
	assert.EqualError(t, err, "an example id cannot be combined with --all")
}

func TestInvalidCatalogStopsBeforeWriting(t *testing.T) {
	f := newFixture(t)
	target := filepath.Join(f.work, "counter")

	_, err := run(t, "create-example", "counter", target, "--catalog", f.dangle, "--source-root", f.src)
	var cfgErr *registry.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Len(t, cfgErr.Issues, 2)
	assert.NoDirExists(t, target)

	_, err = run(t, "validate", "--catalog", f.dangle)
	require.ErrorAs(t, err, &cfgErr)

	report := describeError(err)
	assert.Equal(t, "invalid catalog", report.Context)
	assert.Equal(t, cfgErr.Issues, report.Details)
}

func TestValidate(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "embedded catalog is valid")

	out, err = run(t, "validate", "--catalog", f.catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid: 2 examples in 1 categories")
}

func TestShowRaw(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "show", "counter", "--raw", "--doc", "api", "--catalog", f.catalog, "--source-root", f.src)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Counter: API Reference"))
	assert.Contains(t, out, "function increment(externalEuint32 value, bytes calldata proof) external")

	_, err = run(t, "show", "counter", "--doc", "slides", "--catalog", f.catalog)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	newFixture(t)
	buildVersion, buildCommit, buildDate = "1.2.3", "abc", "today"

	out, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "exgen version 1.2.3 (commit: abc, built: today)\n", out)
}

func TestConfigSetGet(t *testing.T) {
	newFixture(t)

	out, err := run(t, "config", "set", "docs.output", "site")
	require.NoError(t, err)
	assert.Equal(t, "Set docs.output = site\n", out)

	out, err = run(t, "config", "get", "docs.output")
	require.NoError(t, err)
	assert.Equal(t, "site\n", out)
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		context string
	}{
		{"target not empty", scaffold.ErrTargetNotEmpty, "target exists"},
		{"target busy", &scaffold.TargetBusyError{Target: "out", Lock: "out.exgen.lock"}, "target busy"},
		{"missing artifact", &scaffold.MissingArtifactError{Example: "a", Path: "contracts/A.sol", Err: os.ErrNotExist}, "missing artifact"},
		{"cancelled", context.Canceled, ""},
		{"other", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.context, describeError(tt.err).Context)
		})
	}

	busy := describeError(&scaffold.TargetBusyError{Target: "out", Lock: "/work/out.exgen.lock"})
	assert.Equal(t, []string{"If no other exgen run is active, remove /work/out.exgen.lock"}, busy.HelpCommands)

	nf := describeError(&registry.NotFoundError{Kind: "category", ID: "basc", Known: []string{"basic", "decryption"}})
	assert.Equal(t, []string{"basic"}, nf.Suggestions)
	assert.Equal(t, []string{"List categories: exgen list --categories"}, nf.HelpCommands)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 60))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Len(t, []rune(truncate(strings.Repeat("é", 80), 60)), 60)
}
