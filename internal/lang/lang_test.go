//go:build unix

package lang_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/programme-lv/batchjudge/internal/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	shSpec = lang.Spec{
		ID:         "sh",
		Extensions: []string{".sh"},
		RunCmd:     "sh {src}",
	}
	// copying the source counts as compiling it
	cpSpec = lang.Spec{
		ID:         "cp",
		Extensions: []string{".cp"},
		SourceFile: "main.sh",
		BinaryFile: "main.bin",
		CompileCmd: "cp {src} {bin}",
		RunCmd:     "sh {bin}",
	}
	brokenSpec = lang.Spec{
		ID:         "broken",
		SourceFile: "main.txt",
		BinaryFile: "main.bin",
		CompileCmd: "sh -c 'echo syntax error on line 1 >&2; exit 1'",
		RunCmd:     "{bin}",
	}
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func prepareOpts(t *testing.T) lang.PrepareOptions {
	return lang.PrepareOptions{WorkRoot: t.TempDir(), CompileTimeLimit: 5 * time.Second}
}

func TestInterpretedPrepareAndRun(t *testing.T) {
	a, err := lang.NewAdapter(shSpec)
	require.NoError(t, err)
	assert.False(t, a.Compiles())

	src := writeSource(t, "sol.sh", "read a b; echo $((a + b))")
	exe, data, err := a.Prepare(context.Background(), src, prepareOpts(t))
	require.NoError(t, err)
	assert.Nil(t, data)
	defer exe.Close()

	res, err := a.Run(context.Background(), exe, lang.RunRequest{Stdin: []byte("2 3\n"), TimeLimit: time.Second})
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, "5\n", string(res.Stdout))
}

func TestInterpretedMissingSource(t *testing.T) {
	a, err := lang.NewAdapter(shSpec)
	require.NoError(t, err)
	_, _, err = a.Prepare(context.Background(), filepath.Join(t.TempDir(), "nope.sh"), prepareOpts(t))
	require.Error(t, err)
	var ce *lang.CompileError
	assert.False(t, errors.As(err, &ce))
}

func TestCompiledReusesArtifact(t *testing.T) {
	a, err := lang.NewAdapter(cpSpec)
	require.NoError(t, err)
	assert.True(t, a.Compiles())

	src := writeSource(t, "sol.cp", "cat")
	exe, data, err := a.Prepare(context.Background(), src, prepareOpts(t))
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.EqualValues(t, 0, data.ExitCode)

	for _, in := range []string{"first\n", "second\n"} {
		res, err := a.Run(context.Background(), exe, lang.RunRequest{Stdin: []byte(in), TimeLimit: time.Second})
		require.NoError(t, err)
		assert.Equal(t, in, string(res.Stdout))
	}

	dir := exe.Dir()
	assert.FileExists(t, filepath.Join(dir, "main.bin"))
	require.NoError(t, exe.Close())
	assert.NoDirExists(t, dir)
}

func TestCompileFailure(t *testing.T) {
	a, err := lang.NewAdapter(brokenSpec)
	require.NoError(t, err)

	opts := prepareOpts(t)
	exe, data, err := a.Prepare(context.Background(), writeSource(t, "x.txt", "garbage"), opts)
	require.Error(t, err)
	assert.Nil(t, exe)
	require.NotNil(t, data)

	var ce *lang.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Log, "syntax error on line 1")

	entries, err := os.ReadDir(opts.WorkRoot)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed compilation must not leave a box behind")
}

func TestMissingToolchain(t *testing.T) {
	a, err := lang.NewAdapter(lang.Spec{
		ID:         "ghost",
		SourceFile: "a.g",
		BinaryFile: "a",
		CompileCmd: "ghostc-does-not-exist {src}",
		RunCmd:     "{bin}",
	})
	require.NoError(t, err)
	_, _, err = a.Prepare(context.Background(), writeSource(t, "a.g", ""), prepareOpts(t))
	assert.ErrorIs(t, err, lang.ErrToolchainNotFound)
}

func TestRunScalesTimeLimit(t *testing.T) {
	slow := shSpec
	slow.ID = "slow-sh"
	slow.TimeMultiplier = 10
	a, err := lang.NewAdapter(slow)
	require.NoError(t, err)

	exe, _, err := a.Prepare(context.Background(), writeSource(t, "s.sh", "sleep 0.3; echo ok"), prepareOpts(t))
	require.NoError(t, err)
	defer exe.Close()

	res, err := a.Run(context.Background(), exe, lang.RunRequest{TimeLimit: 100 * time.Millisecond})
	require.NoError(t, err)
	assert.False(t, res.TimedOut)
	assert.Equal(t, "ok\n", string(res.Stdout))
}

func TestRegistry(t *testing.T) {
	r := lang.NewRegistry()
	require.NoError(t, r.AddSpec(shSpec, false))
	require.NoError(t, r.AddSpec(cpSpec, false))
	require.Error(t, r.AddSpec(shSpec, false))

	tag, ok := r.Detect("contestants/ann/sum.SH")
	require.True(t, ok)
	assert.Equal(t, "sh", tag)

	_, ok = r.Detect("sum.rs")
	assert.False(t, ok)

	a, ok := r.Get("cp")
	require.True(t, ok)
	assert.True(t, a.Compiles())
	assert.Equal(t, []string{"cp", "sh"}, r.Tags())
}

func TestDefaultRegistry(t *testing.T) {
	r := lang.Default()
	for _, tag := range []string{"c", "cpp", "java", "python", "javascript", "sh"} {
		_, ok := r.Get(tag)
		assert.True(t, ok, tag)
	}
	tag, ok := r.Detect("a.cc")
	require.True(t, ok)
	assert.Equal(t, "cpp", tag)
}

func TestLoadFileReplacesBuiltin(t *testing.T) {
	path := writeSource(t, "langs.toml", `
[[languages]]
id = "python"
extensions = ["py", ".py3"]
run_cmd = "pypy3 {src}"
`)
	r := lang.Default()
	require.NoError(t, r.LoadFile(path))

	tag, ok := r.Detect("x.py3")
	require.True(t, ok)
	assert.Equal(t, "python", tag)
	a, _ := r.Get("python")
	assert.Equal(t, "python", a.Name())
}

func TestParseSpecsValidation(t *testing.T) {
	_, err := lang.ParseSpecs([]byte(`
[[languages]]
id = "x"
compile_cmd = "cc {src}"
run_cmd = "{bin}"
`))
	assert.Error(t, err)

	_, err = lang.ParseSpecs([]byte(`
[[languages]]
id = "y"
`))
	assert.Error(t, err)
}

func TestCheckToolchain(t *testing.T) {
	r := lang.NewRegistry()
	require.NoError(t, r.AddSpec(shSpec, false))
	require.NoError(t, r.AddSpec(cpSpec, false))
	require.NoError(t, r.AddSpec(brokenSpec, false))
	require.NoError(t, r.AddSpec(lang.Spec{ID: "ghost", RunCmd: "ghost-interpreter-does-not-exist {src}"}, false))

	assert.NoError(t, r.CheckToolchain("sh"))
	assert.NoError(t, r.CheckToolchain("cp"))
	// run_cmd is the compiled binary itself
	assert.NoError(t, r.CheckToolchain("broken"))
	assert.ErrorIs(t, r.CheckToolchain("ghost"), lang.ErrToolchainNotFound)
	assert.Error(t, r.CheckToolchain("nope"))
}
