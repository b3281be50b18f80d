package main

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nestsummary/parallel"
)

func writeRepeats(t *testing.T, dir, name string, seed int64, scale float64) string {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var b strings.Builder
	b.WriteString("samples,logZ,theta\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "%d,%g,%g\n", 1000+rng.Intn(10), scale*rng.NormFloat64(), scale*rng.NormFloat64())
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReadRepeats(t *testing.T) {
	names, values, err := readRepeats(strings.NewReader("a, b\n1, 2\n# skipped\n3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
	r, c := values.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 4.0, values.At(1, 1))

	_, _, err = readRepeats(strings.NewReader("a,b\n1,x\n"))
	assert.Error(t, err)
	_, _, err = readRepeats(strings.NewReader("a,b\n"))
	assert.Error(t, err)
}

func TestParseMethodArgs(t *testing.T) {
	methods, err := parseMethodArgs([]string{"standard=a.csv", "dynamic=b.csv"})
	require.NoError(t, err)
	assert.Equal(t, []methodFile{{"standard", "a.csv"}, {"dynamic", "b.csv"}}, methods)

	_, err = parseMethodArgs([]string{"a.csv"})
	assert.Error(t, err)
	_, err = parseMethodArgs([]string{"=a.csv"})
	assert.Error(t, err)
}

func TestReadMethods_MismatchedEstimators(t *testing.T) {
	dir := t.TempDir()
	a := writeRepeats(t, dir, "a.csv", 1, 1)
	b := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(b, []byte("x,y\n1,2\n"), 0o644))

	_, _, err := readMethods(context.Background(), []methodFile{{"a", a}, {"b", b}}, parallel.DefaultOptions())
	assert.Error(t, err)
}

func TestSummarizeCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeRepeats(t, dir, "run.csv", 1, 1)

	out, err := run(t, "summarize", path)
	require.NoError(t, err)
	for _, s := range []string{"logZ", "theta", "mean", "std", "uncertainty"} {
		assert.Contains(t, out, s)
	}
	assert.NotContains(t, out, "rmse")

	config := filepath.Join(dir, "opts.yaml")
	require.NoError(t, os.WriteFile(config, []byte("true_values: [1000, 0, 0]\ninclude_rmse: true\ninclude_true_values: true\n"), 0o644))
	out, err = run(t, "--config", config, "summarize", path)
	require.NoError(t, err)
	assert.Contains(t, out, "rmse")
	assert.Contains(t, out, "true values")
}

func TestSummarizeCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeRepeats(t, dir, "run.csv", 1, 1)

	_, err := run(t, "summarize", filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	_, err = run(t, "summarize", "--axis", "2", path)
	assert.Error(t, err)

	config := filepath.Join(dir, "opts.yaml")
	require.NoError(t, os.WriteFile(config, []byte("true_value: [0, 0, 0]\n"), 0o644))
	_, err = run(t, "--config", config, "summarize", path)
	assert.Error(t, err)

	_, err = run(t, "--log-level", "loud", "summarize", path)
	assert.Error(t, err)
}

func TestSummarizeCommand_CachedInStore(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "store")
	first := writeRepeats(t, dir, "first.csv", 1, 1)
	second := writeRepeats(t, dir, "second.csv", 2, 5)

	want, err := run(t, "--store", store, "summarize", "--cache-name", "run", first)
	require.NoError(t, err)
	got, err := run(t, "--store", store, "summarize", "--cache-name", "run", second)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	other, err := run(t, "--store", store, "summarize", second)
	require.NoError(t, err)
	assert.NotEqual(t, want, other)
}

func TestGainCommand(t *testing.T) {
	dir := t.TempDir()
	standard := writeRepeats(t, dir, "standard.csv", 1, 2)
	dynamic := writeRepeats(t, dir, "dynamic.csv", 2, 1)

	out, err := run(t, "gain", "standard="+standard, "dynamic="+dynamic)
	require.NoError(t, err)
	assert.Contains(t, out, "std efficiency gain")
	assert.Contains(t, out, "dynamic settings")

	out, err = run(t, "gain", "--paper", "standard="+standard, "dynamic="+dynamic)
	require.NoError(t, err)
	assert.Contains(t, out, "Efficiency gain")
	assert.Contains(t, out, "St.Dev.")

	_, err = run(t, "gain", standard)
	assert.Error(t, err)
}
