package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_Stdout(t *testing.T) {
	var buf bytes.Buffer
	stdout = &buf
	defer func() { stdout = os.Stdout }()

	require.NoError(t, Write("", "pub struct A {}\n"))
	assert.Equal(t, "pub struct A {}\n", buf.String())
}

func TestWrite_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen", "api.rs")

	require.NoError(t, Write(path, "pub struct A {}\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pub struct A {}\n", string(data))
}

func TestCheck_UpToDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.rs")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o644))

	diff, err := Check(path, "a\nb\n")
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestCheck_Drift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.rs")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o644))

	diff, err := Check(path, "a\nc\n")
	require.NoError(t, err)
	assert.Contains(t, diff, "--- "+path)
	assert.Contains(t, diff, "+++ "+path+" (generated)")
	assert.Contains(t, diff, "-b\n")
	assert.Contains(t, diff, "+c\n")
}

func TestCheck_Missing(t *testing.T) {
	diff, err := Check(filepath.Join(t.TempDir(), "api.rs"), "a\n")
	require.NoError(t, err)
	assert.Contains(t, diff, "+a\n")
}
