package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestEnsureSubdir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)

	got, err := EnsureSubdir("downloads")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "downloads"), got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureSubdir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)

	first, err := EnsureSubdir("downloads")
	require.NoError(t, err)
	second, err := EnsureSubdir("downloads")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureSubdir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "downloads"), []byte("x"), 0o600))

	_, err := EnsureSubdir("downloads")
	require.Error(t, err)
}

func TestSafeBaseName(t *testing.T) {
	assert.Equal(t, "report.pdf", SafeBaseName("report.pdf"))
	assert.Equal(t, "report.pdf", SafeBaseName("../../etc/report.pdf"))
	assert.Equal(t, "passwd", SafeBaseName("/etc/passwd"))
	assert.Equal(t, "unnamed", SafeBaseName(".."))
	assert.Equal(t, "unnamed", SafeBaseName(""))
}
