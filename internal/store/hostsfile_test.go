package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHostsFile(t *testing.T, content string) *HostsFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hosts")
	require.NoError(t, os.WriteFile(path, []byte(content), 0640))
	log, _ := test.NewNullLogger()
	return NewHostsFile(path, log)
}

func TestLoad(t *testing.T) {
	h := createTestHostsFile(t, "127.0.0.1 localhost\n")

	content, err := h.Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1 localhost\n", content)
}

func TestLoadMissing(t *testing.T) {
	log, _ := test.NewNullLogger()
	h := NewHostsFile(filepath.Join(t.TempDir(), "absent"), log)

	_, err := h.Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBackupOnce(t *testing.T) {
	h := createTestHostsFile(t, "original\n")
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(h.Path, past, past))

	created, err := h.Backup()
	require.NoError(t, err)
	assert.True(t, created)

	info, err := os.Stat(h.BackupPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(past))

	_, err = h.Save("rewritten\n")
	require.NoError(t, err)

	created, err = h.Backup()
	require.NoError(t, err)
	assert.False(t, created)

	backup, err := os.ReadFile(h.BackupPath())
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(backup))
}

func TestSave(t *testing.T) {
	h := createTestHostsFile(t, "old\n")

	changed, err := h.Save("new\n")
	require.NoError(t, err)
	assert.True(t, changed)

	content, err := os.ReadFile(h.Path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(content))

	info, err := os.Stat(h.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(h.Path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestSaveUnchanged(t *testing.T) {
	h := createTestHostsFile(t, "same\n")
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(h.Path, past, past))

	changed, err := h.Save("same\n")
	require.NoError(t, err)
	assert.False(t, changed)

	info, err := os.Stat(h.Path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past))
}
