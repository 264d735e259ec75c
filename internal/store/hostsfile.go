// ===== internal/store/hostsfile.go =====
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"mikrotik-hosts/pkg/utils"
)

// BackupSuffix is appended to the hosts file path to name its one-time backup
const BackupSuffix = ".bak"

// HostsFile reads and rewrites a hosts file as a whole
type HostsFile struct {
	Path string

	log logrus.FieldLogger
}

// NewHostsFile creates a new hosts file store
func NewHostsFile(path string, log logrus.FieldLogger) *HostsFile {
	return &HostsFile{
		Path: path,
		log:  log.WithField("file", path),
	}
}

// BackupPath returns where the backup copy lives
func (h *HostsFile) BackupPath() string {
	return h.Path + BackupSuffix
}

// Load reads the whole hosts file
func (h *HostsFile) Load() (string, error) {
	h.log.Debug("Read file")
	content, err := os.ReadFile(h.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read hosts file: %w", err)
	}
	return string(content), nil
}

// Backup copies the hosts file aside unless a backup already exists.
// An existing backup is never overwritten, so it always holds the pre-sync original.
func (h *HostsFile) Backup() (bool, error) {
	backup := h.BackupPath()
	if _, err := os.Stat(backup); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to check backup %s: %w", backup, err)
	}

	if err := copyFile(h.Path, backup); err != nil {
		return false, utils.WrapError(err, "failed to create backup")
	}

	h.log.WithField("backup", backup).Info("Created backup")
	return true, nil
}

// Save replaces the hosts file with content and reports whether anything changed.
// Identical content is left alone so repeated runs do not touch the file.
func (h *HostsFile) Save(content string) (bool, error) {
	current, err := os.ReadFile(h.Path)
	if err == nil && bytes.Equal(current, []byte(content)) {
		h.log.Debug("Content unchanged, skipping write")
		return false, nil
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(h.Path); err == nil {
		mode = info.Mode().Perm()
	}

	h.log.Debug("Write file")
	if err := h.replace(content, mode); err != nil {
		return false, err
	}
	return true, nil
}

// replace writes through a temporary file and renames it over the target.
// Files that cannot be renamed over (bind mounts, for one) are overwritten in place.
func (h *HostsFile) replace(content string, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(h.Path), filepath.Base(h.Path)+".*.tmp")
	if err != nil {
		h.log.WithError(err).Debug("Cannot create temporary file, writing in place")
		return h.overwrite(content, mode)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.WriteString(tmp, content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set mode on temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmp.Name(), h.Path); err != nil {
		h.log.WithError(err).Debug("Rename refused, writing in place")
		return h.overwrite(content, mode)
	}
	return nil
}

func (h *HostsFile) overwrite(content string, mode os.FileMode) error {
	if err := os.WriteFile(h.Path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write hosts file: %w", err)
	}
	return nil
}

// copyFile copies src to dst keeping the permission bits and modification time
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
