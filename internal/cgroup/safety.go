package cgroup

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cgtop/cgtop/internal/errors"
	"github.com/cgtop/cgtop/internal/logger"
)

// IsSafeToRemove reports whether path may be deleted. Only strict
// descendants of the monitored root qualify; the root itself and anything
// outside it never do.
func IsSafeToRemove(path, root string) bool {
	path = filepath.Clean(path)
	root = filepath.Clean(root)

	if root == "/" || root == "." || path == root {
		return false
	}
	return strings.HasPrefix(path, root+"/")
}

// RemoveRecursive deletes a cgroup directory and its descendants,
// children first. Entries that cannot be removed are logged and skipped so
// one busy child does not abort the rest; the final removal of path itself
// is the only hard failure.
//
// Kernel cgroup directories only disappear via rmdir once empty of
// processes, so a cgroup with live members fails here and the caller
// surfaces the error to the user.
func RemoveRecursive(path string, log logger.Logger) error {
	if log == nil {
		log = logger.Noop()
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrRemove,
			"Cannot access "+path, "")
	}
	if !info.IsDir() {
		return errors.New(errors.ErrRemove,
			path+" is not a directory", "")
	}

	removeContents(path, log)

	if err := os.Remove(path); err != nil {
		return errors.WrapWithCode(err, errors.ErrRemove,
			"Failed to remove cgroup "+path,
			"Processes may still be running in it. Kill or migrate them first.")
	}
	log.Info("removed cgroup %s", path)
	return nil
}

func removeContents(dir string, log logger.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("cannot read %s: %v", dir, err)
		return
	}
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			removeContents(child, log)
			if err := os.Remove(child); err != nil {
				log.Warn("cannot remove %s: %v", child, err)
			}
			continue
		}
		// Controller interface files vanish with their directory; a
		// failed unlink here is expected on a real cgroupfs.
		if err := os.Remove(child); err != nil {
			log.Debug("cannot remove file %s: %v", child, err)
		}
	}
}
