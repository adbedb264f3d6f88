// Package fsys provides the os-backed filesystem the organizer works
// against.
package fsys

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// FS lists, moves and prunes files for the organizer. Recursive controls
// whether source roots are walked fully or only their top level is read.
type FS struct {
	Recursive bool
}

// ListDirs returns the immediate subdirectory names of root.
func (f *FS) ListDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

// ListFiles returns the root-relative paths of the regular files under
// root. The whole tree is walked when Recursive is set, otherwise only
// the top level is read.
func (f *FS) ListFiles(root string) ([]string, error) {
	if !f.Recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		var files []string
		for _, e := range entries {
			if !e.IsDir() {
				files = append(files, e.Name())
			}
		}
		return files, nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Move relocates source into targetDir, keeping its base name. An
// existing file of the same name is never overwritten. A plain rename is
// tried first; cross-device moves fall back to copy and remove.
func (f *FS) Move(source, targetDir string) error {
	target := filepath.Join(targetDir, filepath.Base(source))
	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("%q already exists", target)
	}
	err := os.Rename(source, target)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	return copyAndRemove(source, target)
}

func copyAndRemove(source, target string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(target)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(target)
		return err
	}
	return os.Remove(source)
}

// RemoveIfEmpty deletes dir only when it contains no entries.
func (f *FS) RemoveIfEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("%q is not empty", dir)
	}
	return os.Remove(dir)
}
