package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5/plumbing/filemode"
)

// errNotAFile is returned for paths that exist but can't be stored as a blob.
var errNotAFile = errors.New("not a regular file or symlink")

// workingFile is the on-disk state of a path.
type workingFile struct {
	content []byte
	mode    filemode.FileMode
}

func absPath(root, path string) string {
	return filepath.Join(root, filepath.FromSlash(path))
}

// readWorkingFile returns nil, nil when path does not exist.
func readWorkingFile(root, path string) (*workingFile, error) {
	abs := absPath(root, path)
	info, err := os.Lstat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		target, err := os.Readlink(abs)
		if err != nil {
			return nil, err
		}
		return &workingFile{content: []byte(target), mode: filemode.Symlink}, nil
	case info.Mode().IsRegular():
		content, err := os.ReadFile(abs)
		if err != nil {
			return nil, err
		}
		mode := filemode.Regular
		if info.Mode().Perm()&0o111 != 0 {
			mode = filemode.Executable
		}
		return &workingFile{content: content, mode: mode}, nil
	default:
		return nil, fmt.Errorf("%s: %w", path, errNotAFile)
	}
}

// writeWorkingFile replaces path with content, creating parent directories.
func writeWorkingFile(root, path string, content []byte, mode filemode.FileMode) error {
	abs := absPath(root, path)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return err
	}

	if info, err := os.Lstat(abs); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		if err := os.Remove(abs); err != nil {
			return err
		}
	}

	if mode == filemode.Symlink {
		return os.Symlink(string(content), abs)
	}
	perm := os.FileMode(0o644)
	if mode == filemode.Executable {
		perm = 0o755
	}
	if err := os.WriteFile(abs, content, perm); err != nil {
		return err
	}
	// the umask may have dropped bits
	return os.Chmod(abs, perm)
}

// removeWorkingFile deletes path and any parent directories it leaves empty.
func removeWorkingFile(root, path string) error {
	abs := absPath(root, path)
	if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	for dir := filepath.Dir(abs); dir != root && len(dir) > len(root); dir = filepath.Dir(dir) {
		if err := os.Remove(dir); err != nil {
			break
		}
	}
	return nil
}
