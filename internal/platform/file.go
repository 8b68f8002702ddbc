package platform

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// PublishFile makes the complete file src visible at dst without ever
// replacing an existing dst. It fails with an error matching fs.ErrExist if
// dst is already present. src is left in place for the caller to remove.
//
// dst is created as a hard link to src, so it appears with its full
// content in one step. When the filesystem refuses hard links, dst is
// created exclusively and src is copied into it instead.
func PublishFile(src, dst string) error {
	err := os.Link(src, dst)
	if err == nil || errors.Is(err, fs.ErrExist) || !linkUnsupported(err) {
		return err
	}
	return copyExclusive(src, dst)
}

// linkUnsupported reports whether err means the filesystem cannot create
// hard links, as opposed to a failure a copy would also hit.
func linkUnsupported(err error) bool {
	return errors.Is(err, errors.ErrUnsupported) || errors.Is(err, fs.ErrPermission)
}

// copyExclusive copies src to a new file dst. A partially written dst is
// removed.
func copyExclusive(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // src is a temp file created by the caller
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm()) //nolint:gosec // dst is built by the caller
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}
