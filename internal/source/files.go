package source

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var skipDirs = map[string]bool{".git": true, ".hg": true, ".svn": true}

// Extensions is a set of qualifying file extensions, including the dot.
type Extensions []string

// DefaultExtensions selects C sources.
var DefaultExtensions = Extensions{".c"}

// Match reports whether path has one of the extensions. The comparison is
// case-sensitive, so "x.C" does not qualify for ".c".
func (e Extensions) Match(path string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	for _, want := range e {
		if ext == want {
			return true
		}
	}
	return false
}

// ListFiles returns every regular file under root whose extension qualifies,
// in lexical walk order. Symlinks to regular files are included; symlinked
// directories are not descended into. VCS metadata directories are skipped.
func ListFiles(root string, exts Extensions) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !exts.Match(p) {
			return nil
		}
		if d.Type().IsRegular() || (d.Type()&fs.ModeSymlink != 0 && IsFile(p)) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source: list %s: %w", root, err)
	}
	return files, nil
}

// ReadBytes reads at most limit bytes from the start of path.
func ReadBytes(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit))
}

// ReadText reads a bounded prefix of path and decodes it as UTF-8, dropping
// invalid byte sequences.
func ReadText(path string, limit int64) (string, error) {
	b, err := ReadBytes(path, limit)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(b), ""), nil
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// CopyFile copies src to dst, creating dst's parent directories and keeping
// the source's permission bits and modification time.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("source: open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("source: stat %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("source: create %s: %w", filepath.Dir(dst), err)
	}
	// dst may be a read-only copy from an earlier file of the same entry.
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("source: replace %s: %w", dst, err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("source: create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("source: copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("source: close %s: %w", dst, err)
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
