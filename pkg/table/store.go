package table

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// StdioPath names stdin when loading and stdout when writing.
const StdioPath = "-"

// Store loads and writes tables through a filesystem abstraction.
type Store struct {
	Fs     afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
}

// NewStore returns a Store backed by the OS filesystem and process stdio.
func NewStore() *Store {
	return &Store{
		Fs:     afero.NewOsFs(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

// Exists reports whether path names an existing regular file.
func (s *Store) Exists(path string) bool {
	info, err := s.Fs.Stat(path)
	return err == nil && !info.IsDir()
}

// Load reads the table at path. A missing file fails with ErrNotFound, any
// other open or read failure with ErrIO.
func (s *Store) Load(path string) (Table, error) {
	if path == StdioPath {
		return Parse(s.Stdin, "<stdin>")
	}

	f, err := s.Fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Table{}, &Error{Kind: ErrNotFound, Source: path, Msg: "no such file"}
		}
		return Table{}, &Error{Kind: ErrIO, Source: path, Msg: "open failed", Err: err}
	}
	defer f.Close()

	return Parse(f, path)
}

// WriteFile writes t to path. The rows go to a temporary file in the same
// directory which is renamed over path only after every row was written, so a
// failed transform never leaves partial output behind.
func (s *Store) WriteFile(path string, t Table) error {
	if path == StdioPath {
		if err := Write(s.Stdout, t); err != nil {
			return &Error{Kind: ErrIO, Source: "<stdout>", Msg: "write failed", Err: err}
		}
		return nil
	}

	tmp, err := afero.TempFile(s.Fs, filepath.Dir(path), "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return &Error{Kind: ErrIO, Source: path, Msg: "cannot open output", Err: err}
	}
	tmpName := tmp.Name()

	if err := Write(tmp, t); err != nil {
		tmp.Close()
		s.Fs.Remove(tmpName)
		return &Error{Kind: ErrIO, Source: path, Msg: "write failed", Err: err}
	}
	if err := tmp.Close(); err != nil {
		s.Fs.Remove(tmpName)
		return &Error{Kind: ErrIO, Source: path, Msg: "close failed", Err: err}
	}
	if err := s.Fs.Rename(tmpName, path); err != nil {
		s.Fs.Remove(tmpName)
		return &Error{Kind: ErrIO, Source: path, Msg: "rename failed", Err: err}
	}
	return nil
}
