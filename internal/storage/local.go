package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrInvalidPath = errors.New("invalid storage path")

// LocalStorage writes files below a root directory and serves them under baseURL
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	err := os.MkdirAll(root, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Root is the directory files are written to
func (s *LocalStorage) Root() string {
	return s.root
}

// resolve maps a storage path to a file inside root, rejecting traversal
func (s *LocalStorage) resolve(p string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(p))
	if clean == "/" {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *LocalStorage) Save(p string, file io.Reader) (err error) {
	full, err := s.resolve(p)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(full), 0755)
	if err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	_, err = io.Copy(tmp, file)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	err = os.Rename(tmp.Name(), full)
	if err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return os.Chmod(full, 0644)
}

// Delete is a no-op for files that are already gone
func (s *LocalStorage) Delete(p string) error {
	full, err := s.resolve(p)
	if err != nil {
		return err
	}

	err = os.Remove(full)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) URL(p string) string {
	return s.baseURL + path.Clean("/"+filepath.ToSlash(p))
}

// Handler serves stored files; mount it under the base URL
func (s *LocalStorage) Handler() http.Handler {
	return http.StripPrefix(s.baseURL, http.FileServer(noDirFS{http.Dir(s.root)}))
}

// noDirFS hides directory listings
type noDirFS struct {
	fs http.FileSystem
}

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if stat.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
