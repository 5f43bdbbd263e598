package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalService stores uploads on the local filesystem under a fixed root
// directory, served by the HTTP layer at /uploads. This is the default
// storage backend.
type LocalService struct {
	root string
}

func NewLocalService(root string) (*LocalService, error) {
	if root == "" {
		return nil, fmt.Errorf("upload root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalService{root: filepath.Clean(root)}, nil
}

func (s *LocalService) Save(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	target, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create upload subdir: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	_, copyErr := io.Copy(f, body)
	closeErr := f.Close()
	if copyErr != nil {
		return "", fmt.Errorf("write upload %s: %w", key, copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("close upload %s: %w", key, closeErr)
	}

	return path.Join("/uploads", filepath.ToSlash(key)), nil
}

func (s *LocalService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	target, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", key, err)
	}
	return f, nil
}

func (s *LocalService) Delete(ctx context.Context, key string) error {
	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload %s: %w", key, err)
	}
	return nil
}

// Root returns the directory served at /uploads.
func (s *LocalService) Root() string {
	return s.root
}

func (s *LocalService) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("upload key is required")
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid upload key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}
