package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/stevegmedia/voxceleris/internal/common"
	"github.com/stevegmedia/voxceleris/internal/filex"
)

// LocalStorage keeps photos on the local filesystem under a base directory,
// mirroring the original flat-file deployment. Returned URLs are paths
// relative to the server root.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	dir, err := filex.EnsureDir(baseDir)
	if err != nil {
		return nil, err
	}
	return &LocalStorage{baseDir: dir}, nil
}

func (s *LocalStorage) Save(ctx context.Context, origName string, r io.Reader) (string, error) {
	key := RandomObjectKey(origName)

	target := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if _, err := filex.EnsureDir(filepath.Dir(target)); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorUploadFailed, err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorUploadFailed, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorUploadFailed, err)
	}

	return "/" + filepath.ToSlash(filepath.Join(filepath.Base(s.baseDir), key)), nil
}
