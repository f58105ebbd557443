package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/utils"
)

type fileStorage struct {
	config FileConfig
}

type FileConfig struct {
	Directory string
}

// NewFileStorage creates a new file storage backend
func NewFileStorage(ctx context.Context, f FileConfig) (Storage, error) {
	if f.Directory == "" {
		f.Directory = "."
	}

	return &fileStorage{
		config: f,
	}, nil
}

func (a *fileStorage) Put(ctx context.Context, key string, data []byte) (string, error) {
	filePath := filepath.Join(a.config.Directory, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", &types.IOError{Op: "create output directory", Path: filepath.Dir(filePath), Err: err}
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", &types.IOError{Op: "write", Path: filePath, Err: err}
	}

	return filePath, nil
}

func (a *fileStorage) Get(ctx context.Context, key string) ([]byte, error) {
	filePath := filepath.Join(a.config.Directory, filepath.FromSlash(key))

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &types.IOError{Op: "read", Path: filePath, Err: err}
	}

	return data, nil
}

func (a *fileStorage) List(ctx context.Context, prefix string) ([]Object, error) {
	dir := filepath.Join(a.config.Directory, filepath.FromSlash(prefix))

	files, err := utils.ListImages(dir)
	if err != nil {
		return nil, &types.IOError{Op: "list", Path: dir, Err: err}
	}

	objects := make([]Object, 0, len(files))
	for _, f := range files {
		objects = append(objects, Object{
			Key:      JoinKey(prefix, filepath.Base(f.Path)),
			Location: f.Path,
			Size:     f.Size,
			Modified: f.ModTime,
		})
	}
	return objects, nil
}
