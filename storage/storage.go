// Package storage writes captured images to a local directory or an S3
// bucket.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/allscreenshots/allscreenshots-cli/types"
)

type Storage interface {
	// Put stores data with the given key and returns where it was written
	Put(ctx context.Context, key string, data []byte) (string, error)
	// Get retrieves the data stored under key
	Get(ctx context.Context, key string) ([]byte, error)
	// List returns the images directly under prefix, newest first
	List(ctx context.Context, prefix string) ([]Object, error)
}

// Object is one stored image.
type Object struct {
	Key      string
	Location string
	Size     int64
	Modified time.Time
}

func sortNewestFirst(objects []Object) {
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].Modified.After(objects[j].Modified)
	})
}

const s3Scheme = "s3://"

func IsS3(target string) bool {
	return strings.HasPrefix(target, s3Scheme)
}

// ParseS3 splits s3://bucket/some/key into bucket and key.
func ParseS3(target string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(target, s3Scheme)
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("invalid S3 location %q: missing bucket", target)
	}
	return bucket, key, nil
}

// ForDirectory returns a backend rooted at dir, which may be a local
// path or an s3://bucket/prefix location, and the key prefix to use.
func ForDirectory(ctx context.Context, dir string) (Storage, string, error) {
	if IsS3(dir) {
		bucket, prefix, err := ParseS3(dir)
		if err != nil {
			return nil, "", err
		}
		s, err := NewS3Storage(ctx, S3Config{Bucket: bucket})
		if err != nil {
			return nil, "", err
		}
		return s, strings.Trim(prefix, "/"), nil
	}

	s, err := NewFileStorage(ctx, FileConfig{Directory: dir})
	if err != nil {
		return nil, "", err
	}
	return s, "", nil
}

// ForFile returns a backend and key for a single output path.
func ForFile(ctx context.Context, path string) (Storage, string, error) {
	if IsS3(path) {
		bucket, key, err := ParseS3(path)
		if err != nil {
			return nil, "", err
		}
		if key == "" || strings.HasSuffix(key, "/") {
			return nil, "", fmt.Errorf("invalid S3 location %q: missing object key", path)
		}
		s, err := NewS3Storage(ctx, S3Config{Bucket: bucket})
		if err != nil {
			return nil, "", err
		}
		return s, key, nil
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return nil, "", types.InvalidOption("output", "%q is a directory, give a file name", path)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, "", types.InvalidOption("output", "%q is a directory, give a file name", path)
	}

	s, err := NewFileStorage(ctx, FileConfig{Directory: filepath.Dir(path)})
	if err != nil {
		return nil, "", err
	}
	return s, filepath.Base(path), nil
}

// JoinKey joins a key prefix and a file name.
func JoinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
