package assets

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"asset-verifier/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
)

// Source reads export artifacts and native manifests.
type Source interface {
	// Name returns the source kind (local, bucket).
	Name() string
	// Location identifies what the source reads from, for cache keys and reports.
	Location() string
	// Resolve joins p onto root unless p is already absolute.
	Resolve(root, p string) string
	// Join joins path elements with the source's separator.
	Join(elem ...string) string
	// Exists reports whether name exists.
	Exists(ctx context.Context, name string) (bool, error)
	// ReadFile returns the full content of name.
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// LocalSource reads from a filesystem.
type LocalSource struct {
	fs afero.Fs
}

// NewLocalSource returns a source over fs. A nil fs means the OS filesystem.
func NewLocalSource(fs afero.Fs) *LocalSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &LocalSource{fs: fs}
}

func (s *LocalSource) Name() string { return SourceLocal }

func (s *LocalSource) Location() string { return s.fs.Name() }

func (s *LocalSource) Resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	if root == "" {
		root = "."
	}
	if abs, err := filepath.Abs(filepath.Join(root, p)); err == nil {
		return abs
	}
	return filepath.Join(root, p)
}

func (s *LocalSource) Join(elem ...string) string { return filepath.Join(elem...) }

func (s *LocalSource) Exists(ctx context.Context, name string) (bool, error) {
	return afero.Exists(s.fs, name)
}

func (s *LocalSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	return afero.ReadFile(s.fs, name)
}

// BucketSource reads from an object storage bucket.
// Paths are object keys; the project root acts as a key prefix.
type BucketSource struct {
	client storage.Client
	bucket string
}

// NewBucketSource returns a source over the given bucket.
func NewBucketSource(client storage.Client, bucket string) *BucketSource {
	return &BucketSource{client: client, bucket: bucket}
}

func (s *BucketSource) Name() string { return SourceBucket }

func (s *BucketSource) Location() string { return "s3://" + s.bucket }

func (s *BucketSource) Resolve(root, p string) string {
	if strings.HasPrefix(p, "/") {
		return objectKey(p)
	}
	return objectKey(path.Join(root, p))
}

func (s *BucketSource) Join(elem ...string) string { return objectKey(path.Join(elem...)) }

func (s *BucketSource) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, objectKey(name), minio.StatObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s in bucket %s: %w", name, s.bucket, err)
	}
	return true, nil
}

func (s *BucketSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectKey(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

// objectKey cleans a path into a bucket object key.
func objectKey(p string) string {
	key := strings.TrimPrefix(path.Clean("/"+p), "/")
	return key
}
