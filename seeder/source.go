package seeder

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
)

// Opener opens a seed source for reading. Failures are reported as *IOError.
type Opener func(ctx context.Context, path string) (io.ReadCloser, error)

// OpenSource opens a local file or a gs://bucket/object URI
func OpenSource(ctx context.Context, path string) (io.ReadCloser, error) {
	if bucket, object, ok := parseGCSURI(path); ok {
		return openGCSObject(ctx, bucket, object, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return f, nil
}

func parseGCSURI(path string) (bucket, object string, ok bool) {
	rest, found := strings.CutPrefix(path, "gs://")
	if !found {
		return "", "", false
	}
	bucket, object, found = strings.Cut(rest, "/")
	if !found || bucket == "" || object == "" {
		return "", "", false
	}
	return bucket, object, true
}

// gcsObjectReader closes the storage client together with the object reader
type gcsObjectReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *gcsObjectReader) Close() error {
	return errors.Join(r.Reader.Close(), r.client.Close())
}

func openGCSObject(ctx context.Context, bucket, object, path string) (io.ReadCloser, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		_ = client.Close()
		return nil, &IOError{Path: path, Err: err}
	}
	return &gcsObjectReader{Reader: r, client: client}, nil
}
