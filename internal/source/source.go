package source

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/shenwei356/xopen"

	"assemblystats/internal/config"
	apperrors "assemblystats/internal/errors"
)

// S3Scheme prefixes object-store locations.
const S3Scheme = "s3://"

// Options configures remote access.
type Options struct {
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool

	// HTTPClient overrides the S3 client's transport. Nil uses the SDK default.
	HTTPClient aws.HTTPClient
	// Credentials overrides the default AWS credential chain.
	Credentials aws.CredentialsProvider
}

// OptionsFromConfig maps the source section of the configuration.
func OptionsFromConfig(cfg config.SourceConfig) Options {
	return Options{
		S3Region:    cfg.S3Region,
		S3Endpoint:  cfg.S3Endpoint,
		S3PathStyle: cfg.S3PathStyle,
	}
}

// Open returns a reader over the decompressed contents of location.
// The caller must close it.
func Open(ctx context.Context, location string, opts Options) (*Reader, error) {
	if strings.TrimSpace(location) == "" {
		return nil, apperrors.NewTransportError("no input location given", nil)
	}

	var (
		rc  io.ReadCloser
		err error
	)
	if strings.HasPrefix(location, S3Scheme) {
		rc, err = openS3(ctx, location, opts)
	} else {
		rc, err = openLocal(location)
	}
	if err != nil {
		return nil, apperrors.NewTransportError("failed to open assembly summary", err).
			WithContext("location", location)
	}

	return &Reader{rc: rc, location: location}, nil
}

// IsLocalPath reports whether location names a file on the local
// filesystem rather than stdin, an http(s) URL or an S3 object.
func IsLocalPath(location string) bool {
	if location == "-" || strings.HasPrefix(location, S3Scheme) {
		return false
	}
	lower := strings.ToLower(location)
	return !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") &&
		!strings.HasPrefix(lower, "ftp://")
}

// openLocal covers files, stdin and http(s) URLs.
func openLocal(location string) (io.ReadCloser, error) {
	r, err := xopen.Ropen(location)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Reader counts the decompressed bytes it hands out.
type Reader struct {
	rc       io.ReadCloser
	location string
	n        atomic.Int64
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	r.n.Add(int64(n))
	return n, err
}

// Close releases the underlying stream.
func (r *Reader) Close() error {
	if err := r.rc.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", r.location, err)
	}
	return nil
}

// BytesRead returns the number of decompressed bytes read so far.
func (r *Reader) BytesRead() int64 {
	return r.n.Load()
}

// Location returns the location the reader was opened from.
func (r *Reader) Location() string {
	return r.location
}
