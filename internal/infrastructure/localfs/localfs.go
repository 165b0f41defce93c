package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"storage-api/internal/application/ports"
)

type Store struct {
	logger *zap.Logger
	fs     afero.Fs
}

// New roots a blob store at dir on the local disk.
func New(logger *zap.Logger, dir string) (ports.BlobStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("localfs: create %s: %w", dir, err)
	}

	logger.Info("local blob store ready", zap.String("dir", dir))

	return NewWithFs(logger, afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

func NewWithFs(logger *zap.Logger, fs afero.Fs) *Store {
	return &Store{logger: logger, fs: fs}
}

// Put writes to a temporary name first so a failed write never leaves a
// partial object under key.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, size int64, _ string) (ports.Blob, error) {
	name := filepath.FromSlash(key)
	if err := s.fs.MkdirAll(filepath.Dir(name), 0o750); err != nil {
		return ports.Blob{}, fmt.Errorf("localfs put %s: %w", key, err)
	}

	tmp := name + ".part"
	f, err := s.fs.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return ports.Blob{}, fmt.Errorf("localfs put %s: %w", key, err)
	}

	n, err := io.Copy(f, &ctxReader{ctx: ctx, r: r})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && size >= 0 && n != size {
		err = fmt.Errorf("short write: got %d of %d bytes", n, size)
	}
	if err != nil {
		_ = s.fs.Remove(tmp)
		return ports.Blob{}, fmt.Errorf("localfs put %s: %w", key, err)
	}

	if err = s.fs.Rename(tmp, name); err != nil {
		_ = s.fs.Remove(tmp)
		return ports.Blob{}, fmt.Errorf("localfs put %s: %w", key, err)
	}

	return ports.Blob{Locator: key, Size: n}, nil
}

func (s *Store) Open(_ context.Context, locator string) (io.ReadCloser, error) {
	f, err := s.fs.Open(filepath.FromSlash(locator))
	if err != nil {
		return nil, fmt.Errorf("localfs open %s: %w", locator, err)
	}

	return f, nil
}

// Delete treats a missing object as already deleted.
func (s *Store) Delete(_ context.Context, locator string) error {
	err := s.fs.Remove(filepath.FromSlash(locator))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("localfs delete %s: %w", locator, err)
	}

	return nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
