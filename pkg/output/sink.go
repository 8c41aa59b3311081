package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Sink stores an encoded image under a key
type Sink interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Name() string
}

// FileSink writes images below a local directory
type FileSink struct {
	Dir string
}

// NewFileSink creates a sink rooted at dir
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Name implements Sink
func (s *FileSink) Name() string {
	return "file:" + s.Dir
}

// Put writes data to Dir/key, creating parent directories as needed
func (s *FileSink) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.Dir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Publish stores data in every sink concurrently and returns the first error
func Publish(ctx context.Context, logger core.Logger, sinks []Sink, key string, data []byte, contentType string) error {
	if logger == nil {
		logger = core.NopLogger{}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, sink := range sinks {
		sink := sink
		g.Go(func() error {
			if err := sink.Put(ctx, key, data, contentType); err != nil {
				return fmt.Errorf("%s: %w", sink.Name(), err)
			}
			logger.Printf("Saved %s to %s (%d bytes)\n", key, sink.Name(), len(data))
			return nil
		})
	}
	return g.Wait()
}
