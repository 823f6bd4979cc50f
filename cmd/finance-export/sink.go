package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// fileSink writes artifacts into a directory and reports each written path
type fileSink struct {
	dir string
	out io.Writer
}

// Emit implements exportapp.FileSink
func (s fileSink) Emit(_ context.Context, fileName, _ string, data []byte) error {
	path := filepath.Join(s.dir, filepath.Base(fileName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	_, err := fmt.Fprintf(s.out, "%s (%d bytes)\n", path, len(data))
	return err
}
