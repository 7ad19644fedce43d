// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteOutput writes data to path, or to stdout when path is "" or "-".
// Files are created with 0600 permissions. A path that is a symlink is
// refused, as is a path equal to one of the inputs.
func WriteOutput(stdout io.Writer, path string, data []byte, inputs ...string) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}

	cleaned := filepath.Clean(path)
	absOut, err := filepath.Abs(cleaned)
	if err != nil {
		return fmt.Errorf("cliutil: invalid output path: %w", err)
	}
	for _, in := range inputs {
		absIn, err := filepath.Abs(in)
		if err != nil {
			continue
		}
		if absIn == absOut {
			return fmt.Errorf("cliutil: output file %s would overwrite input file %s", path, in)
		}
	}

	info, err := os.Lstat(cleaned)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink != 0:
		return fmt.Errorf("cliutil: refusing to write to symlink: %s", cleaned)
	case err != nil && !os.IsNotExist(err):
		return fmt.Errorf("cliutil: checking output path: %w", err)
	}

	if err := os.WriteFile(cleaned, data, 0600); err != nil {
		return fmt.Errorf("cliutil: writing output file: %w", err)
	}
	return nil
}
