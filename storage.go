// FILE: lixenwraith/pebble/storage.go
package pebble

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// FileSink appends records to {Directory}/{Name} and rotates numbered generations.
// No handle is kept open between writes.
type FileSink struct {
	mu   sync.Mutex
	diag *Diagnostics

	written          atomic.Uint64
	writeFailures    atomic.Uint64
	rotations        atomic.Uint64
	rotationFailures atomic.Uint64
}

// NewFileSink creates a file sink reporting failures to d
func NewFileSink(d *Diagnostics) *FileSink {
	return &FileSink{diag: d}
}

// generationPath returns the path of generation n; 0 is the active file
func generationPath(dir, name string, n int64) string {
	path := filepath.Join(dir, name)
	if n == 0 {
		return path
	}
	return path + "." + strconv.FormatInt(n, 10)
}

// Write appends text and a newline to the active file, rotating first if it has
// reached MaxFileBytes. Failures are reported and the record is dropped.
func (s *FileSink) Write(f Format, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(f.Directory, 0755); err != nil {
		s.writeFailures.Add(1)
		s.diag.Report("failed to create log directory", err, zap.String("directory", f.Directory))
		return fmtErrorf("failed to create log directory '%s': %w", f.Directory, err)
	}

	active := generationPath(f.Directory, f.Name, 0)

	var size int64
	if fi, err := os.Stat(active); err == nil {
		size = fi.Size()
	}

	if f.MaxFileBytes > 0 && size >= f.MaxFileBytes {
		if err := s.rotate(f); err != nil {
			s.rotationFailures.Add(1)
			s.diag.Report("log rotation failed, continuing with active file", err, zap.String("file", active))
		} else {
			s.rotations.Add(1)
		}
	}

	file, err := os.OpenFile(active, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		s.writeFailures.Add(1)
		s.diag.Report("failed to open log file", err, zap.String("file", active))
		return fmtErrorf("failed to open log file '%s': %w", active, err)
	}

	buf := make([]byte, 0, len(text)+1)
	buf = append(buf, text...)
	buf = append(buf, '\n')
	_, writeErr := file.Write(buf)
	closeErr := file.Close()

	if err := combineErrors(writeErr, closeErr); err != nil {
		s.writeFailures.Add(1)
		s.diag.Report("failed to write log file", err, zap.String("file", active))
		return fmtErrorf("failed to write log file '%s': %w", active, err)
	}

	s.written.Add(1)
	return nil
}

// rotate shifts name.{i-1} to name.{i} from the oldest slot down, then moves the
// active file to name.1. Renaming onto the last slot evicts its previous content.
// With a single generation the active file is removed and no history is kept.
func (s *FileSink) rotate(f Format) error {
	active := generationPath(f.Directory, f.Name, 0)

	if f.MaxFileGenerations <= 1 {
		if err := os.Remove(active); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmtErrorf("failed to remove log file '%s': %w", active, err)
		}
		return nil
	}

	for i := f.MaxFileGenerations - 1; i >= 2; i-- {
		src := generationPath(f.Directory, f.Name, i-1)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := generationPath(f.Directory, f.Name, i)
		if err := os.Rename(src, dst); err != nil {
			return fmtErrorf("failed to rename '%s' to '%s': %w", src, dst, err)
		}
	}

	dst := generationPath(f.Directory, f.Name, 1)
	if err := os.Rename(active, dst); err != nil {
		return fmtErrorf("failed to rename '%s' to '%s': %w", active, dst, err)
	}
	return nil
}

// Generations lists the existing files for f, active file first.
// Paths beyond the configured generation count are not reported.
func (s *FileSink) Generations(f Format) []string {
	var paths []string
	for i := int64(0); i < f.MaxFileGenerations; i++ {
		path := generationPath(f.Directory, f.Name, i)
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			paths = append(paths, path)
		}
	}
	return paths
}

// DiskUsage returns the total size in bytes of the existing generations of f
func (s *FileSink) DiskUsage(f Format) int64 {
	var size int64
	for _, path := range s.Generations(f) {
		if fi, err := os.Stat(path); err == nil {
			size += fi.Size()
		}
	}
	return size
}
