// Package logging archives decoded messages to daily files. The previous
// day's file is gzip compressed when the date changes.
package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// DefaultPrefix names archive files sgb_YYYY-MM-DD.log.
const DefaultPrefix = "sgb"

// Rotator is an io.Writer that appends to one file per day. It is safe for
// concurrent use.
type Rotator struct {
	dir    string
	prefix string
	useUTC bool
	logger *logrus.Logger
	now    func() time.Time

	mu          sync.Mutex
	currentFile *os.File
	currentDate string
	closed      bool

	compressing sync.WaitGroup
}

// Option configures a Rotator.
type Option func(*Rotator)

// WithPrefix sets the archive file name prefix.
func WithPrefix(prefix string) Option {
	return func(r *Rotator) { r.prefix = prefix }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Rotator) { r.now = now }
}

// NewRotator creates dir if needed and opens today's file.
func NewRotator(dir string, useUTC bool, logger *logrus.Logger, opts ...Option) (*Rotator, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	r := &Rotator{
		dir:    dir,
		prefix: DefaultPrefix,
		useUTC: useUTC,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.rotate(r.date()); err != nil {
		return nil, fmt.Errorf("failed to open archive file: %w", err)
	}
	return r, nil
}

// Write appends p to the file for the current date, rotating first if the
// date has changed since the last write. If the file could not be opened,
// the next Write tries again.
func (r *Rotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, fmt.Errorf("archive is closed")
	}
	if date := r.date(); r.currentFile == nil || date != r.currentDate {
		if r.currentFile != nil {
			r.logger.WithFields(logrus.Fields{
				"old_date": r.currentDate,
				"new_date": date,
			}).Info("Rotating archive file")
		}
		if err := r.rotate(date); err != nil {
			return 0, err
		}
	}
	return r.currentFile.Write(p)
}

// Close closes the current file and waits for pending compression.
func (r *Rotator) Close() error {
	r.mu.Lock()
	r.closed = true
	var err error
	if r.currentFile != nil {
		err = r.currentFile.Close()
		r.currentFile = nil
	}
	r.mu.Unlock()

	r.compressing.Wait()
	if err != nil {
		r.logger.WithError(err).Error("Failed to close archive file")
	}
	return err
}

// CurrentFile returns the path being written, or "" when no file is open.
func (r *Rotator) CurrentFile() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.currentFile == nil {
		return ""
	}
	return r.path(r.currentDate, "")
}

// Files lists archive files, plain and compressed, in name order.
func (r *Rotator) Files() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(r.dir, r.prefix+"_*.log*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list archive files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Cleanup removes archive files not modified within maxDays, except the
// file currently being written.
func (r *Rotator) Cleanup(maxDays int) (int, error) {
	if maxDays <= 0 {
		return 0, fmt.Errorf("maxDays must be positive")
	}
	files, err := r.Files()
	if err != nil {
		return 0, err
	}

	cutoff := r.now().AddDate(0, 0, -maxDays)
	current := r.CurrentFile()
	removed := 0
	for _, file := range files {
		if file == current {
			continue
		}
		info, err := os.Stat(file)
		if err != nil {
			r.logger.WithError(err).WithField("file", file).Warn("Failed to stat archive file")
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(file); err != nil {
			r.logger.WithError(err).WithField("file", file).Error("Failed to remove old archive file")
			continue
		}
		removed++
	}

	r.logger.WithField("count", removed).Info("Cleaned up old archive files")
	return removed, nil
}

func (r *Rotator) date() string {
	now := r.now()
	if r.useUTC {
		now = now.UTC()
	}
	return now.Format(dateLayout)
}

func (r *Rotator) path(date, suffix string) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s_%s.log%s", r.prefix, date, suffix))
}

// rotate switches to the file for date. The caller holds r.mu. On failure
// currentFile is left nil.
func (r *Rotator) rotate(date string) error {
	if r.currentFile != nil {
		if err := r.currentFile.Close(); err != nil {
			r.logger.WithError(err).Error("Failed to close old archive file")
		}
		r.currentFile = nil
		if old := r.currentDate; old != date {
			r.compressing.Add(1)
			go func() {
				defer r.compressing.Done()
				r.compress(old)
			}()
		}
	}

	name := r.path(date, "")
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create archive file %s: %w", name, err)
	}
	r.currentFile = file
	r.currentDate = date

	r.logger.WithField("file", name).Debug("Opened archive file")
	return nil
}

// compress gzips the file for date and removes the original.
func (r *Rotator) compress(date string) {
	src := r.path(date, "")
	dst := r.path(date, ".gz")
	log := r.logger.WithFields(logrus.Fields{"source": src, "target": dst})

	if err := gzipFile(src, dst); err != nil {
		log.WithError(err).Error("Failed to compress archive file")
		return
	}
	if err := os.Remove(src); err != nil {
		log.WithError(err).Error("Failed to remove original archive file")
		return
	}
	log.Info("Archive file compressed")
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	gz.Name = filepath.Base(src)
	gz.ModTime = time.Now()
	if _, err := io.Copy(gz, in); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return out.Close()
}
