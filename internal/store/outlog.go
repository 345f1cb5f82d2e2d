package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// DateLayout formats the header line that opens each run's section.
const DateLayout = "2006-01-02 15:04:05"

// OutputLog is the append-only record of entry-level postings. It is held
// open and locked for one classification pass.
type OutputLog struct {
	path string
	f    *os.File
	lock *flock.Flock
}

// OpenLog locks and opens path for appending and writes the run header.
// Earlier runs are separated from this one by a blank line.
func OpenLog(ctx context.Context, path string, started time.Time) (*OutputLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	fl, err := acquire(ctx, path)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		_ = fl.Unlock()
		return nil, err
	}
	l := &OutputLog{path: path, f: f, lock: fl}

	st, err := f.Stat()
	if err != nil {
		_ = l.Close()
		return nil, err
	}
	header := fmt.Sprintf("Date: %s\n", started.Format(DateLayout))
	if st.Size() > 0 {
		header = "\n" + header
	}
	if _, err := f.WriteString(header); err != nil {
		_ = l.Close()
		return nil, err
	}
	return l, nil
}

func (l *OutputLog) Path() string { return l.path }

// Append records one locator. The write goes straight to the file.
func (l *OutputLog) Append(url string) error {
	_, err := l.f.WriteString(url + "\n")
	return err
}

// Sync flushes the file to stable storage.
func (l *OutputLog) Sync() error {
	return l.f.Sync()
}

// Close syncs, closes and unlocks. It is safe to call more than once.
func (l *OutputLog) Close() error {
	if l == nil || l.f == nil {
		return nil
	}
	syncErr := l.f.Sync()
	closeErr := l.f.Close()
	l.f = nil
	_ = l.lock.Unlock()
	if closeErr != nil {
		return closeErr
	}
	return syncErr
}
