// Package audit maintains the append-only access trail of a store.
// Records are never rewritten once appended.
package audit

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Actions recorded by the store.
const (
	ActionSaved   = "SAVED"
	ActionLoaded  = "LOADED"
	ActionDeleted = "DELETED"
)

// Record is one audit trail entry.
type Record struct {
	Timestamp time.Time
	Action    string
	Subject   string
}

// String renders the on-disk line format: [<ISO8601>] <ACTION> <subject>.
func (r Record) String() string {
	return fmt.Sprintf("[%s] %s %s", r.Timestamp.Format(time.RFC3339), r.Action, r.Subject)
}

// Log appends and filters audit records.
type Log interface {
	// Append writes one record. Appended records are immutable.
	Append(r Record) error

	// Filter returns every recorded line containing term, oldest first.
	Filter(term string) ([]string, error)
}

// NewFileLog returns a Log backed by a single line-oriented file on fs.
func NewFileLog(fs afero.Fs, path string) Log {
	return &fileLog{fs: fs, path: path}
}

type fileLog struct {
	fs   afero.Fs
	path string
}

func (l *fileLog) Append(r Record) (err error) {
	f, err := l.fs.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = fmt.Fprintln(f, r.String())
	return err
}

func (l *fileLog) Filter(term string) ([]string, error) {
	f, err := l.fs.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); strings.Contains(line, term) {
			out = append(out, line)
		}
	}
	return out, scanner.Err()
}
