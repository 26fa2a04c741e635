package history

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Log is an append-only text file of entries, each written after a
// separator. Content before the first separator is not part of the log.
type Log struct {
	path      string
	separator string
}

// NewLog returns a Log stored at path. Nothing is created on disk until the
// first Append.
func NewLog(path, separator string) (*Log, error) {
	if separator == "" {
		return nil, ErrEmptySeparator
	}

	if err := validatePath(path); err != nil {
		return nil, err
	}

	return &Log{path: path, separator: separator}, nil
}

func validatePath(path string) error {
	if strings.TrimSpace(path) == "" || strings.ContainsRune(path, 0) {
		return errors.Wrapf(ErrInvalidPath, "%q", path)
	}

	return nil
}

// Path returns the location of the log file.
func (l *Log) Path() string {
	return l.path
}

// Append writes the separator followed by entry to the end of the file,
// creating the file and any missing parent directories.
func (l *Log) Append(entry string) error {
	if strings.Contains(entry, l.separator) {
		return ErrContainsSeparator
	}

	err := os.MkdirAll(filepath.Dir(l.path), 0o755)
	if err != nil {
		return errors.Wrap(err, "failed to create history directory")
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to open history file")
	}

	_, err = f.WriteString(l.separator + entry)
	if err != nil {
		_ = f.Close()
		return errors.Wrap(err, "failed to append to history file")
	}

	return errors.Wrap(f.Close(), "failed to close history file")
}

// ReadAll replays every entry in the file, earliest first. A missing or
// unreadable file reads as empty.
func (l *Log) ReadAll() []string {
	b, err := os.ReadFile(l.path)
	if err != nil {
		return []string{}
	}

	entries := strings.Split(string(b), l.separator)

	return entries[1:]
}
