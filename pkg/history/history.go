// Package history keeps a bounded window of recent entries in memory,
// optionally mirrored to an append-only file so the window survives
// restarts.
package history

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"codeberg.org/n30w/ante/pkg/utils"
)

// DefaultSeparator delimits entries in a history file.
const DefaultSeparator = "\n____ANTE_ENTRY____"

var (
	ErrInvalidCapacity   = errors.New("capacity must be a non-negative integer")
	ErrEmptySeparator    = errors.New("separator must be at least one character")
	ErrInvalidPath       = errors.New("invalid history file path")
	ErrInvalidLength     = errors.New("max length must be a non-negative integer")
	ErrContainsSeparator = errors.New("entry must not contain the separator")
)

type options struct {
	path      string
	separator string
	logger    *log.Logger
}

// Option configures a Buffer.
type Option func(*options)

// WithFile mirrors every pushed entry to the file at path.
func WithFile(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithSeparator sets the delimiter used in the history file.
func WithSeparator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Buffer is a fixed-capacity window of the most recent entries. When backed
// by a Log, the window is a cache of the log's tail and requests larger than
// the window are read through to the file.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	capacity int

	// entries is nil when capacity is 0.
	entries utils.Queue[string]

	// file is nil when persistence is disabled.
	file *Log

	logger *log.Logger
}

// New makes a Buffer holding up to capacity entries. If a file is configured
// and capacity is positive, the buffer is seeded with the last capacity
// entries found in it.
func New(capacity int, opts ...Option) (*Buffer, error) {
	o := &options{separator: DefaultSeparator}
	for _, opt := range opts {
		opt(o)
	}

	if capacity < 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "got %d", capacity)
	}

	if o.separator == "" {
		return nil, ErrEmptySeparator
	}

	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	b := &Buffer{
		capacity: capacity,
		logger:   o.logger,
	}

	if o.path != "" {
		f, err := NewLog(o.path, o.separator)
		if err != nil {
			return nil, err
		}
		b.file = f
	}

	if capacity == 0 {
		return b, nil
	}

	q, err := utils.NewDynamicFixedQueue[string](capacity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to make history queue")
	}
	b.entries = q

	if b.file != nil {
		seed := b.file.ReadAll()
		if len(seed) > 0 {
			_ = q.Enqueue(seed...)
		}

		b.logger.Debugf(
			"Loaded %d of %d history entries from %s",
			q.Len(),
			len(seed),
			b.file.Path(),
		)
	}

	return b, nil
}

// Push records entry. The push is all-or-nothing: an entry that cannot be
// written to the history file is not kept in memory either.
func (b *Buffer) Push(entry string) error {
	if b.file != nil {
		err := b.file.Append(entry)
		if err != nil {
			return errors.Wrap(err, "failed to push history entry")
		}
	}

	if b.entries != nil {
		err := b.entries.Enqueue(entry)
		if err != nil {
			return errors.Wrap(err, "failed to push history entry")
		}
	}

	return nil
}

// Get returns up to maxLength of the most recent entries, oldest first. When
// more entries are requested than are held in memory and a history file
// exists, they are read from the file.
func (b *Buffer) Get(maxLength int) ([]string, error) {
	if maxLength < 0 {
		return nil, errors.Wrapf(ErrInvalidLength, "got %d", maxLength)
	}

	if maxLength == 0 {
		return []string{}, nil
	}

	if b.file == nil || maxLength <= b.Len() {
		if b.entries == nil {
			return []string{}, nil
		}
		return b.entries.Tail(maxLength), nil
	}

	all := b.file.ReadAll()
	if len(all) > maxLength {
		all = all[len(all)-maxLength:]
	}

	return all, nil
}

// Latest returns the entries currently within capacity.
func (b *Buffer) Latest() []string {
	entries, _ := b.Get(b.capacity)
	return entries
}

// Len returns the number of entries held in memory.
func (b *Buffer) Len() int {
	if b.entries == nil {
		return 0
	}
	return b.entries.Len()
}

func (b *Buffer) Capacity() int {
	return b.capacity
}
