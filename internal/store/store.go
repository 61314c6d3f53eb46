// Package store persists contacts to a flat semicolon-delimited text file.
//
// Each record is "fullName;phoneNumber;email". A save appends the whole
// contact set as one batch: records joined by the platform line separator,
// no terminator after the last one, and a leading "\n" when the file
// already had content. The file is never rewritten or deduplicated.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/smileynet/contacts/internal/contact"
)

// batchSeparator precedes a batch appended to a non-empty file.
const batchSeparator = "\n"

// lineSeparator terminates each record inside a batch.
var lineSeparator = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// FileStore appends contact batches to, and loads them from, a single file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the logger for diagnostics. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewFileStore creates a FileStore for path. The file is not touched until
// Append or Load is called.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:   path,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file path this store writes to.
func (s *FileStore) Path() string {
	return s.path
}

// Append writes contacts to the end of the file, creating it if needed.
// The file is opened and closed within the call.
func (s *FileStore) Append(contacts []contact.Contact) (err error) {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("store: opening %s: %w", s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("store: closing %s: %w", s.path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if !s.isEmpty() {
		if _, err := w.WriteString(batchSeparator); err != nil {
			return fmt.Errorf("store: writing %s: %w", s.path, err)
		}
	}
	if _, err := w.WriteString(encodeBatch(contacts)); err != nil {
		return fmt.Errorf("store: writing %s: %w", s.path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("store: flushing %s: %w", s.path, err)
	}

	s.logger.Debug("contacts appended", "path", s.path, "count", len(contacts))
	return nil
}

// encodeBatch renders contacts one per line and trims the surrounding
// whitespace of the whole block, which drops the final line separator.
func encodeBatch(contacts []contact.Contact) string {
	var b strings.Builder
	for _, c := range contacts {
		b.WriteString(contact.Format(c))
		b.WriteString(lineSeparator)
	}
	return strings.TrimSpace(b.String())
}

// isEmpty reports whether the file has no content. Read errors are logged
// and reported as "not empty", unlike Append which returns its errors.
func (s *FileStore) isEmpty() bool {
	f, err := os.Open(s.path)
	if err != nil {
		s.logger.Warn("checking whether contacts file is empty", "path", s.path, "error", err)
		return false
	}
	defer func() { _ = f.Close() }()

	if _, err := bufio.NewReader(f).ReadByte(); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		s.logger.Warn("checking whether contacts file is empty", "path", s.path, "error", err)
	}
	return false
}

// LineError reports a malformed record while loading.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("store: line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// Load reads every record in the file. Blank lines between batches are
// skipped and both "\n" and "\r\n" terminators are accepted. A missing file
// yields no contacts and no error. Records are returned in file order,
// including duplicates across batches.
func (s *FileStore) Load() ([]contact.Contact, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: reading %s: %w", s.path, err)
	}

	var contacts []contact.Contact
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := contact.Parse(line)
		if err != nil {
			return nil, &LineError{Line: i + 1, Err: err}
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}
