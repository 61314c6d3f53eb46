// Package shell implements the interactive contact-book command loop.
//
// The loop reads one command per line, dispatches it, prints the result and
// repeats until EXIT or end of input. Every failure inside the loop is
// reported to the user and the loop continues.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/smileynet/contacts/internal/book"
	"github.com/smileynet/contacts/internal/contact"
)

// Commands accepted by the loop. Matching is exact and case-sensitive.
const (
	CmdList   = "LIST"
	CmdAdd    = "ADD"
	CmdDelete = "DELETE"
	CmdSave   = "SAVE"
	CmdHelp   = "HELP"
	CmdExit   = "EXIT"
)

// Messages printed by the loop.
const (
	msgCommandPrompt  = "Enter the command: LIST, ADD, DELETE, SAVE or EXIT"
	msgAddPrompt      = `Enter contact in format - "Ivanov Ivan Ivanovich;+890999999;someEmail@example.example"`
	msgAdded          = "New contact saved to list"
	msgIncorrectInput = "Incorrect input data"
	msgDeletePrompt   = "Enter email to delete contact"
	msgRemoved        = "Contact removed successfully"
	msgNotFound       = "Contact not found"
	msgSavePrompt     = "Are you sure to save contacts to file? (Y/N)"
	msgSaved          = "Contacts successfully saved to file"
	msgSaveFailed     = "Unexpected failure: "
	msgUnknown        = `UNKNOWN COMMAND, enter "HELP"`
	msgHelp           = `List of commands:
LIST - list of contacts
ADD - add contact to list
DELETE - delete contact
SAVE - write contacts to file
EXIT - exit the program
`
)

// ErrInput wraps failures reading commands from the input stream.
var ErrInput = errors.New("shell: reading input")

// saveConfirmation is the only answer that lets SAVE proceed.
const saveConfirmation = "Y"

// Saver persists a snapshot of the contact set.
type Saver interface {
	Append(contacts []contact.Contact) error
}

// Shell is the command loop. It owns the contact set for one run and is not
// safe for concurrent use.
type Shell struct {
	in     *bufio.Reader
	out    io.Writer
	book   *book.Book
	saver  Saver
	styles styles
	logger *slog.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithBook makes the shell operate on b instead of a fresh empty book.
func WithBook(b *book.Book) Option {
	return func(s *Shell) {
		if b != nil {
			s.book = b
		}
	}
}

// WithStyles enables terminal colors for prompts and status messages.
func WithStyles(enabled bool) Option {
	return func(s *Shell) {
		if enabled {
			s.styles = terminalStyles()
		} else {
			s.styles = plainStyles()
		}
	}
}

// WithLogger sets the logger for diagnostics. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Shell reading commands from in and printing to out.
// SAVE hands the whole contact set to saver.
func New(in io.Reader, out io.Writer, saver Saver, opts ...Option) *Shell {
	s := &Shell{
		in:     bufio.NewReader(in),
		out:    out,
		book:   book.New(),
		saver:  saver,
		styles: plainStyles(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book returns the contact set the shell operates on.
func (s *Shell) Book() *book.Book {
	return s.book
}

// Run loops until EXIT, end of input, or ctx is cancelled. EXIT and end of
// input return nil; cancellation returns ctx.Err(); a read failure is
// returned wrapped.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.println("")
		s.println(s.styles.prompt(msgCommandPrompt))

		cmd, err := s.readLine()
		if err != nil {
			return s.endOfInput(err)
		}
		s.logger.Debug("command received", "command", cmd)

		switch cmd {
		case CmdList:
			s.list()
		case CmdAdd:
			err = s.add()
		case CmdDelete:
			err = s.delete()
		case CmdSave:
			err = s.save()
		case CmdHelp:
			s.help()
		case CmdExit:
			return nil
		default:
			s.println(s.styles.failure(msgUnknown))
		}
		if err != nil {
			return s.endOfInput(err)
		}
	}
}

// endOfInput turns io.EOF into a clean stop and wraps anything else.
func (s *Shell) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		s.logger.Debug("input closed, leaving command loop")
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInput, err)
}

// readLine returns the next input line without its terminator. Lines have
// no length limit. A final line without a terminator is still returned;
// io.EOF is returned only once input is exhausted.
func (s *Shell) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (s *Shell) println(line string) {
	_, _ = fmt.Fprintln(s.out, line)
}

// list prints every contact as fullName|phoneNumber|email in set order.
func (s *Shell) list() {
	for _, c := range s.book.List() {
		_, _ = fmt.Fprintf(s.out, "%s|%s|%s\n", c.FullName, c.PhoneNumber, c.Email)
	}
}

// add reads one contact line and inserts it if every field is valid.
// Duplicates are absorbed by the set and still confirmed.
func (s *Shell) add() error {
	s.println(s.styles.prompt(msgAddPrompt))
	line, err := s.readLine()
	if err != nil {
		return err
	}

	c, err := contact.Parse(line)
	if err != nil {
		s.logger.Debug("rejected contact", "error", err)
		s.println(s.styles.failure(msgIncorrectInput))
		return nil
	}

	if !s.book.Add(c) {
		s.logger.Debug("duplicate contact absorbed", "contact", c.String())
	}
	s.println(s.styles.success(msgAdded))
	return nil
}

// delete reads an email and removes one contact holding exactly that email.
func (s *Shell) delete() error {
	s.println(s.styles.prompt(msgDeletePrompt))
	email, err := s.readLine()
	if err != nil {
		return err
	}

	if _, ok := s.book.DeleteByEmail(email); !ok {
		s.println(s.styles.failure(msgNotFound))
		return nil
	}
	s.println(s.styles.success(msgRemoved))
	return nil
}

// save asks for confirmation and appends the whole set through the saver.
// Any answer other than "Y" aborts without a message. A save failure is
// reported and the loop goes on.
func (s *Shell) save() error {
	s.println(s.styles.prompt(msgSavePrompt))
	answer, err := s.readLine()
	if err != nil {
		return err
	}
	if answer != saveConfirmation {
		return nil
	}

	if err := s.saver.Append(s.book.List()); err != nil {
		s.logger.Error("saving contacts", "error", err)
		s.println(s.styles.failure(msgSaveFailed + err.Error()))
		return nil
	}
	s.println(s.styles.success(msgSaved))
	return nil
}

func (s *Shell) help() {
	s.println(s.styles.info(msgHelp))
}
