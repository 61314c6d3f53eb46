// Package viewer renders a saved contacts file for reading.
//
// On a terminal it opens a scrollable Bubble Tea table; otherwise it prints
// a plain text table.
package viewer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/smileynet/contacts/internal/contact"
)

// Viewer shows a list of contacts loaded from source.
type Viewer interface {
	Show(ctx context.Context, source string, contacts []contact.Contact) error
}

// Options configures viewer creation.
type Options struct {
	Writer     io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force the plain table even if TTY.
}

// New returns a TUI viewer when the writer is a TTY, or a plain table viewer
// otherwise. ForcePlain overrides TTY detection.
func New(opts Options) Viewer {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Writer) {
		return &PlainViewer{w: opts.Writer}
	}

	return &TUIViewer{w: opts.Writer}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// sorted returns a copy of contacts ordered by full name, then email, then phone.
func sorted(contacts []contact.Contact) []contact.Contact {
	out := make([]contact.Contact, len(contacts))
	copy(out, contacts)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.FullName != b.FullName {
			return a.FullName < b.FullName
		}
		if a.Email != b.Email {
			return a.Email < b.Email
		}
		return a.PhoneNumber < b.PhoneNumber
	})
	return out
}

// header is shared by both viewers.
var header = []string{"Full name", "Phone", "Email"}

// PlainViewer prints contacts as an aligned text table.
type PlainViewer struct {
	w io.Writer
}

// Show prints every contact in a stable order followed by a count line.
func (v *PlainViewer) Show(_ context.Context, source string, contacts []contact.Contact) error {
	if len(contacts) == 0 {
		_, err := fmt.Fprintf(v.w, "No contacts in %s\n", source)
		return err
	}

	table := tablewriter.NewWriter(v.w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows(sorted(contacts)))
	table.Render()

	_, err := fmt.Fprintf(v.w, "\n%d contact(s) in %s\n", len(contacts), source)
	return err
}

// TUIViewer shows contacts in a Bubble Tea table.
// Falls back to PlainViewer if the TUI program fails to start.
type TUIViewer struct {
	w io.Writer
}

// Show runs the table program until the user quits or ctx is cancelled.
func (v *TUIViewer) Show(ctx context.Context, source string, contacts []contact.Contact) error {
	p := tea.NewProgram(NewModel(source, contacts),
		tea.WithOutput(v.w),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		plain := &PlainViewer{w: v.w}
		return plain.Show(ctx, source, contacts)
	}
	return nil
}
