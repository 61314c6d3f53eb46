package viewer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/smileynet/contacts/internal/contact"
)

// Column widths before the window size is known.
const (
	nameWidth  = 32
	phoneWidth = 14
	emailWidth = 32
)

// chromeHeight is the number of lines used by the title, borders, status
// line and help bar.
const chromeHeight = 6

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)

// Model is the Bubble Tea model for the read-only contact table.
type Model struct {
	source   string
	count    int
	table    table.Model
	help     help.Model
	keys     keyMap
	width    int
	height   int
	quitting bool
}

// NewModel creates a Model listing contacts read from source, sorted by name.
func NewModel(source string, contacts []contact.Contact) Model {
	t := table.New(
		table.WithColumns(columns(nameWidth, phoneWidth, emailWidth)),
		table.WithRows(lo.Map(rows(sorted(contacts)), func(r []string, _ int) table.Row {
			return table.Row(r)
		})),
		table.WithFocused(true),
		table.WithHeight(min(len(contacts), 20)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.AdaptiveColor{Light: "15", Dark: "229"}).
		Background(lipgloss.AdaptiveColor{Light: "4", Dark: "57"})
	t.SetStyles(s)

	return Model{
		source: source,
		count:  len(contacts),
		table:  t,
		help:   help.New(),
		keys:   defaultKeyMap(),
	}
}

// rows converts contacts to table cells in display order.
func rows(contacts []contact.Contact) [][]string {
	return lo.Map(contacts, func(c contact.Contact, _ int) []string {
		return []string{c.FullName, c.PhoneNumber, c.Email}
	})
}

func columns(name, phone, email int) []table.Column {
	return []table.Column{
		{Title: header[0], Width: name},
		{Title: header[1], Width: phone},
		{Title: header[2], Width: email},
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// resize fits the table to the window. The phone column keeps its width and
// the name and email columns split what remains.
func (m *Model) resize() {
	h := m.height - chromeHeight
	if h < 2 {
		h = 2
	}
	m.table.SetHeight(h)

	// Two border columns plus the cell padding of three columns.
	avail := m.width - 2 - 6 - phoneWidth
	if avail < 20 {
		return
	}
	name := avail / 2
	m.table.SetColumns(columns(name, phoneWidth, avail-name))
}

// Selected returns the highlighted contact and whether one exists.
func (m Model) Selected() (contact.Contact, bool) {
	row := m.table.SelectedRow()
	if len(row) != 3 {
		return contact.Contact{}, false
	}
	return contact.New(row[0], row[1], row[2]), true
}

// status describes the highlighted contact.
func (m Model) status() string {
	c, ok := m.Selected()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s <%s> %s", c.FullName, c.Email, c.PhoneNumber)
}

// View renders the title, the framed table, the highlighted contact and the
// help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.Render(fmt.Sprintf("Contacts in %s (%d)", m.source, m.count))

	var body string
	if m.count == 0 {
		body = emptyStyle.Render("No contacts")
	} else {
		body = m.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		frameStyle.Render(body),
		emptyStyle.Render(m.status()),
		m.help.View(m.keys),
	)
}
