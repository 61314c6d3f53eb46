// Package book holds the in-memory contact set for one program run.
package book

import (
	"github.com/samber/lo"

	"github.com/smileynet/contacts/internal/contact"
)

// Book is an unordered set of unique contacts. Uniqueness is full-field
// equality. It is not safe for concurrent use.
type Book struct {
	contacts map[contact.Contact]struct{}
}

// New creates a Book seeded with the given contacts. Duplicates collapse.
func New(seed ...contact.Contact) *Book {
	b := &Book{contacts: make(map[contact.Contact]struct{}, len(seed))}
	for _, c := range seed {
		b.Add(c)
	}
	return b
}

// Add inserts c. It reports false if an identical contact was already held.
func (b *Book) Add(c contact.Contact) bool {
	if b.Contains(c) {
		return false
	}
	b.contacts[c] = struct{}{}
	return true
}

// Contains reports whether an identical contact is held.
func (b *Book) Contains(c contact.Contact) bool {
	_, ok := b.contacts[c]
	return ok
}

// DeleteByEmail removes the first contact, in iteration order, whose email
// equals email exactly. When several contacts share the email only one is
// removed, and which one is unspecified.
func (b *Book) DeleteByEmail(email string) (contact.Contact, bool) {
	c, ok := lo.FindKeyBy(b.contacts, func(c contact.Contact, _ struct{}) bool {
		return c.Email == email
	})
	if !ok {
		return contact.Contact{}, false
	}
	delete(b.contacts, c)
	return c, true
}

// List returns a snapshot of every held contact in unspecified order.
func (b *Book) List() []contact.Contact {
	return lo.Keys(b.contacts)
}

// Len returns the number of held contacts.
func (b *Book) Len() int {
	return len(b.contacts)
}
