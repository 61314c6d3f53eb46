// Package contact defines the Contact value type and the parser that builds
// contacts from "fullName;phoneNumber;email" input lines.
package contact

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Contact is a full-name/phone/email triple. Two contacts are equal iff all
// three fields are equal, so Contact is usable directly as a map key.
// No validation happens here; see Parse and Validate.
type Contact struct {
	FullName    string
	PhoneNumber string
	Email       string
}

// New creates a Contact from its three fields.
func New(fullName, phoneNumber, email string) Contact {
	return Contact{FullName: fullName, PhoneNumber: phoneNumber, Email: email}
}

// SetFullName replaces the full name.
func (c *Contact) SetFullName(fullName string) { c.FullName = fullName }

// SetPhoneNumber replaces the phone number.
func (c *Contact) SetPhoneNumber(phoneNumber string) { c.PhoneNumber = phoneNumber }

// SetEmail replaces the email.
func (c *Contact) SetEmail(email string) { c.Email = email }

// Equal reports whether c and other hold the same three fields.
func (c Contact) Equal(other Contact) bool {
	return c == other
}

// Hash returns a hash combined from all three fields. Equal contacts hash
// equally. Fields are NUL-separated so "ab"+"c" and "a"+"bc" differ.
func (c Contact) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(c.FullName)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(c.PhoneNumber)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(c.Email)
	return d.Sum64()
}

// String renders the contact for debugging.
func (c Contact) String() string {
	return fmt.Sprintf("Contact{fullName='%s', phoneNumber='%s', email='%s'}", c.FullName, c.PhoneNumber, c.Email)
}
