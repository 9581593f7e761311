package model

import (
	"encoding/xml"
	"strings"
)

// Contact is a person with a display title, a name, and an email address.
// Title is the text shown for the contact in lists, such as a nickname or
// a company name.
type Contact struct {
	ID       int64  `xml:"id,attr"`
	Title    string `xml:"title"`
	Name     string `xml:"name"`
	Email    string `xml:"email"`
	PhotoURL string `xml:"photoUrl"`
}

// ContactList is the wire and snapshot form of the whole collection.
type ContactList struct {
	XMLName  xml.Name  `xml:"contacts"`
	Contacts []Contact `xml:"contact"`
}

// ApplyUpdate merges patch values into the contact. Title is display
// critical, so a blank patch title leaves the current one in place. The
// remaining fields always take the patch value; an empty string is an
// explicit clear. The contact's id never changes; a patch carrying a
// different non-zero id is an input error.
func (c *Contact) ApplyUpdate(patch Contact) error {
	if patch.ID != 0 && patch.ID != c.ID {
		return ErrIDMismatch
	}
	if strings.TrimSpace(patch.Title) != "" {
		c.Title = patch.Title
	}
	c.Name = patch.Name
	c.Email = patch.Email
	c.PhotoURL = patch.PhotoURL
	return nil
}
