package model

import (
	"fmt"
	"hash/fnv"
)

// ETag returns the validator for the contact's current field values.
// The tag is a content hash, so any field mutation yields a new tag and
// the value is stable across process restarts and snapshot reloads. The
// id does not participate: two contacts holding identical values share
// a tag but are still distinguished by id.
func (c Contact) ETag() string {
	h := fnv.New64a()
	for _, field := range []string{c.Title, c.Name, c.Email, c.PhotoURL} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// CollectionETag returns the validator for the aggregate state of the
// given contacts. It covers ids as well as member tags, so adding,
// removing, or mutating any member changes the value.
func CollectionETag(contacts []Contact) string {
	h := fnv.New64a()
	for _, c := range contacts {
		fmt.Fprintf(h, "%d:%s;", c.ID, c.ETag())
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
