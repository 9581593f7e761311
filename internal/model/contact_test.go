package model

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_ApplyUpdate(t *testing.T) {
	tests := []struct {
		name     string
		contact  Contact
		patch    Contact
		expected Contact
		wantErr  error
	}{
		{
			name:     "all fields replaced",
			contact:  Contact{ID: 101, Title: "Test contact", Name: "Joe Experimental", Email: "none@testing.com"},
			patch:    Contact{ID: 101, Title: "New title", Name: "New name", Email: "new@testing.com", PhotoURL: "http://example.com/p.jpg"},
			expected: Contact{ID: 101, Title: "New title", Name: "New name", Email: "new@testing.com", PhotoURL: "http://example.com/p.jpg"},
		},
		{
			name:     "empty title leaves title unchanged",
			contact:  Contact{ID: 101, Title: "Test contact", Name: "Joe Experimental"},
			patch:    Contact{ID: 101, Title: "", Name: "New name"},
			expected: Contact{ID: 101, Title: "Test contact", Name: "New name"},
		},
		{
			name:     "whitespace title leaves title unchanged",
			contact:  Contact{ID: 101, Title: "Test contact"},
			patch:    Contact{ID: 101, Title: "   \t"},
			expected: Contact{ID: 101, Title: "Test contact"},
		},
		{
			name:     "empty name and email are explicit clears",
			contact:  Contact{ID: 101, Title: "Test contact", Name: "Joe Experimental", Email: "none@testing.com", PhotoURL: "http://example.com/p.jpg"},
			patch:    Contact{ID: 101, Title: "Test contact"},
			expected: Contact{ID: 101, Title: "Test contact"},
		},
		{
			name:     "zero patch id addresses the target",
			contact:  Contact{ID: 101, Title: "Test contact", Name: "Joe Experimental"},
			patch:    Contact{Title: "New title"},
			expected: Contact{ID: 101, Title: "New title"},
		},
		{
			name:    "mismatched id rejected",
			contact: Contact{ID: 101, Title: "Test contact"},
			patch:   Contact{ID: 102, Title: "New title"},
			wantErr: ErrIDMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.contact.ApplyUpdate(tt.patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tt.contact)
		})
	}
}

func TestContact_ETag(t *testing.T) {
	c := Contact{ID: 101, Title: "Test contact", Name: "Joe Experimental", Email: "none@testing.com"}

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, c.ETag(), c.ETag())
	})

	t.Run("any field mutation changes the tag", func(t *testing.T) {
		mutations := []Contact{
			{ID: 101, Title: "Other title", Name: "Joe Experimental", Email: "none@testing.com"},
			{ID: 101, Title: "Test contact", Name: "", Email: "none@testing.com"},
			{ID: 101, Title: "Test contact", Name: "Joe Experimental", Email: "other@testing.com"},
			{ID: 101, Title: "Test contact", Name: "Joe Experimental", Email: "none@testing.com", PhotoURL: "x"},
		}
		for _, m := range mutations {
			assert.NotEqual(t, c.ETag(), m.ETag())
		}
	})

	t.Run("id does not participate", func(t *testing.T) {
		other := c
		other.ID = 999
		assert.Equal(t, c.ETag(), other.ETag())
	})

	t.Run("field boundaries are unambiguous", func(t *testing.T) {
		a := Contact{Title: "ab", Name: "c"}
		b := Contact{Title: "a", Name: "bc"}
		assert.NotEqual(t, a.ETag(), b.ETag())
	})
}

func TestCollectionETag(t *testing.T) {
	a := Contact{ID: 101, Title: "Test contact"}
	b := Contact{ID: 102, Title: "Another Test contact"}

	base := CollectionETag([]Contact{a, b})

	t.Run("member removal changes the tag", func(t *testing.T) {
		assert.NotEqual(t, base, CollectionETag([]Contact{a}))
	})

	t.Run("member mutation changes the tag", func(t *testing.T) {
		mutated := b
		mutated.Name = "Testosterone"
		assert.NotEqual(t, base, CollectionETag([]Contact{a, mutated}))
	})

	t.Run("member addition changes the tag", func(t *testing.T) {
		assert.NotEqual(t, base, CollectionETag([]Contact{a, b, {ID: 103, Title: "Third"}}))
	})
}

func TestContactList_RoundTrip(t *testing.T) {
	list := ContactList{Contacts: []Contact{
		{ID: 101, Title: "Test contact", Name: "", Email: "none@testing.com", PhotoURL: ""},
		{ID: 102, Title: "Another Test contact", Name: "Testosterone", Email: "testee@foo.com"},
	}}

	data, err := xml.Marshal(list)
	require.NoError(t, err)

	var decoded ContactList
	require.NoError(t, xml.Unmarshal(data, &decoded))

	require.Len(t, decoded.Contacts, 2)
	// empty strings must survive as empty, not as absent
	assert.Equal(t, list.Contacts[0], decoded.Contacts[0])
	assert.Equal(t, list.Contacts[1], decoded.Contacts[1])
	assert.Equal(t, "", decoded.Contacts[0].Name)
	assert.Equal(t, "", decoded.Contacts[0].PhotoURL)
}
