package handler

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/juthamas/contacts-server/internal/logger"
	"github.com/juthamas/contacts-server/internal/model"
	"github.com/juthamas/contacts-server/internal/service"
)

// ContactService defines business operations for contact management.
type ContactService interface {
	ListContacts(ctx context.Context, titleFilter string, pre service.Preconditions) ([]model.Contact, string, error)
	GetContact(ctx context.Context, id int64, pre service.Preconditions) (model.Contact, string, error)
	CreateContact(ctx context.Context, contact model.Contact, pre service.Preconditions) (model.Contact, string, error)
	UpdateContact(ctx context.Context, id int64, patch model.Contact, pre service.Preconditions) (model.Contact, string, error)
	DeleteContact(ctx context.Context, id int64, pre service.Preconditions) error
}

// Contact handles the HTTP endpoints for contacts.
type Contact struct {
	contactService ContactService
	logger         *logger.Logger
}

// NewContact creates a new Contact handler.
func NewContact(contactService ContactService, logger *logger.Logger) *Contact {
	return &Contact{
		contactService: contactService,
		logger:         logger,
	}
}

// contactDoc pins the XML root element name for a single contact.
type contactDoc struct {
	XMLName xml.Name `xml:"contact"`
	model.Contact
}

func preconditionsFrom(r *http.Request) service.Preconditions {
	return service.Preconditions{
		IfMatch:     r.Header.Get("If-Match"),
		IfNoneMatch: r.Header.Get("If-None-Match"),
	}
}

func quote(tag string) string {
	return `"` + tag + `"`
}

// List returns all contacts, or those whose title contains the "title"
// query parameter.
func (h *Contact) List(w http.ResponseWriter, r *http.Request) {
	contacts, tag, err := h.contactService.ListContacts(r.Context(), r.URL.Query().Get("title"), preconditionsFrom(r))
	if errors.Is(err, model.ErrNotModified) {
		w.Header().Set("ETag", quote(tag))
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("ETag", quote(tag))
	h.writeXML(w, http.StatusOK, model.ContactList{Contacts: contacts})
}

// Get returns one contact by id.
func (h *Contact) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return
	}

	contact, tag, err := h.contactService.GetContact(r.Context(), id, preconditionsFrom(r))
	if errors.Is(err, model.ErrNotModified) {
		w.Header().Set("ETag", quote(tag))
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("ETag", quote(tag))
	h.writeXML(w, http.StatusOK, contactDoc{Contact: contact})
}

// Create makes a new contact from the request body. The Location header
// of the response references the stored contact.
func (h *Contact) Create(w http.ResponseWriter, r *http.Request) {
	var contact model.Contact
	if err := xml.NewDecoder(r.Body).Decode(&contact); err != nil {
		http.Error(w, "malformed contact body", http.StatusBadRequest)
		return
	}

	created, tag, err := h.contactService.CreateContact(r.Context(), contact, preconditionsFrom(r))
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", strings.TrimSuffix(r.URL.Path, "/"), created.ID))
	if tag != "" {
		w.Header().Set("ETag", quote(tag))
	}
	w.WriteHeader(http.StatusCreated)
}

// Update merges the request body into the contact addressed by the path.
func (h *Contact) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return
	}

	var patch model.Contact
	if err := xml.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "malformed contact body", http.StatusBadRequest)
		return
	}

	updated, tag, err := h.contactService.UpdateContact(r.Context(), id, patch, preconditionsFrom(r))
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("ETag", quote(tag))
	h.writeXML(w, http.StatusOK, contactDoc{Contact: updated})
}

// Delete removes the contact addressed by the path.
func (h *Contact) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return
	}

	if err := h.contactService.DeleteContact(r.Context(), id, preconditionsFrom(r)); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Contact) pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Contact) writeXML(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		h.logger.Error("failed to write response", "error", err)
		return
	}
	if err := xml.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
