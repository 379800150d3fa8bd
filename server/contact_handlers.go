package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-contacts-server/contacts"
	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
)

func (s *Server) ListContactsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, apperrors.ErrMissingToken)
			return
		}

		query, err := parseListQuery(r)
		if err != nil {
			writeError(w, err)
			return
		}

		page, err := s.contacts.List(r.Context(), user.ID, query)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "Successfully found contacts!", page)
	}
}

func (s *Server) GetContactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, apperrors.ErrMissingToken)
			return
		}

		contactID := r.PathValue("contactID")
		contact, err := s.contacts.Get(r.Context(), user.ID, contactID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, fmt.Sprintf("The contact with id %s is found successfully!", contactID), contact)
	}
}

func (s *Server) CreateContactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, apperrors.ErrMissingToken)
			return
		}

		var contact contacts.Contact
		if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
			writeError(w, apperrors.Wrapf(apperrors.ErrValidation, "invalid JSON body"))
			return
		}

		created, err := s.contacts.Create(r.Context(), user.ID, contact)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, "Successfully created a contact!", created)
	}
}

func (s *Server) PatchContactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, apperrors.ErrMissingToken)
			return
		}

		var update contacts.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			writeError(w, apperrors.Wrapf(apperrors.ErrValidation, "invalid JSON body"))
			return
		}

		contactID := r.PathValue("contactID")
		updated, err := s.contacts.Patch(r.Context(), user.ID, contactID, update)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "Successfully updated the contact!", updated)
	}
}

func (s *Server) DeleteContactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, apperrors.ErrMissingToken)
			return
		}

		contactID := r.PathValue("contactID")
		if err := s.contacts.Delete(r.Context(), user.ID, contactID); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func parseListQuery(r *http.Request) (contacts.Query, error) {
	values := r.URL.Query()
	query := contacts.Query{
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
		Type:      contacts.ContactType(values.Get("type")),
	}

	var err error
	if query.Page, err = parseIntParam(values.Get("page")); err != nil {
		return contacts.Query{}, apperrors.Wrapf(apperrors.ErrValidation, "invalid page")
	}
	if query.PerPage, err = parseIntParam(values.Get("perPage")); err != nil {
		return contacts.Query{}, apperrors.Wrapf(apperrors.ErrValidation, "invalid perPage")
	}

	if fav := values.Get("isFavourite"); fav != "" {
		favourite, err := strconv.ParseBool(fav)
		if err != nil {
			return contacts.Query{}, apperrors.Wrapf(apperrors.ErrValidation, "invalid isFavourite")
		}
		query.Favourite = &favourite
	}

	return query, nil
}

func parseIntParam(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
