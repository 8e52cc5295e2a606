// Package rest holds the JSON plumbing shared by all resource handlers.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/apperrors"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

// WriteError maps err onto the status code of its kind. Errors outside the
// taxonomy are logged and reported as a generic internal error.
func WriteError(w http.ResponseWriter, err error) {
	var validationErr *apperrors.ValidationError
	var notFoundErr *apperrors.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: validationErr.Error()})
	case errors.As(err, &notFoundErr):
		WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: notFoundErr.Error()})
	default:
		log.Errorf("unhandled error: %v", err)
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error."})
	}
}

// PathInt reads a numeric path variable registered on the route.
func PathInt(r *http.Request, name string) (int, error) {
	value, ok := mux.Vars(r)[name]
	if !ok {
		return 0, apperrors.Required(name)
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperrors.Invalid(name, name+" must be an integer.")
	}
	return id, nil
}

// PathInts reads several numeric path variables, stopping at the first failure.
func PathInts(r *http.Request, names ...string) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		id, err := PathInt(r, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// QueryBool reports whether the query parameter parses as a true boolean.
func QueryBool(r *http.Request, name string) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && value
}
