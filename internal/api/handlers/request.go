package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

const maxBodyBytes = 1 << 20

// Shared French messages
const (
	MsgInvalidRequestBody = "Le corps de la requête est invalide."
	MsgInvalidParams      = "Les paramètres de la requête sont invalides."
	MsgForbidden          = "Vous n'avez pas les droits nécessaires pour cette action."
	MsgUnauthorized       = "Votre session a expiré. Veuillez vous reconnecter."
)

var errEmptyBody = errors.New("empty request body")

// DecodeJSON decodes a JSON body, refusing unknown fields
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

// PathID parses a numeric route variable
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// ParsePage reads page and limit; missing values take the defaults
func ParsePage(r *http.Request) (domain.Page, error) {
	page := domain.Page{}
	q := r.URL.Query()
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, fmt.Errorf("invalid page %q", raw)
		}
		page.Page = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, fmt.Errorf("invalid limit %q", raw)
		}
		page.Limit = n
	}
	return page.Normalize(), nil
}

// QueryInt64 reads an optional positive integer
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &n, nil
}

// QueryBool reads an optional boolean
func QueryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &b, nil
}

// QueryDate reads an optional YYYY-MM-DD date
func QueryDate(r *http.Request, name string) (types.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return "", nil
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

// QueryString returns a pointer to a non-empty query value
func QueryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}
