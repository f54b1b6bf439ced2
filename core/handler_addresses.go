package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/albashop/alba/db"
)

// addressJSON is the wire shape of a shipping address.
type addressJSON struct {
	ID      string `json:"id"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	Region  string `json:"region,omitempty"`
	Postal  string `json:"postal"`
	Country string `json:"country"`
}

func newAddressJSON(a *db.Address) addressJSON {
	return addressJSON{
		ID:      a.ID,
		Line1:   a.Line1,
		Line2:   a.Line2,
		City:    a.City,
		Region:  a.Region,
		Postal:  a.Postal,
		Country: a.Country,
	}
}

// ListAddressesHandler returns the caller's shipping addresses.
// Endpoint: GET /addresses
// Authenticated: Yes
func (a *App) ListAddressesHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	addresses, err := a.DbStore().ListAddressesByUser(claims.UserID)
	if err != nil {
		a.Logger().Error("failed to list addresses", "user", claims.UserID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	out := make([]addressJSON, 0, len(addresses))
	for _, addr := range addresses {
		out = append(out, newAddressJSON(addr))
	}
	writeJsonData(w, http.StatusOK, CodeOkData, "Addresses retrieved", out)
}

// CreateAddressHandler adds a shipping address for the caller.
// Endpoint: POST /addresses
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) CreateAddressHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req addressJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}
	if req.Line1 == "" || req.City == "" || req.Postal == "" || req.Country == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	address, err := a.DbStore().CreateAddress(db.Address{
		UserID:  claims.UserID,
		Line1:   req.Line1,
		Line2:   req.Line2,
		City:    req.City,
		Region:  req.Region,
		Postal:  req.Postal,
		Country: req.Country,
	})
	if err != nil {
		a.Logger().Error("failed to create address", "user", claims.UserID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}
	writeJsonData(w, http.StatusCreated, CodeOkCreated, "Address created", newAddressJSON(address))
}

// UpdateAddressHandler modifies one of the caller's addresses. The
// ownership check happens in the update statement itself, so a foreign id
// reports not found.
// Endpoint: PATCH /addresses/:id
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) UpdateAddressHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	id := a.URLParam(r, "id")
	if id == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	var req addressJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}
	if req.Line1 == "" || req.City == "" || req.Postal == "" || req.Country == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	err := a.DbStore().UpdateAddress(db.Address{
		ID:      id,
		UserID:  claims.UserID,
		Line1:   req.Line1,
		Line2:   req.Line2,
		City:    req.City,
		Region:  req.Region,
		Postal:  req.Postal,
		Country: req.Country,
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		writeJsonError(w, errorDatabase)
		return
	}
	writeJsonOk(w, okUpdated)
}

// DeleteAddressHandler removes one of the caller's addresses.
// Endpoint: DELETE /addresses/:id
// Authenticated: Yes
func (a *App) DeleteAddressHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	id := a.URLParam(r, "id")
	if id == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if err := a.DbStore().DeleteAddress(id, claims.UserID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		writeJsonError(w, errorDatabase)
		return
	}
	writeJsonOk(w, okDeleted)
}
