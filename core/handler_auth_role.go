package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/albashop/alba/db"
)

// UpdateRoleHandler assigns a role to an existing user. Registration always
// produces plain users; admin and vendor are granted here.
// Endpoint: PATCH /auth/update-role
// Authenticated: Yes, admin only
// Allowed Mimetype: application/json
func (a *App) UpdateRoleHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}
	if req.UserID == "" || req.Role == "" {
		writeJsonError(w, errorMissingFields)
		return
	}
	if !db.ValidRole(req.Role) {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if _, err := a.DbAuth().GetUserById(req.UserID); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			writeJsonError(w, errorUserNotFound)
			return
		}
		writeJsonError(w, errorDatabase)
		return
	}

	if err := a.DbAuth().UpdateRole(req.UserID, req.Role); err != nil {
		writeJsonError(w, errorDatabase)
		return
	}

	writeJsonOk(w, okRoleUpdated)
}
