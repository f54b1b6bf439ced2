package core

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/albashop/alba/crypto"
)

// LoginHandler handles password-based authentication.
// Endpoint: POST /auth/login
// Authenticated: No
// Allowed Mimetype: application/json
//
// Unknown address and wrong password both produce the same generic
// credentials error, so the endpoint does not leak which addresses exist.
func (a *App) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	// Lookups use the stored case-normalized form.
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	if err := ValidateEmail(req.Email); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil || user == nil {
		writeJsonError(w, errorInvalidCredentials)
		return
	}

	if !crypto.CheckPassword(req.Password, user.Password) {
		writeJsonError(w, errorInvalidCredentials)
		return
	}

	a.issueSession(w, http.StatusOK, user)
}
