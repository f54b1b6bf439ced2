package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"
)

const maxAvatarBytes = 2 << 20 // 2 MiB

// UpdateProfileHandler updates the username and/or avatar of the
// authenticated user.
// Endpoint: PATCH /auth/update-profile
// Authenticated: Yes
//
// Accepts multipart/form-data with an optional "username" field and an
// optional "avatar" file, or application/json with just a username. Avatar
// uploads require the asset store to be configured.
func (a *App) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	var username, avatarURL string

	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
			writeJsonError(w, errorInvalidRequest)
			return
		}
		username = strings.TrimSpace(r.FormValue("username"))

		file, header, err := r.FormFile("avatar")
		if err == nil {
			defer file.Close()
			if a.Assets() == nil {
				writeJsonError(w, errorServiceUnavailable)
				return
			}
			ext := path.Ext(header.Filename)
			assetPath := fmt.Sprintf("avatars/%s%s", claims.UserID, ext)
			avatarURL, err = a.Assets().Save(r.Context(), assetPath, file, header.Header.Get("Content-Type"))
			if err != nil {
				a.Logger().Error("failed to store avatar", "user", claims.UserID, "err", err)
				writeJsonError(w, errorServiceUnavailable)
				return
			}
		} else if err != http.ErrMissingFile {
			writeJsonError(w, errorInvalidRequest)
			return
		}

	case strings.HasPrefix(contentType, MimeTypeJSON):
		var req struct {
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJsonError(w, errorInvalidRequest)
			return
		}
		username = strings.TrimSpace(req.Username)

	default:
		writeJsonError(w, errorInvalidContentType)
		return
	}

	if username == "" && avatarURL == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	if username != "" {
		if err := ValidateUsername(username); err != nil {
			writeJsonError(w, errorInvalidRequest)
			return
		}
	}

	if err := a.DbAuth().UpdateProfile(claims.UserID, username, avatarURL); err != nil {
		a.Logger().Error("failed to update profile", "user", claims.UserID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	writeJsonOk(w, okProfileUpdated)
}
