package core

import (
	"net/http"

	"github.com/albashop/alba/db"
)

// This file defines the standardized response format for the endpoints
// that establish a session: login, refresh and registration.
//
// Example response:
//
//	{
//	  "statusCode": 200,
//	  "code": "ok_authentication",
//	  "message": "Authentication successful",
//	  "status": true,
//	  "data": {
//	    "token_type": "Bearer",
//	    "access_token": "eyJhbGciOiJIUzI...",
//	    "expires_in": 28800,
//	    "refresh_token": "eyJhbGciOiJIUzI...",
//	    "record": {
//	      "id": "user123",
//	      "email": "user@example.com",
//	      "username": "user",
//	      "role": "user",
//	      "verified": true,
//	      "avatar": "https://...",
//	      "cart_count": 2
//	    }
//	  }
//	}
const (
	CodeOkAuthentication = "ok_authentication"
)

// AuthRecord represents the user record in authentication responses
type AuthRecord struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Verified  bool   `json:"verified"`
	Avatar    string `json:"avatar"`
	CartCount int    `json:"cart_count"`
}

// AuthData represents the authentication response structure
type AuthData struct {
	TokenType    string     `json:"token_type"`
	AccessToken  string     `json:"access_token"`
	ExpiresIn    int        `json:"expires_in"`
	RefreshToken string     `json:"refresh_token"`
	Record       AuthRecord `json:"record"`
}

// NewAuthData creates a new AuthData instance
func NewAuthData(accessToken, refreshToken string, expiresIn int, user *db.User) *AuthData {
	return &AuthData{
		TokenType:    "Bearer",
		AccessToken:  accessToken,
		ExpiresIn:    expiresIn,
		RefreshToken: refreshToken,
		Record: AuthRecord{
			ID:        user.ID,
			Email:     user.Email,
			Username:  user.Username,
			Role:      user.Role,
			Verified:  user.Verified,
			Avatar:    user.Avatar,
			CartCount: user.CartCount,
		},
	}
}

// writeAuthResponse writes a standardized authentication response
func writeAuthResponse(w http.ResponseWriter, status int, accessToken, refreshToken string, expiresIn int, user *db.User) {
	authData := NewAuthData(accessToken, refreshToken, expiresIn, user)
	response := JsonWithData{
		JsonBasic: JsonBasic{
			StatusCode: status,
			Code:       CodeOkAuthentication,
			Message:    "Authentication successful",
			Status:     true,
		},
		Data: authData,
	}
	writeJsonWithData(w, response)
}
