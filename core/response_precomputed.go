package core

import (
	"encoding/json"
	"net/http"
)

// Standard response codes
const (
	// oks
	CodeOkEmailVerified   = "ok_email_verified"
	CodeOkCodeSent        = "ok_code_sent"
	CodeOkPasswordChanged = "ok_password_changed"
	CodeOkPasswordReset   = "ok_password_reset"
	CodeOkSignedOut       = "ok_signed_out"
	CodeOkProfileUpdated  = "ok_profile_updated"
	CodeOkDeleted         = "ok_deleted"
	CodeOkData            = "ok_data"
	CodeOkCreated         = "ok_created"
	CodeOkUpdated         = "ok_updated"

	// errors
	CodeErrorInvalidRequest     = "err_invalid_input"
	CodeErrorInvalidCredentials = "err_invalid_credentials"
	CodeErrorMissingFields      = "err_missing_fields"
	CodeErrorPasswordComplexity = "err_password_complexity"
	CodeErrorEmailConflict      = "err_email_conflict"
	CodeErrorNotFound           = "err_not_found"
	CodeErrorUserNotFound       = "err_user_not_found"
	CodeErrorAlreadyVerified    = "err_already_verified"
	CodeErrorNotVerified        = "err_not_verified"
	CodeErrorNoPendingCode      = "err_no_pending_code"
	CodeErrorCodeExpired        = "err_code_expired"
	CodeErrorCodeMismatch       = "err_code_mismatch"
	CodeErrorTokenGeneration    = "err_token_generation"
	CodeErrorNoAuthToken        = "err_no_auth_token"
	CodeErrorInvalidTokenFormat = "err_invalid_token_format"
	CodeErrorJwtTokenExpired    = "err_token_expired"
	CodeErrorJwtInvalidToken    = "err_invalid_token"
	CodeErrorRefreshMismatch    = "err_refresh_mismatch"
	CodeErrorForbidden          = "err_forbidden"
	CodeErrorAdminsOnly         = "err_admins_only"
	CodeErrorTooManyRequests    = "err_too_many_requests"
	CodeErrorServiceUnavailable = "err_service_unavailable"
	CodeErrorDatabase           = "err_database"
	CodeErrorIpBlocked          = "err_ip_blocked"
	CodeErrorInvalidContentType = "err_invalid_content_type"
)

// precomputeBasicResponse marshals a response envelope once at package
// initialization. Handlers then write the stored bytes directly, avoiding
// repeated JSON marshaling during request handling.
func precomputeBasicResponse(status int, code, message string) jsonResponse {
	basic := JsonBasic{
		StatusCode: status,
		Code:       code,
		Message:    message,
		Status:     status < http.StatusBadRequest,
	}
	body, _ := json.Marshal(basic)
	return jsonResponse{status: status, body: body}
}

// Precomputed error and ok responses with status codes
var (
	// errors
	errorInvalidRequest     = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidRequest, "The request contains invalid data")
	errorInvalidCredentials = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorInvalidCredentials, "Invalid credentials provided")
	errorMissingFields      = precomputeBasicResponse(http.StatusBadRequest, CodeErrorMissingFields, "Required fields are missing")
	errorPasswordComplexity = precomputeBasicResponse(http.StatusBadRequest, CodeErrorPasswordComplexity, "Password must be at least 8 characters with lowercase, uppercase and a digit")
	errorEmailConflict      = precomputeBasicResponse(http.StatusConflict, CodeErrorEmailConflict, "Email address is already registered")
	errorNotFound           = precomputeBasicResponse(http.StatusNotFound, CodeErrorNotFound, "Requested resource not found")
	errorUserNotFound       = precomputeBasicResponse(http.StatusNotFound, CodeErrorUserNotFound, "User does not exist")
	errorAlreadyVerified    = precomputeBasicResponse(http.StatusConflict, CodeErrorAlreadyVerified, "Email is already verified")
	errorNotVerified        = precomputeBasicResponse(http.StatusForbidden, CodeErrorNotVerified, "Email address is not verified")
	errorNoPendingCode      = precomputeBasicResponse(http.StatusBadRequest, CodeErrorNoPendingCode, "No pending code for this account")
	errorCodeExpired        = precomputeBasicResponse(http.StatusBadRequest, CodeErrorCodeExpired, "The code has expired, request a new one")
	errorCodeMismatch       = precomputeBasicResponse(http.StatusBadRequest, CodeErrorCodeMismatch, "The provided code is not valid")
	errorTokenGeneration    = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorTokenGeneration, "Failed to generate authentication token")
	errorNoAuthToken        = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorNoAuthToken, "Authentication token is required")
	errorInvalidTokenFormat = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorInvalidTokenFormat, "Invalid authorization token format")
	errorJwtTokenExpired    = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtTokenExpired, "Authentication token has expired")
	errorJwtInvalidToken    = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtInvalidToken, "Invalid authentication token")
	errorRefreshMismatch    = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorRefreshMismatch, "Refresh token does not match the active session")
	errorForbidden          = precomputeBasicResponse(http.StatusForbidden, CodeErrorForbidden, "You are not allowed to perform this action")
	errorAdminsOnly         = precomputeBasicResponse(http.StatusForbidden, CodeErrorAdminsOnly, "Admins only")
	errorTooManyRequests    = precomputeBasicResponse(http.StatusTooManyRequests, CodeErrorTooManyRequests, "Too many requests, please try again later")
	errorServiceUnavailable = precomputeBasicResponse(http.StatusServiceUnavailable, CodeErrorServiceUnavailable, "Service is temporarily unavailable")
	errorDatabase           = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorDatabase, "Database error")
	errorIpBlocked          = precomputeBasicResponse(http.StatusTooManyRequests, CodeErrorIpBlocked, "IP address has been blocked due to excessive requests. Please try again later")
	errorInvalidContentType = precomputeBasicResponse(http.StatusUnsupportedMediaType, CodeErrorInvalidContentType, "Unsupported media type")

	// oks
	okEmailVerified   = precomputeBasicResponse(http.StatusOK, CodeOkEmailVerified, "Email verified successfully")
	okCodeSent        = precomputeBasicResponse(http.StatusOK, CodeOkCodeSent, "Code sent. Check your mailbox")
	okPasswordChanged = precomputeBasicResponse(http.StatusOK, CodeOkPasswordChanged, "Password changed successfully")
	okPasswordReset   = precomputeBasicResponse(http.StatusOK, CodeOkPasswordReset, "Password reset successfully")
	okSignedOut       = precomputeBasicResponse(http.StatusOK, CodeOkSignedOut, "Signed out successfully")
	okProfileUpdated  = precomputeBasicResponse(http.StatusOK, CodeOkProfileUpdated, "Profile updated successfully")
	okDeleted         = precomputeBasicResponse(http.StatusOK, CodeOkDeleted, "Deleted successfully")
	okUpdated         = precomputeBasicResponse(http.StatusOK, CodeOkUpdated, "Updated successfully")
	okRoleUpdated     = precomputeBasicResponse(http.StatusOK, CodeOkUpdated, "Role updated successfully")
)
