package core

import (
	"encoding/json"
	"net/http"
)

type jsonResponse struct {
	status int
	body   []byte
}

// JsonBasic contains the response fields every endpoint returns. Status is
// the boolean success flag clients branch on; Code is a stable
// machine-readable identifier for the outcome.
type JsonBasic struct {
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Status     bool   `json:"status"`
}

// JsonWithData is used for structured JSON responses with data
type JsonWithData struct {
	JsonBasic
	Data interface{} `json:"data,omitempty"`
}

// writeJsonWithData writes a structured JSON response with the provided data
func writeJsonWithData(w http.ResponseWriter, resp JsonWithData) {
	setHeaders(w, HeadersJson)
	w.WriteHeader(resp.StatusCode)
	json.NewEncoder(w).Encode(resp)
}

// writeJsonData writes a success envelope carrying data.
func writeJsonData(w http.ResponseWriter, status int, code, message string, data interface{}) {
	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{
			StatusCode: status,
			Code:       code,
			Message:    message,
			Status:     true,
		},
		Data: data,
	})
}

// writeJsonOk writes a precomputed success response
func writeJsonOk(w http.ResponseWriter, resp jsonResponse) {
	setHeaders(w, HeadersJson)
	w.WriteHeader(resp.status)
	w.Write(resp.body)
}

// writeJsonError writes a precomputed JSON error response
func writeJsonError(w http.ResponseWriter, resp jsonResponse) {
	setHeaders(w, HeadersJson)
	w.WriteHeader(resp.status)
	w.Write(resp.body)
}
