// Package response writes the JSON bodies the frontend expects.
//
// Error responses always carry a "message" the UI can surface directly and,
// when an underlying failure exists, its string under "error":
//
//	{"message": "Error adding product", "error": "..."}
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Message writes a {"message": ...} body.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// Error writes a {"message": ...} error body.
func Error(w http.ResponseWriter, status int, message string) {
	Message(w, status, message)
}

// Fail writes a {"message": ..., "error": ...} body carrying the underlying
// failure, matching the handler-level catch-and-respond pattern used
// throughout the API.
func Fail(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	JSON(w, status, body)
}
