// respond.go - The JSON envelope every API endpoint answers with.
package server

import (
	"encoding/json"
	"net/http"
)

// answer is the wire envelope shared by all JSON endpoints. Error answers
// carry the id "0".
type answer struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeAnswer(w http.ResponseWriter, code int, id, status, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(answer{ID: id, Status: status, Message: message})
}
