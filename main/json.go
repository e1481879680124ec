package main

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type errResponse struct {
	Error string `json:"error"`
}

func statusAllowsBody(status int) bool {
	if status >= 100 && status < 200 || status == http.StatusNoContent || status == http.StatusNotModified {
		return false
	}
	return true
}

// WriteJSON - no need to return error (just log it), since http response already send
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if !statusAllowsBody(status) {
		w.WriteHeader(status)
		return
	}

	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Println("Failed to write JSON response: ", err)
	}
}

func WriteJSONError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errResponse{Error: message})
}
