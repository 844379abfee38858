package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is the JSON envelope of every API reply.
type Response struct {
	Status int `json:"Status"`
	Body   any `json:"Body,omitempty"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	ErrorDescription string `json:"ErrorDescription"`
}

const internalErrorJSON = `{"Status": 500, "Body": {"ErrorDescription": "Internal server error"}}`

func writeResponse(w http.ResponseWriter, status int, body any) {
	raw, err := json.Marshal(Response{Status: status, Body: body})
	if err != nil {
		writeInternalError(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}

func writeError(w http.ResponseWriter, status int, desc string) {
	writeResponse(w, status, ErrorResponse{ErrorDescription: desc})
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, internalErrorJSON)
}
