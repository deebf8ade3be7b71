package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondWithMsg writes a `{"msg": ...}` response, the shape used by every
// error and most success bodies in this API.
func RespondWithMsg(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"msg": msg})
}

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
