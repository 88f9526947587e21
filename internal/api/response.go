// Helper functions for sending standardized JSON responses.

package api

import (
	"encoding/json"
	"net/http"

	"github.com/vrsandeep/ugc-console/internal/client"
	"github.com/vrsandeep/ugc-console/internal/monitor"
)

// RespondWithJSON writes a JSON response with the given status code and payload.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		// If marshaling fails, return an error response
		RespondWithError(w, http.StatusInternalServerError, "Failed to marshal response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondWithError writes a standardized JSON error response.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithActionError maps a user action failure to a status code.
// Input that never left the console is a 400; anything the backend (or the
// network on the way to it) refused is a 502 carrying the backend's message.
func respondWithActionError(w http.ResponseWriter, err error) {
	if monitor.IsValidation(err) {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	RespondWithError(w, http.StatusBadGateway, client.Message(err))
}

func decodePayload(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}
