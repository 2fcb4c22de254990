package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// maxRequestBody caps request bodies at 1MB
const maxRequestBody = 1 << 20

// respondJSON writes a JSON response with proper error handling
func (a *API) respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		a.logger.Errorw("Failed to encode JSON response",
			"error", err,
			"data_type", fmt.Sprintf("%T", data))
		// Response already started, can't send error to client
		// Error is logged for monitoring
	}
}

// respondEmpty writes a 200 with an empty body, the convention for
// lookups and deletions that matched nothing
func (a *API) respondEmpty(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

// pathID parses a numeric path variable from the route
func pathID(r *http.Request, name string) (int64, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars[name], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, vars[name])
	}
	return id, nil
}

// healthCheck reports service liveness
func (a *API) healthCheck(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
