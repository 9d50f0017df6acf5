package handlers

import (
	"encoding/json"
	"net/http"
)

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Accounts int    `json:"accounts"`
}

// HealthCheck reports liveness and the number of stub accounts
func HealthCheck(stub *AccountServiceHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(HealthResponse{
			Status:   "ok",
			Accounts: stub.Count(),
		})
	}
}
