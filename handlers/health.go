package handlers

import "net/http"

const version = "1.0.0"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) Result {
	return Ok(healthResponse{Status: "ok", Version: version})
}
