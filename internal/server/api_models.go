package server

// NavigateRequest is the payload for a navigation command.
type NavigateRequest struct {
	URL string `json:"url" example:"https://example.com"`
}

// NavigateResponse reports the outcome of a navigation command. URL echoes
// the request exactly on success; Error carries the reason on failure.
type NavigateResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty" example:"https://example.com"`
	Error   string `json:"error,omitempty" example:"Chrome window not found"`
}

// HealthResponse is the constant liveness payload.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}
