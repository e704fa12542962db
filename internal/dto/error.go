package dto

import "time"

// ErrorEnvelope is the uniform body returned for every failure. Status
// mirrors the transport status code; Error is a short machine code such as
// BAD_REQUEST or NOT_FOUND.
type ErrorEnvelope struct {
	Message   string    `json:"message"`
	Error     string    `json:"error"`
	Status    int       `json:"status"`
	Path      string    `json:"path,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
