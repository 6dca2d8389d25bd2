package dto

import "encoding/json"

// SyncResponse is returned by a successful sync.
// Profile is the GitHub user resource exactly as GitHub sent it.
type SyncResponse struct {
	Success    bool            `json:"success"`
	Profile    json.RawMessage `json:"profile" swaggertype:"object"`
	ReposCount int             `json:"reposCount"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
