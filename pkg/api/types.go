// Package api holds the wire types for the smutbot command gateway.
package api

// CommandRequest is the body of POST /v1/command. Text is a raw chat line,
// e.g. "smutbase_search anime" or "/smutbase <uuid>".
type CommandRequest struct {
	Text string `json:"text"`
}

// CommandResponse is the gateway's reply. ImagePath points at a thumbnail in
// the local cache directory; it is empty when no thumbnail applies.
type CommandResponse struct {
	Text      string `json:"text"`
	ImagePath string `json:"image_path,omitempty"`
}

// CommandsResponse lists the registered command names.
type CommandsResponse struct {
	Commands []string `json:"commands"`
}

// ErrorResponse is returned for malformed gateway requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
