package domain

import (
	"encoding/json"
	"fmt"
)

// NoContentBody is the synthetic body returned for 204 responses.
var NoContentBody = json.RawMessage(`{"success":true}`)

// Response is the success side of an API call: the decoded JSON body and the HTTP status.
// Failures are never represented here; they surface as errors.
type Response struct {
	Status    int
	Body      json.RawMessage
	NoContent bool
}

// Decode unmarshals the body into dst.
func (r Response) Decode(dst any) error {
	if err := json.Unmarshal(r.Body, dst); err != nil {
		return fmt.Errorf("decode response body into %T: %w", dst, err)
	}
	return nil
}

// ActionResult is the generic {success, message} body returned by delete, stop and similar calls.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
