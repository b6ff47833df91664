package app

import "fmt"

// ClientError marks a failure caused by the request itself: bad or missing
// input, a business-rule not-found, a validation failure, or a duplicate
// username. Everything else surfaces as a server error.
//
// Description is what lands in the response envelope. It is usually a plain
// string, but validation failures carry a structured payload.
type ClientError struct {
	Description any
}

func (e *ClientError) Error() string {
	if s, ok := e.Description.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", e.Description)
}

// NewClientError wraps a description into a ClientError.
func NewClientError(description any) *ClientError {
	return &ClientError{Description: description}
}
