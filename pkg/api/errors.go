package api

import "fmt"

// APIError is the single error shape every transport failure is
// normalized into: network failures and aborts carry Status 0, HTTP
// failures carry the server status code and, when the body could be
// parsed, the server-supplied message and full body in Details.
type APIError struct {
	Message string
	Status  int
	Details any
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

func newAbortError() *APIError {
	return &APIError{Message: "Request aborted", Status: 0, Details: nil}
}

func newNetworkError(err error) *APIError {
	return &APIError{Message: err.Error(), Status: 0, Details: nil}
}

// newStatusError builds the error for a non-2xx response. The message
// prefers a server-supplied field, in order: message, detail, error.
func newStatusError(status int, body any) *APIError {
	message := fmt.Sprintf("Request failed with status %d", status)
	if fields, ok := body.(map[string]any); ok {
		for _, key := range []string{"message", "detail", "error"} {
			if v, ok := fields[key].(string); ok && v != "" {
				message = v
				break
			}
		}
	}
	return &APIError{Message: message, Status: status, Details: body}
}

// AsAPIError returns err as an *APIError when it is one, else wraps it
// as a status-0 failure so callers always observe the normalized shape.
func AsAPIError(err error) *APIError {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return newNetworkError(err)
}
