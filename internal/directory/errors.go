package directory

import "fmt"

// NetworkError indicates a transport failure or a non-2xx response.
type NetworkError struct {
	Err        error
	Status     string
	StatusCode int
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("directory request failed: %v", e.Err)
	}
	return fmt.Sprintf("directory API error: %s", e.Status)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError indicates a malformed JSON response body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
