package domain

import "fmt"

// ConfigurationError reports missing or invalid settings, detected before any I/O
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// RemoteDataError means the remote answered but the body is not a valid comment collection
type RemoteDataError struct {
	URL     string
	Message string
	Cause   error
}

func (e *RemoteDataError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("remote data error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("remote data error for %s: %s", e.URL, e.Message)
}

func (e *RemoteDataError) Unwrap() error {
	return e.Cause
}

// TransportError covers connection failures, timeouts and non-success responses.
// StatusCode is zero when no response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transport error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("transport error for %s: %s", e.URL, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// CacheMissingError is returned when the snapshot is absent or unreadable.
// The loader has to run before any page is selected.
type CacheMissingError struct {
	Path  string
	Cause error
}

func (e *CacheMissingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("comments cache %s is missing or invalid: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("comments cache %s is missing or invalid", e.Path)
}

func (e *CacheMissingError) Unwrap() error {
	return e.Cause
}
