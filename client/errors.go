package client

import "fmt"

// ErrorKind classifies a collaborator failure for the caller.
type ErrorKind string

const (
	// KindValidation means the backend rejected the request as malformed.
	// Retrying without changing the input will not help.
	KindValidation ErrorKind = "validation"
	// KindNetwork means the backend could not be reached at all.
	KindNetwork ErrorKind = "network"
	// KindService means the backend accepted the request but failed to
	// serve it.
	KindService ErrorKind = "service"
)

// CollaboratorError is a backend failure decoded at the client boundary.
// Message is safe to show to the user as-is.
type CollaboratorError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("backend %s error: %s", e.Kind, e.Message)
}

// UserMessage returns the user-facing description of the failure.
func (e *CollaboratorError) UserMessage() string {
	return e.Message
}
