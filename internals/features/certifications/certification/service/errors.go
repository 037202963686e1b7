package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Failure kinds of the creation workflow, mapped to HTTP statuses by the
// controller.
type ErrorKind int

const (
	KindValidation        ErrorKind = iota // missing/malformed input, unknown catalog refs -> 400
	KindReferenceNotFound                  // FK target absent -> 400
	KindConflict                           // OTP already claimed -> 409
	KindPersistence                        // the store rejected a write -> 400
	KindInternal                           // everything else -> 500
)

type WorkflowError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *WorkflowError) Error() string { return e.Message }
func (e *WorkflowError) Unwrap() error { return e.Err }

func (e *WorkflowError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindReferenceNotFound, KindPersistence:
		return fiber.StatusBadRequest
	case KindConflict:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func validationErr(msg string) *WorkflowError {
	return &WorkflowError{Kind: KindValidation, Message: msg}
}

func refNotFound(msg string) *WorkflowError {
	return &WorkflowError{Kind: KindReferenceNotFound, Message: msg}
}

func conflictErr(msg string) *WorkflowError {
	return &WorkflowError{Kind: KindConflict, Message: msg}
}

func persistenceErr(msg string, err error) *WorkflowError {
	return &WorkflowError{Kind: KindPersistence, Message: msg, Err: err}
}

func internalErr(msg string, err error) *WorkflowError {
	return &WorkflowError{Kind: KindInternal, Message: msg, Err: err}
}

// AsWorkflowError unwraps err into a *WorkflowError if it is one.
func AsWorkflowError(err error) (*WorkflowError, bool) {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we, true
	}
	return nil, false
}
