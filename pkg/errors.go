package pkg

import "fmt"

// AppError is the error envelope handlers return to HTTP clients.
//
// Code is a stable machine-readable identifier, Message is safe to show to users.
// Err keeps the underlying cause for logs and is never serialized.
type AppError struct {
	Code             string
	Message          string
	HTTPStatus       int
	ValidTransitions []string
	Err              error
}

// HTTPError is the JSON body written for failed requests.
type HTTPError struct {
	Code             string   `json:"code"`
	Error            string   `json:"error"`
	ValidTransitions []string `json:"valid_transitions,omitempty"`
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// WithTransitions attaches the states an aggregate may still move to.
func (e *AppError) WithTransitions(states []string) *AppError {
	e.ValidTransitions = states
	return e
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{
		Code:             e.Code,
		Error:            e.Message,
		ValidTransitions: e.ValidTransitions,
	}
}
