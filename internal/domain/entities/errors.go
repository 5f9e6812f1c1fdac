package entities

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures so adapters can map them without string matching.
type ErrorKind string

const (
	KindInvalidInput           ErrorKind = "INVALID_INPUT"
	KindBelowMinimumSize       ErrorKind = "BELOW_MINIMUM_SIZE"
	KindBelowMinimumOrder      ErrorKind = "BELOW_MINIMUM_ORDER"
	KindInvalidState           ErrorKind = "INVALID_STATE"
	KindDepositRequired        ErrorKind = "DEPOSIT_REQUIRED"
	KindAlreadyConfirmed       ErrorKind = "ALREADY_CONFIRMED"
	KindAlreadyConverted       ErrorKind = "ALREADY_CONVERTED"
	KindQuoteExpired           ErrorKind = "QUOTE_EXPIRED"
	KindQuantitiesNotConfirmed ErrorKind = "QUANTITIES_NOT_CONFIRMED"
	KindConcurrentModification ErrorKind = "CONCURRENT_MODIFICATION"
)

// DomainError is a typed rejection raised by the calculators and the state machines.
//
// Two DomainErrors match under errors.Is when they share the same Kind, so callers can
// compare against the Err* values below regardless of the message.
type DomainError struct {
	Kind             ErrorKind
	Message          string
	ValidTransitions []string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewDomainError(kind ErrorKind, format string, args ...any) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithTransitions returns a copy carrying the states that are still reachable.
func (e *DomainError) WithTransitions(states []string) *DomainError {
	cp := *e
	cp.ValidTransitions = append([]string(nil), states...)
	return &cp
}

var (
	ErrInvalidInput           = &DomainError{Kind: KindInvalidInput, Message: "invalid input"}
	ErrBelowMinimumSize       = &DomainError{Kind: KindBelowMinimumSize, Message: "box is smaller than 200x200x100 mm"}
	ErrBelowMinimumOrder      = &DomainError{Kind: KindBelowMinimumOrder, Message: "order is below the minimum priceable area"}
	ErrInvalidState           = &DomainError{Kind: KindInvalidState, Message: "operation not allowed in current state"}
	ErrDepositRequired        = &DomainError{Kind: KindDepositRequired, Message: "deposit must be paid first"}
	ErrAlreadyConfirmed       = &DomainError{Kind: KindAlreadyConfirmed, Message: "quantities already confirmed"}
	ErrAlreadyConverted       = &DomainError{Kind: KindAlreadyConverted, Message: "quote already converted"}
	ErrQuoteExpired           = &DomainError{Kind: KindQuoteExpired, Message: "quote expired"}
	ErrQuantitiesNotConfirmed = &DomainError{Kind: KindQuantitiesNotConfirmed, Message: "quantities must be confirmed before dispatch"}
	ErrConcurrentModification = &DomainError{Kind: KindConcurrentModification, Message: "resource was modified by another process"}
)

// KindOf extracts the ErrorKind of err, if it wraps a DomainError.
func KindOf(err error) (ErrorKind, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// TransitionsOf returns the valid next states carried by err, if any.
func TransitionsOf(err error) []string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.ValidTransitions
	}
	return nil
}
