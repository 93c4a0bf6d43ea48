package errdefs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable error classification. It is the value carried in
// async task failure payloads and the value handlers map to HTTP statuses.
type Kind string

const (
	KindClientNotExists      Kind = "client_not_exists"
	KindSubscriptionInactive Kind = "subscription_inactive"
	KindTransactionNotExists Kind = "transaction_not_exists"
	KindValidation           Kind = "validation_error"
	KindEmptyResult          Kind = "empty_result"
	KindStore                Kind = "store_error"
)

// Error is the domain error type. Every precondition and validation failure
// in the stores and the pipeline surfaces as one of these, so callers can
// branch on Kind instead of matching message text.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ClientNotExists(platformID string) *Error {
	return &Error{Kind: KindClientNotExists, Message: fmt.Sprintf("client %q not found", platformID)}
}

func SubscriptionInactive(clientID string) *Error {
	return &Error{Kind: KindSubscriptionInactive, Message: fmt.Sprintf("client %q has no active subscription", clientID)}
}

func TransactionNotExists(transactionID int64, clientID string) *Error {
	return &Error{Kind: KindTransactionNotExists, Message: fmt.Sprintf("transaction %d for client %q not found", transactionID, clientID)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func EmptyResult() *Error {
	return &Error{Kind: KindEmptyResult, Message: "no data in period"}
}

// Store wraps an underlying database failure. The raw error stays attached
// for logging but handlers report it generically.
func Store(err error) *Error {
	return &Error{Kind: KindStore, Message: "storage operation failed", Err: err}
}

// KindOf extracts the Kind from err. Anything that is not a domain error is
// classified as a store error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStore
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps a domain error to the status the HTTP layer responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindClientNotExists, KindTransactionNotExists, KindEmptyResult:
		return http.StatusNotFound
	case KindSubscriptionInactive:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// PublicMessage is the message exposed to API callers. Store errors are
// reported generically so schema details never leak.
func PublicMessage(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Kind != KindStore {
		return de.Message
	}
	return "database error, check the request"
}
