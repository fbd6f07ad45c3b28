package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors of the backend boundary. Callers match with errors.Is;
// raw HTTP status codes never cross this package.
var (
	// ErrNotLoggedIn the session holds no valid token (local absence or a
	// 401 from the backend, which also clears the session).
	ErrNotLoggedIn = errors.New("dclex: not logged in")

	// ErrNotAuthorized the account lacks a capability for this resource
	// (403). Distinct from insufficient funds.
	ErrNotAuthorized = errors.New("dclex: not authorized")

	// ErrNotEnoughFunds backend rejected a value-moving request for lack of
	// balance (errorCode INSUFFICIENT_FUNDS).
	ErrNotEnoughFunds = errors.New("dclex: not enough funds")

	// ErrSignatureVerification the backend could not verify the signed
	// login message (errorCode MESSAGE_VERIFICATION_ERROR).
	ErrSignatureVerification = errors.New("dclex: signed message verification failed")

	// ErrAccountNotVerified the account has not passed verification, either
	// detected locally or reported by the backend (errorCode
	// ACCOUNT_NOT_FOUND).
	ErrAccountNotVerified = errors.New("dclex: account not verified")
)

// errorCodes maps backend error codes to sentinels. Unknown codes stay
// opaque but keep the original code for forward compatibility.
var errorCodes = map[string]error{
	"INSUFFICIENT_FUNDS":         ErrNotEnoughFunds,
	"MESSAGE_VERIFICATION_ERROR": ErrSignatureVerification,
	"ACCOUNT_NOT_FOUND":          ErrAccountNotVerified,
}

// APIError is a backend-reported domain error keyed by its error code. It
// unwraps to the mapped sentinel, so errors.Is(err, ErrNotEnoughFunds)
// works regardless of which endpoint produced the code.
type APIError struct {
	Code string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dclex: backend error %s", e.Code)
}

func (e *APIError) Unwrap() error {
	return errorCodes[e.Code]
}

// TransportError is any network failure or non-2xx response not otherwise
// classified. The library never retries it.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dclex: transport failure: %v", e.Err)
	}
	return fmt.Sprintf("dclex: http %d: %s", e.Status, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
