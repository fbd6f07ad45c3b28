package dclex

import (
	"github.com/pkg/errors"

	"github.com/dclex/dclex-go/dclex/client"
)

// Sentinels surfaced by facade workflows.
var (
	// ErrWithdrawalNotFound means the withdrawal id matches nothing in the
	// claimable set.
	ErrWithdrawalNotFound = errors.New("withdrawal not found among claimable withdrawals")

	// ErrIdentityAlreadyClaimed means the digital identity token has
	// already been minted for this account.
	ErrIdentityAlreadyClaimed = errors.New("digital identity already claimed")

	// ErrInconsistentState means the backend returned data that violates
	// its own invariants, for example duplicate withdrawal ids.
	ErrInconsistentState = errors.New("backend returned inconsistent state")
)

// Re-exported client sentinels so callers can match every failure with a
// single import.
var (
	ErrNotLoggedIn           = client.ErrNotLoggedIn
	ErrNotAuthorized         = client.ErrNotAuthorized
	ErrNotEnoughFunds        = client.ErrNotEnoughFunds
	ErrSignatureVerification = client.ErrSignatureVerification
	ErrAccountNotVerified    = client.ErrAccountNotVerified
)
