// Package walletapi implements C8, the API facade: one typed Go method
// per command in SPEC_FULL.md §6, dispatched through Engine, plus the
// error-code mapping of §7. The facade owns exactly the three objects
// SPEC_FULL.md §3 describes — Credentials, an optional master Node, and
// an optional account-bound Wallet — sharing one Blockchain view.
package walletapi

import (
	"errors"

	"github.com/czh0526/hdwallet/chainview"
	"github.com/czh0526/hdwallet/ecc"
	"github.com/czh0526/hdwallet/keychain"
	"github.com/czh0526/hdwallet/mnemonic"
	"github.com/czh0526/hdwallet/primitives"
	"github.com/czh0526/hdwallet/vault"
	"github.com/czh0526/hdwallet/wallet"
)

// Code is the API-facing error-kind enum, per SPEC_FULL.md §7. NONE is
// never emitted; its absence on the wire is what "success" means.
type Code int

const (
	NONE Code = iota
	MissingParam
	InvalidParam
	CredentialsNotAvailable
	Locked
	AuthFailed
	DerivationFailed
	MissingChildNode
	InsufficientFunds
	TransactionFailed
	PRNGUnavailable
)

// Error is the typed error every Engine method fails with; Dispatch (or
// a direct caller) reads Code off of it to build the wire error object.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// causeToCode classifies an internal package error into the API-facing
// Code that SPEC_FULL.md §7 requires it surface as.
func causeToCode(err error) Code {
	switch {
	case err == nil:
		return NONE
	case errors.Is(err, vault.ErrCredentialsNotAvailable):
		return CredentialsNotAvailable
	case errors.Is(err, vault.ErrLocked), errors.Is(err, wallet.ErrLocked):
		return Locked
	case errors.Is(err, vault.ErrAuthFailed):
		return AuthFailed
	case errors.Is(err, vault.ErrPRNGUnavailable):
		return PRNGUnavailable
	case errors.Is(err, vault.ErrMissingParam), errors.Is(err, vault.ErrMalformedCiphertext), errors.Is(err, vault.ErrDecryptFailed):
		return InvalidParam
	case errors.Is(err, keychain.ErrInvalidSeed),
		errors.Is(err, keychain.ErrDerivationFailed),
		errors.Is(err, keychain.ErrPublicOnly),
		errors.Is(err, keychain.ErrInvalidPath),
		errors.Is(err, ecc.ErrInvalidScalar):
		return DerivationFailed
	case errors.Is(err, keychain.ErrInvalidPublicKey),
		errors.Is(err, keychain.ErrInvalidSerialization),
		errors.Is(err, keychain.ErrUnknownNetwork),
		errors.Is(err, primitives.ErrBadChecksum),
		errors.Is(err, mnemonic.ErrInvalidCode),
		errors.Is(err, mnemonic.ErrEntropySize):
		return InvalidParam
	case errors.Is(err, wallet.ErrInsufficientFunds):
		return InsufficientFunds
	case errors.Is(err, wallet.ErrMissingKey),
		errors.Is(err, wallet.ErrInvalidRecipient),
		errors.Is(err, wallet.ErrNoPrivateAccount):
		return TransactionFailed
	case errors.Is(err, chainview.ErrMalformedTransaction),
		errors.Is(err, chainview.ErrUnknownTransaction):
		return InvalidParam
	case errors.Is(err, errMissingChildNode):
		return MissingChildNode
	default:
		return InvalidParam
	}
}

// asAPIError wraps err (if non-nil) as an *Error carrying the code
// causeToCode derives for it, unless err is already an *Error.
func asAPIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return newError(causeToCode(err), err.Error())
}
