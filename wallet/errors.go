package wallet

import "errors"

var (
	// ErrInsufficientFunds is returned by CreateTx when the wallet's
	// known unspent outputs cannot cover fee + recipient values.
	ErrInsufficientFunds = errors.New("wallet: insufficient funds")

	// ErrLocked is returned by CreateTx when should_sign is requested
	// but the bound credentials are Locked.
	ErrLocked = errors.New("wallet: credentials locked")

	// ErrMissingKey is returned when no child index within the bounded
	// search depth owns the hash160 a selected input requires signing
	// for.
	ErrMissingKey = errors.New("wallet: signing key not found within search depth")

	// ErrInvalidRecipient is returned by CreateTx when a recipient
	// carries a non-positive value or a malformed hash160.
	ErrInvalidRecipient = errors.New("wallet: invalid recipient")

	// ErrNoPrivateAccount is returned when an operation needs the
	// account's private scalar but the wallet was constructed
	// public-only.
	ErrNoPrivateAccount = errors.New("wallet: account is public-only")
)
