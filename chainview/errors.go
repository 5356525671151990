package chainview

import "errors"

var (
	// ErrMalformedTransaction is returned by AddTransaction when raw does
	// not decode as a legacy-serialized transaction.
	ErrMalformedTransaction = errors.New("chainview: malformed transaction")

	// ErrUnknownTransaction is returned by TransactionToHistoryItem when
	// asked about a hash the view has never stored.
	ErrUnknownTransaction = errors.New("chainview: unknown transaction")
)
