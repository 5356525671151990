package keychain

import "errors"

var (
	// ErrInvalidSeed is returned when a seed produces a master secret
	// that is zero or >= the curve order; callers should retry with a
	// different seed.
	ErrInvalidSeed = errors.New("keychain: seed produced an invalid master key")

	// ErrDerivationFailed covers every BIP-32 child-derivation rejection:
	// hardened derivation requested from a public-only node, or the
	// derived scalar/point landing on an invalid value.
	ErrDerivationFailed = errors.New("keychain: child derivation failed")

	// ErrPublicOnly is returned when an operation that needs the
	// private scalar is attempted on a public-only node.
	ErrPublicOnly = errors.New("keychain: node is public-only")

	// ErrInvalidPublicKey is returned when a serialized node's key data
	// does not parse as a valid compressed secp256k1 point.
	ErrInvalidPublicKey = errors.New("keychain: invalid public key")

	// ErrInvalidSerialization is returned when a 78-byte blob is
	// malformed (wrong length or bad private-key marker byte).
	ErrInvalidSerialization = errors.New("keychain: invalid extended key serialization")

	// ErrUnknownNetwork is returned when a serialized node's version
	// bytes don't match the active network's HD key IDs.
	ErrUnknownNetwork = errors.New("keychain: unrecognized extended key version")

	// ErrInvalidPath is returned when a derivation path string fails to
	// parse.
	ErrInvalidPath = errors.New("keychain: invalid derivation path")
)
