// Package mnemonic implements BIP-39 code phrase generation and the
// code-phrase-to-seed conversion (PBKDF2-HMAC-SHA512, salted with
// "mnemonic" + passphrase, 2048 rounds), via tyler-smith/go-bip39.
package mnemonic

import (
	"errors"

	"github.com/tyler-smith/go-bip39"
)

// ErrInvalidCode is returned when the code phrase fails the BIP-39
// wordlist/checksum validation.
var ErrInvalidCode = errors.New("mnemonic: invalid code phrase")

// ErrEntropySize is returned when GenerateCode is asked for an entropy
// size outside BIP-39's allowed 128-256 bit range in 32-bit increments.
var ErrEntropySize = errors.New("mnemonic: entropy size must be 128-256 bits in 32-bit increments")

// GenerateCode returns a fresh BIP-39 code phrase built from
// bitSize bits of CSPRNG entropy (128, 160, 192, 224, or 256).
func GenerateCode(bitSize int) (string, error) {
	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", ErrEntropySize
	}
	return bip39.NewMnemonic(entropy)
}

// CodeToSeed converts a code phrase and an optional passphrase into a
// 64-byte seed. It validates the code against the BIP-39 wordlist and
// checksum before deriving.
func CodeToSeed(code, passphrase string) ([]byte, error) {
	if !bip39.IsMnemonicValid(code) {
		return nil, ErrInvalidCode
	}
	return bip39.NewSeed(code, passphrase), nil
}
