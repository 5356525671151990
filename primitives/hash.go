// Package primitives implements the hashing and encoding building blocks
// shared by the rest of the engine: double-SHA256, RIPEMD160(SHA256(.))
// (hash160), and base58check.
package primitives

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // still the canonical hash160 half for this network
)

// Sha256d returns the double-SHA256 digest of b.
func Sha256d(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// Hash160 returns RIPEMD160(SHA256(b)), the 20-byte digest used for
// addresses and node fingerprints.
func Hash160(b []byte) []byte {
	sum := sha256.Sum256(b)
	ripe := ripemd160.New()
	ripe.Write(sum[:])
	return ripe.Sum(nil)
}

// Fingerprint returns the first four bytes of Hash160(compressedPubKey) as
// a big-endian uint32, per BIP-32.
func Fingerprint(compressedPubKey []byte) uint32 {
	h := Hash160(compressedPubKey)
	return uint32(h[0])<<24 | uint32(h[1])<<16 | uint32(h[2])<<8 | uint32(h[3])
}

// Base58CheckEncode base58check-encodes payload: base58(payload ||
// Sha256d(payload)[:4]).
func Base58CheckEncode(payload []byte) string {
	checksum := Sha256d(payload)[:4]
	buf := make([]byte, 0, len(payload)+4)
	buf = append(buf, payload...)
	buf = append(buf, checksum...)
	return base58.Encode(buf)
}

// Base58CheckDecode reverses Base58CheckEncode, validating the checksum.
func Base58CheckDecode(s string) ([]byte, error) {
	raw := base58.Decode(s)
	if len(raw) < 4 {
		return nil, ErrBadChecksum
	}
	payload := raw[:len(raw)-4]
	checksum := raw[len(raw)-4:]
	want := Sha256d(payload)[:4]
	for i := range want {
		if checksum[i] != want[i] {
			return nil, ErrBadChecksum
		}
	}
	return payload, nil
}
