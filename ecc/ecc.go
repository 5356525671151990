// Package ecc wraps the secp256k1 scalar and point arithmetic the key
// tree and the transaction signer need: private-to-public derivation,
// scalar and point addition modulo the curve order, and deterministic
// ECDSA signing (RFC 6979) over the legacy sighash.
package ecc

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// ErrInvalidScalar is returned when a 32-byte scalar is zero or is not
// strictly less than the curve order N, both of which BIP-32 treats as
// "derivation failed, try the next index" rather than a hard error.
var ErrInvalidScalar = errors.New("ecc: scalar is zero or >= curve order")

// PrivKeyFromScalar validates a 32-byte scalar and wraps it as a private
// key. It fails exactly when BIP-32 child derivation must reject the
// candidate: k == 0 or k >= N.
func PrivKeyFromScalar(k []byte) (*btcec.PrivateKey, error) {
	if len(k) != 32 {
		return nil, ErrInvalidScalar
	}
	var modN btcec.ModNScalar
	overflow := modN.SetByteSlice(k)
	if overflow || modN.IsZero() {
		return nil, ErrInvalidScalar
	}
	priv, _ := btcec.PrivKeyFromBytes(k)
	return priv, nil
}

// CombineChildScalar computes (il + parentSecret) mod N, the private-key
// half of CKDpriv. It reports ilOverflow when il itself was >= N (BIP-32
// says to reject the index without reducing) and isZero when the
// resulting child scalar is zero; either condition means the caller must
// reject this index.
func CombineChildScalar(il, parentSecret []byte) (child [32]byte, ilOverflow, isZero bool) {
	var ilScalar, secretScalar btcec.ModNScalar
	ilOverflow = ilScalar.SetByteSlice(il)
	secretScalar.SetByteSlice(parentSecret)
	ilScalar.Add(&secretScalar)
	return ilScalar.Bytes(), ilOverflow, ilScalar.IsZero()
}

// AddPoints returns the compressed serialization of IL*G + parentPub,
// used for public-only (watch-only) child derivation.
func AddPoints(il []byte, parentPubCompressed []byte) ([]byte, error) {
	var modN btcec.ModNScalar
	overflow := modN.SetByteSlice(il)
	if overflow {
		return nil, ErrInvalidScalar
	}

	parentPub, err := btcec.ParsePubKey(parentPubCompressed)
	if err != nil {
		return nil, err
	}

	var ilPoint, parentPoint, sum btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&modN, &ilPoint)
	parentPub.AsJacobian(&parentPoint)
	btcec.AddNonConst(&ilPoint, &parentPoint, &sum)
	if sum.Z.IsZero() {
		// Point at infinity: the BIP-32 spec says to reject this index.
		return nil, ErrInvalidScalar
	}
	sum.ToAffine()

	childPub := btcec.NewPublicKey(&sum.X, &sum.Y)
	return childPub.SerializeCompressed(), nil
}

// CompressedPubKey returns the 33-byte compressed serialization of priv's
// public key.
func CompressedPubKey(priv *btcec.PrivateKey) []byte {
	return priv.PubKey().SerializeCompressed()
}

// SignDER produces an RFC-6979-deterministic ECDSA signature over hash
// (a pre-computed digest, never re-hashed here) and returns its DER
// encoding.
func SignDER(priv *btcec.PrivateKey, hash []byte) []byte {
	sig := ecdsa.Sign(priv, hash)
	return sig.Serialize()
}

// VerifyDER verifies a DER-encoded signature over hash against pubKey
// (compressed or uncompressed serialization).
func VerifyDER(pubKeyBytes, hash, derSig []byte) (bool, error) {
	pubKey, err := btcec.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false, err
	}
	sig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		return false, err
	}
	return sig.Verify(hash, pubKey), nil
}
