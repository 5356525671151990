// Package vault implements the encrypted key vault (C5): a
// passphrase-derived key-encrypting key (KEK) guards an ephemeral
// symmetric key, which in turn is the only key that ever encrypts an
// extended private key at rest. See SPEC_FULL.md §4.2.
package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"io"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/pbkdf2"

	"github.com/czh0526/hdwallet/internal/zero"
)

const (
	// SaltSize is the size, in bytes, of the KDF salt.
	SaltSize = 32

	// KeySize is the size, in bytes, of the KEK and the ephemeral key.
	KeySize = 32

	// KDFIterations is the PBKDF2-HMAC-SHA512 round count used to turn a
	// passphrase into a KEK. Chosen well above the spec's 32,768 floor.
	KDFIterations = 65536

	// nonceSize is the secretbox nonce size; it is stored as a prefix of
	// every ciphertext this package produces.
	nonceSize = 24
)

// passphraseCheckConstant is "Happynine Copyright 2014 Mike Tsao."
// hashed with SHA-256; it is what `check` must decrypt to for a
// passphrase to be accepted. The literal phrase is carried over from
// the system this engine's design is based on.
var passphraseCheckConstant = sha256.Sum256([]byte("Happynine Copyright 2014 Mike Tsao."))

// state is the Credentials state machine's three positions, per
// SPEC_FULL.md §3.
type state int

const (
	stateUnconfigured state = iota
	stateLocked
	stateUnlocked
)

// Credentials owns the passphrase-derived vault: the persisted
// (salt, check, ekey_enc) triple, and — only between Unlock and Lock —
// the derived KEK and the ephemeral key it decrypts. Per SPEC_FULL.md
// §5 the engine as a whole is single-threaded; Credentials still takes
// its own mutex in every exported method as a defensive measure.
type Credentials struct {
	mtx sync.Mutex

	st state

	salt     [SaltSize]byte
	check    []byte
	ekeyEnc  []byte

	kek           [KeySize]byte
	ephemeralKey  [KeySize]byte
}

// New returns a Credentials in the Unconfigured state.
func New() *Credentials {
	return &Credentials{}
}

// IsLocked reports whether the vault is in the Locked state (Unconfigured
// also reports true, since neither state has usable key material).
func (c *Credentials) IsLocked() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.st != stateUnlocked
}

// IsConfigured reports whether Load or SetPassphrase has ever run.
func (c *Credentials) IsConfigured() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.st != stateUnconfigured
}

// SetPassphrase generates a fresh salt and ephemeral key, derives a KEK
// from newPassphrase, and returns the (salt, check, ekey_enc) triple the
// caller must persist. It leaves the vault Unlocked.
func (c *Credentials) SetPassphrase(newPassphrase string) (salt, check, ekeyEnc []byte, err error) {
	var freshSalt [SaltSize]byte
	if _, err := io.ReadFull(rand.Reader, freshSalt[:]); err != nil {
		return nil, nil, nil, ErrPRNGUnavailable
	}

	var ephemeralKey [KeySize]byte
	if _, err := io.ReadFull(rand.Reader, ephemeralKey[:]); err != nil {
		return nil, nil, nil, ErrPRNGUnavailable
	}

	kek := deriveKEK([]byte(newPassphrase), freshSalt[:])

	checkCipher, err := encryptWith(kek, passphraseCheckConstant[:])
	if err != nil {
		zero.Bytea32(&kek)
		zero.Bytea32(&ephemeralKey)
		return nil, nil, nil, err
	}
	ekeyCipher, err := encryptWith(kek, ephemeralKey[:])
	if err != nil {
		zero.Bytea32(&kek)
		zero.Bytea32(&ephemeralKey)
		return nil, nil, nil, err
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.salt = freshSalt
	c.check = checkCipher
	c.ekeyEnc = ekeyCipher
	c.kek = kek
	c.ephemeralKey = ephemeralKey
	c.st = stateUnlocked

	return append([]byte(nil), freshSalt[:]...), checkCipher, ekeyCipher, nil
}

// Load installs a previously-persisted (salt, check, ekey_enc) triple
// and moves the vault to Locked. No cryptographic check happens until
// Unlock.
func (c *Credentials) Load(salt, check, ekeyEnc []byte) error {
	if len(salt) < SaltSize || len(check) < SaltSize || len(ekeyEnc) < SaltSize {
		return ErrMissingParam
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	copy(c.salt[:], salt[:SaltSize])
	c.check = append([]byte(nil), check...)
	c.ekeyEnc = append([]byte(nil), ekeyEnc...)
	c.st = stateLocked
	return nil
}

// Unlock recomputes the KEK from passphrase and attempts to decrypt
// `check`; on success it also decrypts `ekey_enc` into the ephemeral
// key and moves to Unlocked. On failure the vault stays Locked and any
// derived material is zeroized.
func (c *Credentials) Unlock(passphrase string) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.st == stateUnconfigured {
		return ErrCredentialsNotAvailable
	}

	kek := deriveKEK([]byte(passphrase), c.salt[:])

	plain, err := decryptWith(kek, c.check)
	if err != nil || !constantTimeEqual(plain, passphraseCheckConstant[:]) {
		zero.Bytea32(&kek)
		c.st = stateLocked
		log.Debugf("unlock attempt failed check decryption")
		return ErrAuthFailed
	}

	ephemeralKey, err := decryptWith(kek, c.ekeyEnc)
	if err != nil || len(ephemeralKey) != KeySize {
		zero.Bytea32(&kek)
		c.st = stateLocked
		return ErrAuthFailed
	}

	c.kek = kek
	copy(c.ephemeralKey[:], ephemeralKey)
	zero.Bytes(ephemeralKey)
	c.st = stateUnlocked
	log.Debugf("vault unlocked")
	return nil
}

// Lock zeroizes the KEK and the ephemeral key and returns the vault to
// Locked.
func (c *Credentials) Lock() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.lock()
}

func (c *Credentials) lock() {
	zero.Bytea32(&c.kek)
	zero.Bytea32(&c.ephemeralKey)
	if c.st == stateUnlocked {
		c.st = stateLocked
	}
}

// Encrypt authenticates and encrypts plain under the ephemeral key. It
// requires the vault to be Unlocked.
func (c *Credentials) Encrypt(plain []byte) ([]byte, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.st != stateUnlocked {
		return nil, ErrLocked
	}
	return encryptWith(c.ephemeralKey, plain)
}

// Decrypt authenticates and decrypts cipher under the ephemeral key. It
// requires the vault to be Unlocked.
func (c *Credentials) Decrypt(cipher []byte) ([]byte, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.st != stateUnlocked {
		return nil, ErrLocked
	}
	return decryptWith(c.ephemeralKey, cipher)
}

func deriveKEK(passphrase, salt []byte) [KeySize]byte {
	derived := pbkdf2.Key(passphrase, salt, KDFIterations, KeySize, sha512.New)
	var kek [KeySize]byte
	copy(kek[:], derived)
	zero.Bytes(derived)
	return kek
}

func encryptWith(key [KeySize]byte, plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, ErrPRNGUnavailable
	}
	sealed := secretbox.Seal(nonce[:], plain, &nonce, &key)
	return sealed, nil
}

func decryptWith(key [KeySize]byte, cipher []byte) ([]byte, error) {
	if len(cipher) < nonceSize {
		return nil, ErrMalformedCiphertext
	}
	var nonce [nonceSize]byte
	copy(nonce[:], cipher[:nonceSize])

	plain, ok := secretbox.Open(nil, cipher[nonceSize:], &nonce, &key)
	if !ok {
		return nil, ErrDecryptFailed
	}
	return plain, nil
}

func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := range a {
		v |= a[i] ^ b[i]
	}
	return v == 0
}
