package vault

import "errors"

var (
	// ErrCredentialsNotAvailable is returned when Unlock is called
	// before Load or SetPassphrase has ever run.
	ErrCredentialsNotAvailable = errors.New("vault: no credentials loaded")

	// ErrLocked is returned by Encrypt/Decrypt when the vault is not
	// Unlocked.
	ErrLocked = errors.New("vault: locked")

	// ErrAuthFailed is returned by Unlock when the passphrase does not
	// reproduce a KEK that decrypts the check blob to the known
	// constant.
	ErrAuthFailed = errors.New("vault: authentication failed")

	// ErrMissingParam is returned by Load when salt/check/ekey_enc are
	// missing or too short.
	ErrMissingParam = errors.New("vault: missing or undersized salt/check/ekey_enc")

	// ErrPRNGUnavailable is returned when the platform CSPRNG fails to
	// produce the requested random bytes.
	ErrPRNGUnavailable = errors.New("vault: PRNG unavailable")

	// ErrMalformedCiphertext is returned when a ciphertext is shorter
	// than the nonce prefix.
	ErrMalformedCiphertext = errors.New("vault: malformed ciphertext")

	// ErrDecryptFailed is returned when authenticated decryption fails.
	ErrDecryptFailed = errors.New("vault: decryption failed")
)
