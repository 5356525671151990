package walletapi

import "github.com/czh0526/hdwallet/primitives"

// SetPassphraseResult is set-passphrase's response.
type SetPassphraseResult struct {
	Salt    string `json:"salt"`
	Check   string `json:"check"`
	EkeyEnc string `json:"ekey_enc"`
}

// SetPassphrase generates fresh vault key material under newPassphrase
// and returns the triple the host must persist.
func (e *Engine) SetPassphrase(newPassphrase string) (*SetPassphraseResult, error) {
	if newPassphrase == "" {
		return nil, newError(MissingParam, "new_passphrase is required")
	}
	salt, check, ekeyEnc, err := e.creds.SetPassphrase(newPassphrase)
	if err != nil {
		return nil, asAPIError(err)
	}
	return &SetPassphraseResult{
		Salt:    primitives.ToHex(salt),
		Check:   primitives.ToHex(check),
		EkeyEnc: primitives.ToHex(ekeyEnc),
	}, nil
}

// SetCredentials loads a previously-persisted vault triple, moving the
// vault to Locked.
func (e *Engine) SetCredentials(saltHex, checkHex, ekeyEncHex string) error {
	salt, err := primitives.FromHex(saltHex)
	if err != nil {
		return newError(InvalidParam, "salt is not valid hex")
	}
	check, err := primitives.FromHex(checkHex)
	if err != nil {
		return newError(InvalidParam, "check is not valid hex")
	}
	ekeyEnc, err := primitives.FromHex(ekeyEncHex)
	if err != nil {
		return newError(InvalidParam, "ekey_enc is not valid hex")
	}
	if err := e.creds.Load(salt, check, ekeyEnc); err != nil {
		return asAPIError(err)
	}
	return nil
}

// Unlock attempts to unlock the vault with passphrase.
func (e *Engine) Unlock(passphrase string) error {
	if passphrase == "" {
		return newError(MissingParam, "passphrase is required")
	}
	if err := e.creds.Unlock(passphrase); err != nil {
		return asAPIError(err)
	}
	return nil
}
