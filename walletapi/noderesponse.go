package walletapi

import (
	"fmt"

	"github.com/czh0526/hdwallet/keychain"
	"github.com/czh0526/hdwallet/primitives"
	"github.com/czh0526/hdwallet/vault"
)

// NodeResponse mirrors SPEC_FULL.md §6's "node response" shape.
type NodeResponse struct {
	Fp          string  `json:"fp"`
	Pfp         string  `json:"pfp"`
	ChildNum    uint32  `json:"child_num"`
	ExtPubB58   string  `json:"ext_pub_b58"`
	ExtPrvEnc   *string `json:"ext_prv_enc,omitempty"`
	ExtPrvB58   *string `json:"ext_prv_b58,omitempty"`
}

// buildNodeResponse describes n. If creds is Unlocked and includePriv is
// true and n carries a private scalar, the response also includes
// ext_prv_enc (the private serialization encrypted under the vault's
// ephemeral key) and ext_prv_b58 (the plaintext base58check form).
func buildNodeResponse(n *keychain.Node, creds *vault.Credentials, includePriv bool) (*NodeResponse, error) {
	resp := &NodeResponse{
		Fp:        fmt.Sprintf("0x%08x", n.Fingerprint()),
		Pfp:       fmt.Sprintf("0x%08x", n.ParentFingerprint()),
		ChildNum:  n.ChildNum(),
		ExtPubB58: n.String(),
	}

	if !includePriv || !n.IsPrivate() {
		return resp, nil
	}

	prvB58, err := n.StringPrivate()
	if err != nil {
		return nil, err
	}

	if creds != nil && !creds.IsLocked() {
		raw, err := n.SerializePrivate()
		if err != nil {
			return nil, err
		}
		cipher, err := creds.Encrypt(raw)
		if err != nil {
			return nil, err
		}
		hexCipher := primitives.ToHex(cipher)
		resp.ExtPrvEnc = &hexCipher
		resp.ExtPrvB58 = &prvB58
	}

	return resp, nil
}
