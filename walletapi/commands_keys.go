package walletapi

import (
	"crypto/rand"
	"io"

	"github.com/czh0526/hdwallet/keychain"
	"github.com/czh0526/hdwallet/mnemonic"
	"github.com/czh0526/hdwallet/primitives"
	"github.com/czh0526/hdwallet/wallet"
)

// DeriveSeedFromCode turns a BIP-39 mnemonic code plus passphrase into a
// hex-encoded seed.
func (e *Engine) DeriveSeedFromCode(code, passphrase string) (string, error) {
	if code == "" {
		return "", newError(MissingParam, "code is required")
	}
	seed, err := mnemonic.CodeToSeed(code, passphrase)
	if err != nil {
		return "", asAPIError(err)
	}
	return primitives.ToHex(seed), nil
}

// DeriveMasterNode derives and binds the master node from a hex-encoded
// seed.
func (e *Engine) DeriveMasterNode(seedHex string) (*NodeResponse, error) {
	seed, err := primitives.FromHex(seedHex)
	if err != nil {
		return nil, newError(InvalidParam, "seed_hex is not valid hex")
	}
	master, err := keychain.NewMasterNode(seed, e.params)
	if err != nil {
		return nil, asAPIError(err)
	}
	e.master = master
	return buildNodeResponse(master, e.creds, true)
}

// GenerateMasterNode derives and binds a fresh master node from CSPRNG
// entropy.
func (e *Engine) GenerateMasterNode() (*NodeResponse, error) {
	seed := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, newError(PRNGUnavailable, "platform CSPRNG unavailable")
	}
	master, err := keychain.NewMasterNode(seed, e.params)
	if err != nil {
		return nil, asAPIError(err)
	}
	e.master = master
	return buildNodeResponse(master, e.creds, true)
}

// ImportMasterNode binds the master node either from an already-serialized
// extended private key (extPrvB58) or from a mnemonic code + passphrase.
// Exactly one of extPrvB58 or code should be non-empty.
func (e *Engine) ImportMasterNode(extPrvB58, code, passphrase string) (*NodeResponse, error) {
	var master *keychain.Node
	switch {
	case extPrvB58 != "":
		n, err := keychain.ParseNodeString(extPrvB58, e.params)
		if err != nil {
			return nil, asAPIError(err)
		}
		if !n.IsPrivate() {
			return nil, newError(InvalidParam, "ext_prv_b58 does not carry a private key")
		}
		master = n
	case code != "":
		seed, err := mnemonic.CodeToSeed(code, passphrase)
		if err != nil {
			return nil, asAPIError(err)
		}
		n, err := keychain.NewMasterNode(seed, e.params)
		if err != nil {
			return nil, asAPIError(err)
		}
		master = n
	default:
		return nil, newError(MissingParam, "either ext_prv_b58 or code is required")
	}

	e.master = master
	return buildNodeResponse(master, e.creds, true)
}

// DeriveChildNodeResult is derive-child-node's response.
type DeriveChildNodeResult struct {
	Node *NodeResponse `json:"node"`
	Path string        `json:"path"`
}

// DeriveChildNode derives the node at path from the bound master node.
// If isWatchOnly, the returned node (and the one this Engine continues
// to track under Wallet, if the caller restores it) is public-only.
func (e *Engine) DeriveChildNode(path string, isWatchOnly bool) (*DeriveChildNodeResult, error) {
	if e.master == nil {
		return nil, newError(MissingChildNode, "no master node bound; call derive-master-node/generate-master-node/import-master-node first")
	}
	child, err := keychain.DeriveFromPath(e.master, path)
	if err != nil {
		return nil, asAPIError(err)
	}
	if isWatchOnly {
		child = child.Neuter()
	}
	resp, err := buildNodeResponse(child, e.creds, true)
	if err != nil {
		return nil, asAPIError(err)
	}
	return &DeriveChildNodeResult{Node: resp, Path: path}, nil
}

// RestoreNode binds a Wallet to the account identified by extPubB58,
// optionally unwrapping extPrvEncHex (encrypted under the vault's
// ephemeral key, Unlocked required) to retain signing ability.
func (e *Engine) RestoreNode(extPubB58, extPrvEncHex string) (*NodeResponse, error) {
	pub, err := keychain.ParseNodeString(extPubB58, e.params)
	if err != nil {
		return nil, asAPIError(err)
	}

	account := pub
	if extPrvEncHex != "" {
		cipher, err := primitives.FromHex(extPrvEncHex)
		if err != nil {
			return nil, newError(InvalidParam, "ext_prv_enc is not valid hex")
		}
		raw, err := e.creds.Decrypt(cipher)
		if err != nil {
			return nil, asAPIError(err)
		}
		priv, err := keychain.ParseNodeBytes(raw, e.params)
		if err != nil {
			return nil, asAPIError(err)
		}
		account = priv
	}

	e.w = wallet.New(account, e.view)
	return buildNodeResponse(account, e.creds, true)
}

// DescribeNode parses and describes an extended public key without
// binding it to anything.
func (e *Engine) DescribeNode(extPubB58 string) (*NodeResponse, error) {
	n, err := keychain.ParseNodeString(extPubB58, e.params)
	if err != nil {
		return nil, asAPIError(err)
	}
	return buildNodeResponse(n, e.creds, false)
}

// DescribePrivateNode decrypts extPrvEncHex (requires Unlocked) and
// describes the resulting private node, including its plaintext
// ext_prv_b58.
func (e *Engine) DescribePrivateNode(extPrvEncHex string) (*NodeResponse, error) {
	cipher, err := primitives.FromHex(extPrvEncHex)
	if err != nil {
		return nil, newError(InvalidParam, "ext_prv_enc is not valid hex")
	}
	raw, err := e.creds.Decrypt(cipher)
	if err != nil {
		return nil, asAPIError(err)
	}
	n, err := keychain.ParseNodeBytes(raw, e.params)
	if err != nil {
		return nil, asAPIError(err)
	}
	return buildNodeResponse(n, e.creds, true)
}
