// Package wallet implements C7: a wallet bound to one account subtree,
// watching a fixed address-gap window on its external and internal
// chains, and assembling/signing spend transactions from the addresses
// it watches. See SPEC_FULL.md §4.4.
package wallet

import (
	"github.com/lightninglabs/neutrino/cache/lru"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/czh0526/hdwallet/chainview"
	"github.com/czh0526/hdwallet/keychain"
)

const (
	// AddressGapLimit is the number of addresses watched on each of the
	// external and internal chains, per SPEC_FULL.md §4.4.
	AddressGapLimit = 8

	// SigningKeySearchDepth bounds how many child indices CreateTx will
	// walk, on each branch, looking for the private key owning an
	// input's hash160. It is a distinct, larger constant from
	// AddressGapLimit: the gap window governs which addresses are
	// reported to the caller, while this bounds a worst-case linear
	// search. Carried over from the system this engine's design is
	// based on, which hardcodes a count of 16 in its signing-key scan.
	SigningKeySearchDepth = 16

	defaultKeyCacheSize = 1024
)

type cachedKey struct {
	key *btcec.PrivateKey
}

func (c *cachedKey) Size() (uint64, error) { return 1, nil }

// Wallet is bound to one account-level node, identified by its extended
// public key. If account carries a private scalar, the wallet can sign;
// otherwise CreateTx(should_sign=true) fails with ErrNoPrivateAccount.
type Wallet struct {
	account *keychain.Node
	view    *chainview.View

	privKeyCache *lru.Cache[keychain.DerivationPath, *cachedKey]
}

// New binds a wallet to account (the node at an m/44'/.../account' path,
// private or public-only) and a shared blockchain view.
func New(account *keychain.Node, view *chainview.View) *Wallet {
	return &Wallet{
		account:      account,
		view:         view,
		privKeyCache: lru.NewCache[keychain.DerivationPath, *cachedKey](defaultKeyCacheSize),
	}
}

// Account returns the bound account node.
func (w *Wallet) Account() *keychain.Node { return w.account }

// childNode derives account/branch/index directly; it does not consult
// the private-key cache.
func (w *Wallet) childNode(branch, index uint32) (*keychain.Node, error) {
	branchNode, err := w.account.Child(branch)
	if err != nil {
		return nil, err
	}
	return branchNode.Child(index)
}
