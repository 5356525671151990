package wallet

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/czh0526/hdwallet/ecc"
	"github.com/czh0526/hdwallet/keychain"
	"github.com/czh0526/hdwallet/primitives"
)

func signDER(priv *btcec.PrivateKey, hash []byte) []byte {
	return ecc.SignDER(priv, hash)
}

func compressedPubKey(priv *btcec.PrivateKey) []byte {
	return ecc.CompressedPubKey(priv)
}

// findSigningKey walks both chains' first SigningKeySearchDepth indices
// looking for the private key whose compressed-pubkey hash160 matches
// hash160, per SPEC_FULL.md §4.4 step 5. The account node must itself be
// private; a public-only wallet always fails with ErrNoPrivateAccount.
func (w *Wallet) findSigningKey(hash160 []byte) (*btcec.PrivateKey, error) {
	if !w.account.IsPrivate() {
		return nil, ErrNoPrivateAccount
	}

	for _, branch := range []uint32{keychain.ExternalBranch, keychain.InternalBranch} {
		branchNode, err := w.account.Child(branch)
		if err != nil {
			return nil, err
		}
		for index := uint32(0); index < SigningKeySearchDepth; index++ {
			path := keychain.DerivationPath{Branch: branch, Index: index}
			if cached, err := w.privKeyCache.Get(path); err == nil {
				if bytes.Equal(hash160FromPriv(cached.key), hash160) {
					return cached.key, nil
				}
				continue
			}

			child, err := branchNode.Child(index)
			if err != nil {
				return nil, err
			}
			if !bytes.Equal(child.Hash160(), hash160) {
				continue
			}
			priv, err := child.PrivKey()
			if err != nil {
				return nil, err
			}
			w.privKeyCache.Put(path, &cachedKey{key: priv})
			return priv, nil
		}
	}

	return nil, ErrMissingKey
}

func hash160FromPriv(priv *btcec.PrivateKey) []byte {
	return primitives.Hash160(ecc.CompressedPubKey(priv))
}
