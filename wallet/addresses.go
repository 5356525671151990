package wallet

import (
	"github.com/btcsuite/btcd/btcutil"

	"github.com/czh0526/hdwallet/keychain"
)

// WatchedAddress is one address within a wallet's gap window.
type WatchedAddress struct {
	Branch  uint32
	Index   uint32
	Hash160 []byte
	Address btcutil.Address
}

// ExternalAddresses returns the AddressGapLimit external (receiving)
// addresses, at indices 0..AddressGapLimit-1.
func (w *Wallet) ExternalAddresses() ([]WatchedAddress, error) {
	return w.branchAddresses(keychain.ExternalBranch)
}

// InternalAddresses returns the AddressGapLimit internal (change)
// addresses, at indices 0..AddressGapLimit-1.
func (w *Wallet) InternalAddresses() ([]WatchedAddress, error) {
	return w.branchAddresses(keychain.InternalBranch)
}

func (w *Wallet) branchAddresses(branch uint32) ([]WatchedAddress, error) {
	branchNode, err := w.account.Child(branch)
	if err != nil {
		return nil, err
	}

	out := make([]WatchedAddress, 0, AddressGapLimit)
	for index := uint32(0); index < AddressGapLimit; index++ {
		child, err := branchNode.Child(index)
		if err != nil {
			return nil, err
		}
		addr, err := child.Address()
		if err != nil {
			return nil, err
		}
		out = append(out, WatchedAddress{
			Branch:  branch,
			Index:   index,
			Hash160: child.Hash160(),
			Address: addr,
		})
	}
	return out, nil
}

// WatchedHash160s returns the hash160 of every address in the gap
// window across both chains, for use as a chainview query filter.
func (w *Wallet) WatchedHash160s() ([][]byte, error) {
	ext, err := w.ExternalAddresses()
	if err != nil {
		return nil, err
	}
	intl, err := w.InternalAddresses()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(ext)+len(intl))
	for _, a := range ext {
		out = append(out, a.Hash160)
	}
	for _, a := range intl {
		out = append(out, a.Hash160)
	}
	return out, nil
}

// Balance returns the total value of unspent outputs paying any watched
// address.
func (w *Wallet) Balance() (int64, error) {
	hash160s, err := w.WatchedHash160s()
	if err != nil {
		return 0, err
	}
	return w.view.GetAddressesBalance(hash160s), nil
}

// nextUnusedInternalIndex returns the first internal-chain index within
// the gap window whose address owns no transactions yet, or 0 if the
// window is fully used (index 0 is reused, per SPEC_FULL.md §4.4's
// documented simplification).
func (w *Wallet) nextUnusedInternalIndex() (uint32, error) {
	addrs, err := w.InternalAddresses()
	if err != nil {
		return 0, err
	}
	for _, a := range addrs {
		if w.view.GetAddressTxCount(a.Hash160) == 0 {
			return a.Index, nil
		}
	}
	return 0, nil
}
