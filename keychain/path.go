package keychain

import (
	"strconv"
	"strings"
)

// DerivationPath identifies a node by its BIP-44-ish coordinates within
// an account: which chain (external/internal) and which index. It is a
// small comparable struct so it can key an LRU cache of derived private
// keys (see wallet.Wallet).
type DerivationPath struct {
	Branch uint32
	Index  uint32
}

// ExternalBranch and InternalBranch are the two standard BIP-44 chain
// numbers: 0 for receiving addresses, 1 for change addresses.
const (
	ExternalBranch uint32 = 0
	InternalBranch uint32 = 1
)

// ParsePath parses a path string like "m/0'/1/2147483647" into a
// sequence of child indices, with the hardened bit folded into each
// index per token ("'" or "h" suffix). A leading "m" token is optional
// and is otherwise treated as the identity (no derivation).
func ParsePath(path string) ([]uint32, error) {
	tokens := strings.Split(path, "/")
	if len(tokens) == 0 {
		return nil, ErrInvalidPath
	}

	start := 0
	if tokens[0] == "m" || tokens[0] == "M" || tokens[0] == "" {
		start = 1
	}

	indices := make([]uint32, 0, len(tokens))
	for _, tok := range tokens[start:] {
		if tok == "" {
			return nil, ErrInvalidPath
		}
		hardened := false
		if last := tok[len(tok)-1]; last == '\'' || last == 'h' || last == 'H' {
			hardened = true
			tok = tok[:len(tok)-1]
		}
		n, err := strconv.ParseUint(tok, 10, 32)
		if err != nil || n >= HardenedKeyStart {
			return nil, ErrInvalidPath
		}
		idx := uint32(n)
		if hardened {
			idx += HardenedKeyStart
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

// DeriveFromPath walks n through each index in path, in order, returning
// the resulting node. It fails with the first derivation error
// encountered, which is always ErrDerivationFailed or ErrInvalidPath.
func DeriveFromPath(n *Node, path string) (*Node, error) {
	indices, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	cur := n
	for _, idx := range indices {
		cur, err = cur.Child(idx)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// Bip44AccountPath returns the BIP-44 account-level path
// m/44'/coinType'/account' for the given coin type and account number.
func Bip44AccountPath(coinType, account uint32) string {
	return "m/44'/" + strconv.FormatUint(uint64(coinType), 10) + "'/" +
		strconv.FormatUint(uint64(account), 10) + "'"
}
