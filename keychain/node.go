// Package keychain implements the BIP-32 extended-key tree: the Node
// record, hardened/normal child derivation, path parsing, and the
// 78-byte canonical serialization. This is C4 of the engine design —
// see SPEC_FULL.md §4.1.
package keychain

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/czh0526/hdwallet/ecc"
	"github.com/czh0526/hdwallet/primitives"
)

// HardenedKeyStart is the first index (2^31) reserved for hardened
// derivation, per BIP-32.
const HardenedKeyStart = 0x80000000

// seedHMACKey is the fixed HMAC-SHA512 key used to derive a master node
// from a seed, per BIP-32.
var seedHMACKey = []byte("Bitcoin seed")

// Node is an extended key: a 32-byte chain code plus either a private
// scalar or a compressed public point, together with the derivation
// metadata (depth, parent fingerprint, child number) BIP-32 requires.
type Node struct {
	params *chaincfg.Params

	isPrivate bool
	secret    [32]byte // valid iff isPrivate
	pubKey    [33]byte // always valid; derived from secret when private

	chainCode [32]byte
	depth     uint8
	parentFP  uint32
	childNum  uint32
}

// NewMasterNode derives the master node of an HD tree from a seed, per
// BIP-32: I = HMAC-SHA512(key="Bitcoin seed", msg=seed); IL is the
// master secret, IR the master chain code.
func NewMasterNode(seed []byte, params *chaincfg.Params) (*Node, error) {
	mac := hmac.New(sha512.New, seedHMACKey)
	mac.Write(seed)
	i := mac.Sum(nil)
	il, ir := i[:32], i[32:]

	priv, err := ecc.PrivKeyFromScalar(il)
	if err != nil {
		return nil, ErrInvalidSeed
	}

	n := &Node{params: params, isPrivate: true}
	copy(n.secret[:], priv.Serialize())
	copy(n.pubKey[:], ecc.CompressedPubKey(priv))
	copy(n.chainCode[:], ir)
	return n, nil
}

// newPrivateNode builds a fully-formed private node from its raw fields,
// computing the derived public key.
func newPrivateNode(params *chaincfg.Params, secret, chainCode []byte,
	depth uint8, parentFP, childNum uint32) (*Node, error) {

	priv, err := ecc.PrivKeyFromScalar(secret)
	if err != nil {
		return nil, err
	}
	n := &Node{
		params:    params,
		isPrivate: true,
		depth:     depth,
		parentFP:  parentFP,
		childNum:  childNum,
	}
	copy(n.secret[:], priv.Serialize())
	copy(n.pubKey[:], ecc.CompressedPubKey(priv))
	copy(n.chainCode[:], chainCode)
	return n, nil
}

// newPublicNode builds a public-only node from its raw fields.
func newPublicNode(params *chaincfg.Params, pubKey, chainCode []byte,
	depth uint8, parentFP, childNum uint32) (*Node, error) {

	if _, err := btcec.ParsePubKey(pubKey); err != nil {
		return nil, ErrInvalidPublicKey
	}
	n := &Node{
		params:   params,
		depth:    depth,
		parentFP: parentFP,
		childNum: childNum,
	}
	copy(n.pubKey[:], pubKey)
	copy(n.chainCode[:], chainCode)
	return n, nil
}

// IsPrivate reports whether the node carries a private scalar.
func (n *Node) IsPrivate() bool { return n.isPrivate }

// Depth returns the node's depth in the tree (0 for a master node).
func (n *Node) Depth() uint8 { return n.depth }

// ChildNum returns the child index this node was derived at (0 for a
// master node). The high bit is set for hardened indices.
func (n *Node) ChildNum() uint32 { return n.childNum }

// ParentFingerprint returns the fingerprint of the parent node (0 for a
// master node).
func (n *Node) ParentFingerprint() uint32 { return n.parentFP }

// ChainCode returns the 32-byte chain code.
func (n *Node) ChainCode() [32]byte { return n.chainCode }

// PubKeyCompressed returns the 33-byte compressed public key.
func (n *Node) PubKeyCompressed() []byte {
	out := make([]byte, 33)
	copy(out, n.pubKey[:])
	return out
}

// Fingerprint returns the first four bytes of Hash160(compressed
// pubkey), identifying this node to its children.
func (n *Node) Fingerprint() uint32 {
	return primitives.Fingerprint(n.pubKey[:])
}

// Params returns the network parameters this node was constructed with.
func (n *Node) Params() *chaincfg.Params { return n.params }

// PrivKey returns the node's private key, failing if the node is
// public-only.
func (n *Node) PrivKey() (*btcec.PrivateKey, error) {
	if !n.isPrivate {
		return nil, ErrPublicOnly
	}
	priv, _ := btcec.PrivKeyFromBytes(n.secret[:])
	return priv, nil
}

// Neuter returns a public-only copy of n: same chain code, depth, parent
// fingerprint and child number, but with the private scalar stripped.
func (n *Node) Neuter() *Node {
	pub := &Node{
		params:    n.params,
		isPrivate: false,
		chainCode: n.chainCode,
		depth:     n.depth,
		parentFP:  n.parentFP,
		childNum:  n.childNum,
	}
	copy(pub.pubKey[:], n.pubKey[:])
	return pub
}

// Address returns the P2PKH address (btcutil.Address) owning this
// node's public key.
func (n *Node) Address() (btcutil.Address, error) {
	hash160 := primitives.Hash160(n.pubKey[:])
	return btcutil.NewAddressPubKeyHash(hash160, n.params)
}

// Hash160 returns the 20-byte hash of this node's compressed public key.
func (n *Node) Hash160() []byte {
	return primitives.Hash160(n.pubKey[:])
}

// WIF returns the Wallet Import Format encoding of the private key
// (compressed), failing if the node is public-only.
func (n *Node) WIF() (string, error) {
	priv, err := n.PrivKey()
	if err != nil {
		return "", err
	}
	wif, err := btcutil.NewWIF(priv, n.params, true)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}

// Child derives the i'th child of n (hardened if i >= HardenedKeyStart).
// See SPEC_FULL.md §4.1 for the exact CKD algorithm.
func (n *Node) Child(i uint32) (*Node, error) {
	hardened := i >= HardenedKeyStart

	if hardened && !n.isPrivate {
		return nil, ErrDerivationFailed
	}

	data := make([]byte, 0, 37)
	if hardened {
		data = append(data, 0x00)
		data = append(data, n.secret[:]...)
	} else {
		data = append(data, n.pubKey[:]...)
	}
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], i)
	data = append(data, idx[:]...)

	mac := hmac.New(sha512.New, n.chainCode[:])
	mac.Write(data)
	sum := mac.Sum(nil)
	il, ir := sum[:32], sum[32:]

	parentFP := n.Fingerprint()

	if n.isPrivate {
		childSecret, ilOverflow, isZero := ecc.CombineChildScalar(il, n.secret[:])
		if ilOverflow || isZero {
			return nil, ErrDerivationFailed
		}
		return newPrivateNode(n.params, childSecret[:], ir, n.depth+1, parentFP, i)
	}

	childPub, err := ecc.AddPoints(il, n.pubKey[:])
	if err != nil {
		return nil, ErrDerivationFailed
	}
	return newPublicNode(n.params, childPub, ir, n.depth+1, parentFP, i)
}
