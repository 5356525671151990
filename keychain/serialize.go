package keychain

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/czh0526/hdwallet/primitives"
)

// SerializePublic returns the 78-byte canonical public serialization:
// version || depth || parent_fp || child_num || chain_code || pubkey.
func (n *Node) SerializePublic() []byte {
	return n.serialize(n.params.HDPublicKeyID[:], n.pubKey[:])
}

// SerializePrivate returns the 78-byte canonical private serialization,
// failing if the node is public-only.
func (n *Node) SerializePrivate() ([]byte, error) {
	if !n.isPrivate {
		return nil, ErrPublicOnly
	}
	keyData := make([]byte, 0, 33)
	keyData = append(keyData, 0x00)
	keyData = append(keyData, n.secret[:]...)
	return n.serialize(n.params.HDPrivateKeyID[:], keyData), nil
}

func (n *Node) serialize(version, keyData []byte) []byte {
	buf := make([]byte, 0, 78)
	buf = append(buf, version...)
	buf = append(buf, n.depth)

	var fp, cn [4]byte
	binary.BigEndian.PutUint32(fp[:], n.parentFP)
	binary.BigEndian.PutUint32(cn[:], n.childNum)
	buf = append(buf, fp[:]...)
	buf = append(buf, cn[:]...)

	buf = append(buf, n.chainCode[:]...)
	buf = append(buf, keyData...)
	return buf
}

// String returns the base58check encoding of the node's public
// serialization (an "xpub"-style string under the active network).
func (n *Node) String() string {
	return primitives.Base58CheckEncode(n.SerializePublic())
}

// StringPrivate returns the base58check encoding of the node's private
// serialization, failing if the node is public-only.
func (n *Node) StringPrivate() (string, error) {
	raw, err := n.SerializePrivate()
	if err != nil {
		return "", err
	}
	return primitives.Base58CheckEncode(raw), nil
}

// ParseNodeBytes reconstructs a Node from its raw 78-byte serialization.
func ParseNodeBytes(raw []byte, params *chaincfg.Params) (*Node, error) {
	if len(raw) != 78 {
		return nil, ErrInvalidSerialization
	}

	version := raw[0:4]
	depth := raw[4]
	parentFP := binary.BigEndian.Uint32(raw[5:9])
	childNum := binary.BigEndian.Uint32(raw[9:13])
	chainCode := raw[13:45]
	keyData := raw[45:78]

	switch {
	case bytes.Equal(version, params.HDPrivateKeyID[:]):
		if keyData[0] != 0x00 {
			return nil, ErrInvalidSerialization
		}
		return newPrivateNode(params, keyData[1:], chainCode, depth, parentFP, childNum)
	case bytes.Equal(version, params.HDPublicKeyID[:]):
		return newPublicNode(params, keyData, chainCode, depth, parentFP, childNum)
	default:
		return nil, ErrUnknownNetwork
	}
}

// ParseNodeString reconstructs a Node from its base58check-encoded
// serialization (an "xprv"/"xpub"-style string).
func ParseNodeString(s string, params *chaincfg.Params) (*Node, error) {
	raw, err := primitives.Base58CheckDecode(s)
	if err != nil {
		return nil, err
	}
	return ParseNodeBytes(raw, params)
}
