package keychain

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// TestBip32Vector1 is BIP-32 test vector 1, seed
// 000102030405060708090a0b0c0d0e0f.
func TestBip32Vector1(t *testing.T) {
	seed := mustHex(t, "000102030405060708090a0b0c0d0e0f")

	master, err := NewMasterNode(seed, &chaincfg.MainNetParams)
	require.NoError(t, err)

	assert.Equal(t,
		"xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8",
		master.String())
	assert.Equal(t, uint32(0x3442193e), master.Fingerprint())
	assert.Equal(t, uint8(0), master.Depth())
	assert.Equal(t, uint32(0), master.ParentFingerprint())

	child, err := master.Child(HardenedKeyStart)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x5c1bd648), child.Fingerprint())
	assert.Equal(t, uint8(1), child.Depth())
	assert.Equal(t, uint32(HardenedKeyStart), child.ChildNum())
}

func TestRoundTripSerialization(t *testing.T) {
	seed := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	master, err := NewMasterNode(seed, &chaincfg.MainNetParams)
	require.NoError(t, err)

	raw, err := master.SerializePrivate()
	require.NoError(t, err)
	require.Len(t, raw, 78)

	restored, err := ParseNodeBytes(raw, &chaincfg.MainNetParams)
	require.NoError(t, err)
	assert.True(t, restored.IsPrivate())
	assert.Equal(t, master.Fingerprint(), restored.Fingerprint())

	restoredRaw, err := restored.SerializePrivate()
	require.NoError(t, err)
	assert.Equal(t, raw, restoredRaw)

	pubRaw := master.SerializePublic()
	require.Len(t, pubRaw, 78)
	restoredPub, err := ParseNodeBytes(pubRaw, &chaincfg.MainNetParams)
	require.NoError(t, err)
	assert.False(t, restoredPub.IsPrivate())
	assert.Equal(t, pubRaw, restoredPub.SerializePublic())
}

func TestChildDerivationInvariants(t *testing.T) {
	seed := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	master, err := NewMasterNode(seed, &chaincfg.MainNetParams)
	require.NoError(t, err)

	for _, idx := range []uint32{0, 1, HardenedKeyStart, HardenedKeyStart + 1} {
		child, err := master.Child(idx)
		require.NoError(t, err)
		assert.NotZero(t, child.Fingerprint())
		assert.Equal(t, master.Depth()+1, child.Depth())
		assert.Equal(t, master.Fingerprint(), child.ParentFingerprint())
	}
}

func TestHardenedFromPublicOnlyFails(t *testing.T) {
	seed := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	master, err := NewMasterNode(seed, &chaincfg.MainNetParams)
	require.NoError(t, err)

	pubOnly := master.Neuter()
	assert.False(t, pubOnly.IsPrivate())

	_, err = pubOnly.Child(HardenedKeyStart)
	assert.ErrorIs(t, err, ErrDerivationFailed)

	// Normal derivation still works on a public-only node.
	child, err := pubOnly.Child(0)
	require.NoError(t, err)
	assert.False(t, child.IsPrivate())

	privChild, err := master.Child(0)
	require.NoError(t, err)
	assert.Equal(t, privChild.PubKeyCompressed(), child.PubKeyCompressed())
}

func TestParsePathAndDerive(t *testing.T) {
	indices, err := ParsePath("m/0'/1/2147483647")
	require.NoError(t, err)
	assert.Equal(t, []uint32{HardenedKeyStart, 1, 2147483647}, indices)

	seed := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	master, err := NewMasterNode(seed, &chaincfg.MainNetParams)
	require.NoError(t, err)

	viaPath, err := DeriveFromPath(master, "m/0'/1")
	require.NoError(t, err)

	viaCalls, err := master.Child(HardenedKeyStart)
	require.NoError(t, err)
	viaCalls, err = viaCalls.Child(1)
	require.NoError(t, err)

	assert.Equal(t, viaCalls.Fingerprint(), viaPath.Fingerprint())
}

func TestParsePathRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"m/", "m//0", "m/abc", "m/4294967296"} {
		_, err := ParsePath(bad)
		assert.Error(t, err, bad)
	}
}
