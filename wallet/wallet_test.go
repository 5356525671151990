package wallet

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czh0526/hdwallet/chainview"
	"github.com/czh0526/hdwallet/ecc"
	"github.com/czh0526/hdwallet/keychain"
	"github.com/czh0526/hdwallet/primitives"
	"github.com/czh0526/hdwallet/vault"
)

func shaD(b []byte) []byte { return primitives.Sha256d(b) }

func lockedCreds(t *testing.T) *vault.Credentials {
	t.Helper()
	c := vault.New()
	_, _, _, err := c.SetPassphrase("pw")
	require.NoError(t, err)
	c.Lock()
	return c
}

func testAccountNode(t *testing.T) *keychain.Node {
	t.Helper()
	seed := bytes.Repeat([]byte{0x07}, 32)
	master, err := keychain.NewMasterNode(seed, &chaincfg.MainNetParams)
	require.NoError(t, err)
	account, err := keychain.DeriveFromPath(master, keychain.Bip44AccountPath(0, 0))
	require.NoError(t, err)
	return account
}

func fundAddress(t *testing.T, v *chainview.View, hash160 []byte, value int64) wire.OutPoint {
	t.Helper()
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: ^uint32(0)}})
	tx.AddTxOut(&wire.TxOut{Value: value, PkScript: chainview.BuildP2PKHScript(hash160)})
	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))
	hash, err := v.AddTransaction(buf.Bytes())
	require.NoError(t, err)
	return wire.OutPoint{Hash: hash, Index: 0}
}

func TestExternalAddressesMatchGapLimit(t *testing.T) {
	account := testAccountNode(t)
	view := chainview.New()
	w := New(account, view)

	addrs, err := w.ExternalAddresses()
	require.NoError(t, err)
	assert.Len(t, addrs, AddressGapLimit)

	seen := make(map[string]bool)
	for _, a := range addrs {
		assert.False(t, seen[string(a.Hash160)], "gap window must not repeat an address")
		seen[string(a.Hash160)] = true
	}
}

func TestBalanceSumsUnspentOutputsAtWatchedAddresses(t *testing.T) {
	account := testAccountNode(t)
	view := chainview.New()
	w := New(account, view)

	addrs, err := w.ExternalAddresses()
	require.NoError(t, err)

	fundAddress(t, view, addrs[0].Hash160, 5000)
	fundAddress(t, view, addrs[1].Hash160, 7000)

	bal, err := w.Balance()
	require.NoError(t, err)
	assert.Equal(t, int64(12000), bal)
}

func TestCreateTxUnsignedProducesChangeOutput(t *testing.T) {
	account := testAccountNode(t)
	view := chainview.New()
	w := New(account, view)

	addrs, err := w.ExternalAddresses()
	require.NoError(t, err)
	fundAddress(t, view, addrs[0].Hash160, 10000)

	recipient := Recipient{Hash160: bytes.Repeat([]byte{0xaa}, 20), Value: 3000}
	raw, err := w.CreateTx([]Recipient{recipient}, 100, false, nil)
	require.NoError(t, err)

	tx := wire.NewMsgTx(wire.TxVersion)
	require.NoError(t, tx.Deserialize(bytes.NewReader(raw)))
	require.Len(t, tx.TxIn, 1)
	require.Len(t, tx.TxOut, 2)
	assert.Equal(t, int64(3000), tx.TxOut[0].Value)
	assert.Equal(t, int64(6900), tx.TxOut[1].Value)
}

func TestCreateTxFailsWithInsufficientFunds(t *testing.T) {
	account := testAccountNode(t)
	view := chainview.New()
	w := New(account, view)

	addrs, err := w.ExternalAddresses()
	require.NoError(t, err)
	fundAddress(t, view, addrs[0].Hash160, 100)

	_, err = w.CreateTx([]Recipient{{Hash160: bytes.Repeat([]byte{0xaa}, 20), Value: 3000}}, 0, false, nil)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestCreateTxSignedVerifies(t *testing.T) {
	account := testAccountNode(t)
	view := chainview.New()
	w := New(account, view)

	addrs, err := w.ExternalAddresses()
	require.NoError(t, err)
	fundAddress(t, view, addrs[0].Hash160, 10000)

	recipient := Recipient{Hash160: bytes.Repeat([]byte{0xbb}, 20), Value: 4000}
	raw, err := w.CreateTx([]Recipient{recipient}, 100, true, nil)
	require.NoError(t, err)

	tx := wire.NewMsgTx(wire.TxVersion)
	require.NoError(t, tx.Deserialize(bytes.NewReader(raw)))
	require.Len(t, tx.TxIn, 1)
	assert.NotEmpty(t, tx.TxIn[0].SignatureScript)

	sigLen := int(tx.TxIn[0].SignatureScript[0])
	derSig := tx.TxIn[0].SignatureScript[1 : 1+sigLen-1]
	pubKeyLenOffset := 1 + sigLen
	pubKeyLen := int(tx.TxIn[0].SignatureScript[pubKeyLenOffset])
	pubKey := tx.TxIn[0].SignatureScript[pubKeyLenOffset+1 : pubKeyLenOffset+1+pubKeyLen]

	preimage, err := sigHashPreimage(tx, 0, chainview.BuildP2PKHScript(addrs[0].Hash160))
	require.NoError(t, err)
	sigHash := shaD(preimage)

	ok, err := ecc.VerifyDER(pubKey, sigHash, derSig)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateTxSignedFailsWhenLocked(t *testing.T) {
	account := testAccountNode(t)
	view := chainview.New()
	w := New(account, view)

	addrs, err := w.ExternalAddresses()
	require.NoError(t, err)
	fundAddress(t, view, addrs[0].Hash160, 10000)

	_, err = w.CreateTx([]Recipient{{Hash160: bytes.Repeat([]byte{0xbb}, 20), Value: 1000}}, 0, true, lockedCreds(t))
	assert.ErrorIs(t, err, ErrLocked)
}

func TestCreateTxRejectsInvalidRecipient(t *testing.T) {
	account := testAccountNode(t)
	view := chainview.New()
	w := New(account, view)

	_, err := w.CreateTx([]Recipient{{Hash160: []byte{0x01}, Value: 100}}, 0, false, nil)
	assert.ErrorIs(t, err, ErrInvalidRecipient)

	_, err = w.CreateTx([]Recipient{{Hash160: bytes.Repeat([]byte{0x01}, 20), Value: 0}}, 0, false, nil)
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestPublicOnlyWalletCannotSign(t *testing.T) {
	account := testAccountNode(t).Neuter()
	view := chainview.New()
	w := New(account, view)

	addrs, err := w.ExternalAddresses()
	require.NoError(t, err)
	fundAddress(t, view, addrs[0].Hash160, 10000)

	_, err = w.CreateTx([]Recipient{{Hash160: bytes.Repeat([]byte{0xcc}, 20), Value: 1000}}, 0, true, nil)
	assert.ErrorIs(t, err, ErrNoPrivateAccount)
}
