package walletapi

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czh0526/hdwallet/chainview"
	"github.com/czh0526/hdwallet/primitives"
)

func primitivesToHex(b []byte) string   { return primitives.ToHex(b) }
func hexDecode(s string) ([]byte, error) { return primitives.FromHex(s) }
func buildP2PKH(hash160 []byte) []byte  { return chainview.BuildP2PKHScript(hash160) }

func rawArgs(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestSetPassphraseLockUnlockRoundTrip(t *testing.T) {
	e := New(&chaincfg.MainNetParams)

	env := e.Dispatch("set-passphrase", rawArgs(t, map[string]string{"new_passphrase": "foo"}))
	require.Nil(t, env.Error)

	env = e.Dispatch("lock", nil)
	require.Nil(t, env.Error)

	env = e.Dispatch("unlock", rawArgs(t, map[string]string{"passphrase": "bar"}))
	require.NotNil(t, env.Error)
	assert.Equal(t, AuthFailed, env.Error.Code)

	env = e.Dispatch("unlock", rawArgs(t, map[string]string{"passphrase": "foo"}))
	require.Nil(t, env.Error)
}

func TestDeriveMasterNodeMatchesBip32Vector1(t *testing.T) {
	e := New(&chaincfg.MainNetParams)
	seedHex := "000102030405060708090a0b0c0d0e0f"

	env := e.Dispatch("derive-master-node", rawArgs(t, map[string]string{"seed_hex": seedHex}))
	require.Nil(t, env.Error)

	var res NodeResponse
	require.NoError(t, json.Unmarshal(env.Result, &res))
	assert.Equal(t, "0x3442193e", res.Fp)
	assert.Equal(t, "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8", res.ExtPubB58)
}

func TestGetAddressesRequiresBoundWallet(t *testing.T) {
	e := New(&chaincfg.MainNetParams)
	env := e.Dispatch("get-addresses", nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, MissingChildNode, env.Error.Code)
}

func TestSpendRoundTrip(t *testing.T) {
	e := New(&chaincfg.MainNetParams)

	_, err := e.SetPassphrase("correct horse battery staple")
	require.NoError(t, err)

	seed := bytes.Repeat([]byte{0x09}, 32)
	_, err = e.DeriveMasterNode(primitivesToHex(seed))
	require.NoError(t, err)

	accountResult, err := e.DeriveChildNode("m/0'", false)
	require.NoError(t, err)
	require.NotNil(t, accountResult.Node.ExtPrvEnc)

	_, err = e.RestoreNode(accountResult.Node.ExtPubB58, *accountResult.Node.ExtPrvEnc)
	require.NoError(t, err)

	addrs, err := e.GetAddresses()
	require.NoError(t, err)
	require.NotEmpty(t, addrs)
	assert.True(t, addrs[0].IsPublicChain)
	assert.Equal(t, int64(0), addrs[0].Balance)
	assert.Equal(t, 0, addrs[0].TxCount)
	fundingHash160, err := hexDecode(addrs[0].Hash160)
	require.NoError(t, err)

	fundTx := wire.NewMsgTx(wire.TxVersion)
	fundTx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: ^uint32(0)}})
	fundTx.AddTxOut(&wire.TxOut{Value: 100_000_000, PkScript: buildP2PKH(fundingHash160)})
	var buf bytes.Buffer
	require.NoError(t, fundTx.Serialize(&buf))
	fundTxHex := primitivesToHex(buf.Bytes())

	reportEnv := e.Dispatch("report-txs", rawArgs(t, map[string]any{
		"txs": []map[string]string{{"tx": fundTxHex}},
	}))
	require.Nil(t, reportEnv.Error)

	addrsAfterFunding, err := e.GetAddresses()
	require.NoError(t, err)
	assert.Equal(t, int64(100_000_000), addrsAfterFunding[0].Balance)
	assert.Equal(t, 1, addrsAfterFunding[0].TxCount)

	txHex, err := e.CreateTx(
		[]CreateTxRecipient{{AddrB58: "1AnDogBPp4VL48Nrh7h8LquV68ZzXNtwcq", Value: 16383}},
		127, true,
	)
	require.NoError(t, err)

	rawTx, err := hexDecode(txHex)
	require.NoError(t, err)
	tx := wire.NewMsgTx(wire.TxVersion)
	require.NoError(t, tx.Deserialize(bytes.NewReader(rawTx)))

	require.Len(t, tx.TxIn, 1)
	require.Len(t, tx.TxOut, 2)
	assert.Equal(t, int64(16383), tx.TxOut[0].Value)
	assert.Equal(t, int64(100_000_000-16383-127), tx.TxOut[1].Value)
	assert.Equal(t, uint32(0), tx.LockTime)
	assert.Equal(t, int32(wire.TxVersion), tx.Version)
	assert.NotEmpty(t, tx.TxIn[0].SignatureScript)

	_, err = e.view.AddTransaction(rawTx)
	require.NoError(t, err)

	history, err := e.GetHistory()
	require.NoError(t, err)
	require.NotEmpty(t, history)

	var spend *HistoryResult
	for i, h := range history {
		if h.Hash160 == addrs[0].Hash160 {
			spend = &history[i]
		}
	}
	require.NotNil(t, spend, "expected a history item for the funded address")
	assert.True(t, spend.InputsAreKnown)
	assert.Equal(t, int64(127), spend.Fee)
}
