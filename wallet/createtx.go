package wallet

import (
	"bytes"

	"github.com/btcsuite/btcd/wire"

	"github.com/czh0526/hdwallet/chainview"
	"github.com/czh0526/hdwallet/primitives"
	"github.com/czh0526/hdwallet/vault"
)

// Recipient is one requested payment: pay value to the address owning
// hash160.
type Recipient struct {
	Hash160 []byte
	Value   int64
}

// sigHashAllSuffix is the 4-byte little-endian SIGHASH_ALL trailer appended to
// the legacy sighash preimage, per SPEC_FULL.md §4.4 step 5.
var sigHashAllSuffix = []byte{0x01, 0x00, 0x00, 0x00}

const sigHashAllByte = 0x01

// CreateTx assembles a spend transaction per SPEC_FULL.md §4.4: greedy
// coin selection in reverse-insertion order, an optional change output
// on the next unused internal address, and — if shouldSign — per-input
// legacy signing with private keys derived from the wallet's account
// node.
//
// creds is only consulted when shouldSign is true: a non-nil, Locked
// creds fails with ErrLocked. A nil creds skips that check.
func (w *Wallet) CreateTx(recipients []Recipient, fee int64, shouldSign bool, creds *vault.Credentials) ([]byte, error) {
	for _, r := range recipients {
		if r.Value <= 0 || len(r.Hash160) != 20 {
			return nil, ErrInvalidRecipient
		}
	}

	var required int64
	for _, r := range recipients {
		required += r.Value
	}
	required += fee

	hash160s, err := w.WatchedHash160s()
	if err != nil {
		return nil, err
	}
	utxos := w.view.GetUnspentTxos(hash160s)

	selected, total, err := selectCoins(utxos, required)
	if err != nil {
		return nil, err
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	for _, u := range selected {
		outpoint := u.Outpoint
		tx.AddTxIn(&wire.TxIn{PreviousOutPoint: outpoint})
	}
	for _, r := range recipients {
		tx.AddTxOut(&wire.TxOut{
			Value:    r.Value,
			PkScript: chainview.BuildP2PKHScript(r.Hash160),
		})
	}

	if surplus := total - required; surplus > 0 {
		changeIndex, err := w.nextUnusedInternalIndex()
		if err != nil {
			return nil, err
		}
		changeNode, err := w.childNode(1, changeIndex)
		if err != nil {
			return nil, err
		}
		tx.AddTxOut(&wire.TxOut{
			Value:    surplus,
			PkScript: chainview.BuildP2PKHScript(changeNode.Hash160()),
		})
	}

	if shouldSign {
		if creds != nil && creds.IsLocked() {
			return nil, ErrLocked
		}
		if err := w.signAll(tx, selected); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return nil, err
	}
	log.Debugf("created tx with %d inputs, %d outputs, signed=%v",
		len(tx.TxIn), len(tx.TxOut), shouldSign)
	return buf.Bytes(), nil
}

// selectCoins implements the spec's greedy reverse-insertion-order
// selection: utxos is iterated back-to-front, accumulating value until
// it meets or exceeds required.
func selectCoins(utxos []*chainview.UnspentTxo, required int64) ([]*chainview.UnspentTxo, int64, error) {
	var selected []*chainview.UnspentTxo
	var total int64
	for i := len(utxos) - 1; i >= 0; i-- {
		selected = append(selected, utxos[i])
		total += utxos[i].Value
		if total >= required {
			return selected, total, nil
		}
	}
	return nil, 0, ErrInsufficientFunds
}

// signAll fills every input's scriptSig, per SPEC_FULL.md §4.4 step 5:
// for input i, the sighash preimage has input i's scriptSig set to the
// referenced output's scriptPubKey and every other input's scriptSig
// emptied, followed by the SIGHASH_ALL trailer.
func (w *Wallet) signAll(tx *wire.MsgTx, selected []*chainview.UnspentTxo) error {
	for i, u := range selected {
		preimage, err := sigHashPreimage(tx, i, chainview.BuildP2PKHScript(u.Hash160))
		if err != nil {
			return err
		}
		sigHash := primitives.Sha256d(preimage)

		priv, err := w.findSigningKey(u.Hash160)
		if err != nil {
			return err
		}

		derSig := signDER(priv, sigHash)
		tx.TxIn[i].SignatureScript = buildScriptSig(derSig, compressedPubKey(priv))
	}
	return nil
}

// sigHashPreimage serializes tx with every scriptSig emptied except
// inputIndex's, which is set to prevScript, then appends the 4-byte
// SIGHASH_ALL trailer.
func sigHashPreimage(tx *wire.MsgTx, inputIndex int, prevScript []byte) ([]byte, error) {
	clone := tx.Copy()
	for i := range clone.TxIn {
		if i == inputIndex {
			clone.TxIn[i].SignatureScript = prevScript
		} else {
			clone.TxIn[i].SignatureScript = nil
		}
	}

	var buf bytes.Buffer
	if err := clone.Serialize(&buf); err != nil {
		return nil, err
	}
	buf.Write(sigHashAllSuffix)
	return buf.Bytes(), nil
}

// buildScriptSig assembles the legacy P2PKH scriptSig:
// <sig_len> sig <pubkey_len> compressed_pubkey.
func buildScriptSig(derSig, pubKey []byte) []byte {
	sig := append(append([]byte{}, derSig...), sigHashAllByte)

	out := make([]byte, 0, 1+len(sig)+1+len(pubKey))
	out = append(out, byte(len(sig)))
	out = append(out, sig...)
	out = append(out, byte(len(pubKey)))
	out = append(out, pubKey...)
	return out
}
