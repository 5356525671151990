package chainview

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// UnspentTxo describes one output this view believes is unspent and pays
// one of the addresses a caller asked about.
type UnspentTxo struct {
	Outpoint wire.OutPoint
	Hash160  []byte
	Value    int64
	Height   int32
}

// HistoryItem summarizes one transaction's effect on a set of addresses:
// the net value moved to them, less whatever those same addresses spent,
// per SPEC_FULL.md §4.3.
type HistoryItem struct {
	TxHash      chainhash.Hash
	Height      int32
	Timestamp   int64
	ValueIn     int64 // sum of this tx's outputs paying a watched address
	ValueOut    int64 // sum of this tx's inputs spending a watched address's outpoint
	NetValue    int64 // ValueIn - ValueOut

	// Fee is Σ(all inputs) - Σ(all outputs), valid only when
	// InputsAreKnown: computing it requires every input's previous
	// transaction to already be in the view.
	Fee            int64
	InputsAreKnown bool
}

// spentOutpoints walks every stored transaction's inputs and returns the
// set of outpoints they spend. Called fresh on every query so that a
// parent transaction arriving after its child still marks the child's
// referenced output spent — nothing here is cached. Caller must hold at
// least v.mtx.RLock.
func (v *View) spentOutpoints() map[wire.OutPoint]chainhash.Hash {
	spent := make(map[wire.OutPoint]chainhash.Hash)
	for hash, tx := range v.txs {
		for _, txin := range tx.TxIn {
			spent[txin.PreviousOutPoint] = hash
		}
	}
	return spent
}

// matchesAny reports whether hash160 equals any entry in hash160s.
func matchesAny(hash160 []byte, hash160s [][]byte) bool {
	for _, candidate := range hash160s {
		if bytes.Equal(hash160, candidate) {
			return true
		}
	}
	return false
}

// GetAddressBalance sums the value of every currently-unspent output
// paying hash160. It recomputes from scratch on every call; see the
// package doc for why.
func (v *View) GetAddressBalance(hash160 []byte) int64 {
	return v.GetAddressesBalance([][]byte{hash160})
}

// GetAddressesBalance sums the value of every currently-unspent output
// paying any address in hash160s.
func (v *View) GetAddressesBalance(hash160s [][]byte) int64 {
	v.mtx.RLock()
	defer v.mtx.RUnlock()

	spent := v.spentOutpoints()

	var total int64
	for _, hash := range v.order {
		tx := v.txs[hash]
		for i, txout := range tx.TxOut {
			owner, ok := extractP2PKHHash160(txout.PkScript)
			if !ok || !matchesAny(owner, hash160s) {
				continue
			}
			outpoint := wire.OutPoint{Hash: hash, Index: uint32(i)}
			if _, spent := spent[outpoint]; spent {
				continue
			}
			total += txout.Value
		}
	}
	return total
}

// GetAddressTxCount returns the number of distinct stored transactions
// that either pay to or spend from hash160.
func (v *View) GetAddressTxCount(hash160 []byte) int {
	return v.GetAddressesTxCount([][]byte{hash160})
}

// GetAddressesTxCount returns the number of distinct stored transactions
// that either pay to or spend from any address in hash160s.
func (v *View) GetAddressesTxCount(hash160s [][]byte) int {
	txs := v.GetTransactionsForAddresses(hash160s)
	return len(txs)
}

// GetUnspentTxos returns every currently-unspent output paying any
// address in hash160s, ordered by transaction insertion order (then by
// output index) so that callers doing reverse-insertion-order coin
// selection get a deterministic result for a given insertion history.
func (v *View) GetUnspentTxos(hash160s [][]byte) []*UnspentTxo {
	v.mtx.RLock()
	defer v.mtx.RUnlock()

	spent := v.spentOutpoints()

	var out []*UnspentTxo
	for _, hash := range v.order {
		tx := v.txs[hash]
		for i, txout := range tx.TxOut {
			owner, ok := extractP2PKHHash160(txout.PkScript)
			if !ok || !matchesAny(owner, hash160s) {
				continue
			}
			outpoint := wire.OutPoint{Hash: hash, Index: uint32(i)}
			if _, isSpent := spent[outpoint]; isSpent {
				continue
			}
			out = append(out, &UnspentTxo{
				Outpoint: outpoint,
				Hash160:  owner,
				Value:    txout.Value,
				Height:   v.txHeight[hash],
			})
		}
	}
	return out
}

// GetTransactionsForAddresses returns every stored transaction that
// either pays to or spends from any address in hash160s, in insertion
// order.
func (v *View) GetTransactionsForAddresses(hash160s [][]byte) []*wire.MsgTx {
	v.mtx.RLock()
	defer v.mtx.RUnlock()

	var out []*wire.MsgTx
	for _, hash := range v.order {
		tx := v.txs[hash]
		if v.touchesAddressesLocked(hash, tx, hash160s) {
			out = append(out, tx)
		}
	}
	return out
}

// touchesAddressesLocked reports whether tx pays to, or spends a
// previous output owned by, any address in hash160s. Caller must hold
// v.mtx.
func (v *View) touchesAddressesLocked(hash chainhash.Hash, tx *wire.MsgTx, hash160s [][]byte) bool {
	for _, txout := range tx.TxOut {
		if owner, ok := extractP2PKHHash160(txout.PkScript); ok && matchesAny(owner, hash160s) {
			return true
		}
	}
	for _, txin := range tx.TxIn {
		prevTx, ok := v.txs[txin.PreviousOutPoint.Hash]
		if !ok || int(txin.PreviousOutPoint.Index) >= len(prevTx.TxOut) {
			continue
		}
		prevOut := prevTx.TxOut[txin.PreviousOutPoint.Index]
		if owner, ok := extractP2PKHHash160(prevOut.PkScript); ok && matchesAny(owner, hash160s) {
			return true
		}
	}
	return false
}

// TransactionToHistoryItem summarizes txHash's effect on hash160s: how
// much value it delivered to them versus how much it spent from them.
// A transaction that neither pays to nor spends from any watched address
// still resolves (with ValueIn = ValueOut = 0) as long as it is known.
func (v *View) TransactionToHistoryItem(hash160s [][]byte, txHash chainhash.Hash) (*HistoryItem, error) {
	v.mtx.RLock()
	defer v.mtx.RUnlock()

	tx, ok := v.txs[txHash]
	if !ok {
		return nil, ErrUnknownTransaction
	}

	item := &HistoryItem{
		TxHash:    txHash,
		Height:    v.txHeight[txHash],
		Timestamp: v.blockTimestamps[v.txHeight[txHash]],
	}

	for _, txout := range tx.TxOut {
		if owner, ok := extractP2PKHHash160(txout.PkScript); ok && matchesAny(owner, hash160s) {
			item.ValueIn += txout.Value
		}
	}
	for _, txin := range tx.TxIn {
		prevTx, ok := v.txs[txin.PreviousOutPoint.Hash]
		if !ok || int(txin.PreviousOutPoint.Index) >= len(prevTx.TxOut) {
			continue
		}
		prevOut := prevTx.TxOut[txin.PreviousOutPoint.Index]
		if owner, ok := extractP2PKHHash160(prevOut.PkScript); ok && matchesAny(owner, hash160s) {
			item.ValueOut += prevOut.Value
		}
	}
	item.NetValue = item.ValueIn - item.ValueOut

	item.InputsAreKnown = true
	var inputTotal, outputTotal int64
	for _, txin := range tx.TxIn {
		prevTx, ok := v.txs[txin.PreviousOutPoint.Hash]
		if !ok || int(txin.PreviousOutPoint.Index) >= len(prevTx.TxOut) {
			item.InputsAreKnown = false
			break
		}
		inputTotal += prevTx.TxOut[txin.PreviousOutPoint.Index].Value
	}
	if item.InputsAreKnown {
		for _, txout := range tx.TxOut {
			outputTotal += txout.Value
		}
		item.Fee = inputTotal - outputTotal
	}

	return item, nil
}
