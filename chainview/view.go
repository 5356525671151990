// Package chainview implements C6, the engine's local view of the
// blockchain: a transaction store keyed by hash, an address index, a
// sparse block-height-to-timestamp table, and the lazy unspent-output
// and history computations the wallet reads from. See SPEC_FULL.md §4.3.
//
// The view never fetches data itself — it is fed already-parsed
// transactions and confirmation reports by the host, per SPEC_FULL.md
// §1's scope boundary — and it recomputes every derived query from
// current store state rather than caching, so transactions may arrive
// in any order and later arrivals retroactively complete earlier
// queries (spend detection, fee computation).
package chainview

import (
	"bytes"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// View is the blockchain view shared read-mostly across every Wallet in
// the process.
type View struct {
	mtx sync.RWMutex

	txs      map[chainhash.Hash]*wire.MsgTx
	txHeight map[chainhash.Hash]int32
	order    []chainhash.Hash // insertion order, for deterministic coin selection

	blockTimestamps map[int32]int64
	maxHeight       int32
}

// New returns an empty blockchain view.
func New() *View {
	return &View{
		txs:             make(map[chainhash.Hash]*wire.MsgTx),
		txHeight:        make(map[chainhash.Hash]int32),
		blockTimestamps: make(map[int32]int64),
	}
}

// ConfirmBlock idempotently records a block's timestamp and advances
// MaxBlockHeight if height is new.
func (v *View) ConfirmBlock(height int32, timestamp int64) {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	v.blockTimestamps[height] = timestamp
	if height > v.maxHeight {
		v.maxHeight = height
	}
}

// MaxBlockHeight returns the highest height ConfirmBlock has recorded.
func (v *View) MaxBlockHeight() int32 {
	v.mtx.RLock()
	defer v.mtx.RUnlock()
	return v.maxHeight
}

// GetBlockTimestamp returns the timestamp ConfirmBlock recorded for
// height, or 0 if unknown.
func (v *View) GetBlockTimestamp(height int32) int64 {
	v.mtx.RLock()
	defer v.mtx.RUnlock()
	return v.blockTimestamps[height]
}

// AddTransaction parses raw as a legacy-serialized transaction (see
// SPEC_FULL.md §6) and stores it under its canonical (double-SHA256)
// hash if it is not already known. No address index is updated here:
// address queries recompute from the stored transactions on every call.
// It never assigns a confirmation height; a
// newly-inserted transaction remains unconfirmed (height 0) unless
// ConfirmTransaction already recorded a height for this hash. Re-adding
// an already-known hash is a no-op.
func (v *View) AddTransaction(raw []byte) (chainhash.Hash, error) {
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return chainhash.Hash{}, ErrMalformedTransaction
	}
	hash := tx.TxHash()

	v.mtx.Lock()
	defer v.mtx.Unlock()

	if _, exists := v.txs[hash]; exists {
		return hash, nil
	}
	v.txs[hash] = tx
	v.order = append(v.order, hash)
	if _, ok := v.txHeight[hash]; !ok {
		v.txHeight[hash] = 0
	}

	log.Debugf("added transaction %v (%d outputs)", hash, len(tx.TxOut))
	return hash, nil
}

// ConfirmTransaction sets tx_hash's confirmation height. Heights are
// monotonic: an attempt to decrease an already-recorded height is
// silently ignored.
func (v *View) ConfirmTransaction(txHash chainhash.Hash, height int32) {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	if cur, ok := v.txHeight[txHash]; ok && height < cur {
		return
	}
	v.txHeight[txHash] = height
}

// GetTransactionHeight returns the confirmation height recorded for
// txHash, or 0 (unconfirmed) if the hash is unknown.
func (v *View) GetTransactionHeight(txHash chainhash.Hash) int32 {
	v.mtx.RLock()
	defer v.mtx.RUnlock()
	return v.txHeight[txHash]
}

// GetTransaction returns the stored transaction for txHash, if any.
func (v *View) GetTransaction(txHash chainhash.Hash) (*wire.MsgTx, bool) {
	v.mtx.RLock()
	defer v.mtx.RUnlock()
	tx, ok := v.txs[txHash]
	return tx, ok
}
