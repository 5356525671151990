package walletapi

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/czh0526/hdwallet/primitives"
	"github.com/czh0526/hdwallet/wallet"
)

// AddressResult is one entry of get-addresses' response, per spec.md §3's
// Address Record: {branch, index, is_public_chain, hash160, address,
// balance, tx_count}, with the child number carried as branch and index.
type AddressResult struct {
	Branch        uint32 `json:"branch"`
	Index         uint32 `json:"index"`
	IsPublicChain bool   `json:"is_public_chain"`
	Hash160       string `json:"hash160"`
	Address       string `json:"address"`
	Balance       int64  `json:"balance"`
	TxCount       int    `json:"tx_count"`
}

// GetAddresses reports the bound wallet's full gap window, external then
// internal, each with its current balance and touching-transaction count.
func (e *Engine) GetAddresses() ([]AddressResult, error) {
	if e.w == nil {
		return nil, newError(MissingChildNode, "no wallet bound; call restore-node first")
	}
	ext, err := e.w.ExternalAddresses()
	if err != nil {
		return nil, asAPIError(err)
	}
	intl, err := e.w.InternalAddresses()
	if err != nil {
		return nil, asAPIError(err)
	}

	out := make([]AddressResult, 0, len(ext)+len(intl))
	for _, a := range ext {
		out = append(out, AddressResult{
			Branch:        a.Branch,
			Index:         a.Index,
			IsPublicChain: true,
			Hash160:       primitives.ToHex(a.Hash160),
			Address:       a.Address.EncodeAddress(),
			Balance:       e.view.GetAddressBalance(a.Hash160),
			TxCount:       e.view.GetAddressTxCount(a.Hash160),
		})
	}
	for _, a := range intl {
		out = append(out, AddressResult{
			Branch:        a.Branch,
			Index:         a.Index,
			IsPublicChain: false,
			Hash160:       primitives.ToHex(a.Hash160),
			Address:       a.Address.EncodeAddress(),
			Balance:       e.view.GetAddressBalance(a.Hash160),
			TxCount:       e.view.GetAddressTxCount(a.Hash160),
		})
	}
	return out, nil
}

// HistoryResult is one entry of get-history's response, per spec.md §3's
// History Item: {tx_hash, hash160, height, timestamp, net_value, fee,
// inputs_are_known}, with the signed value carried as net_value.
type HistoryResult struct {
	TxHash         string `json:"tx_hash"`
	Hash160        string `json:"hash160"`
	Height         int32  `json:"height"`
	Timestamp      int64  `json:"timestamp"`
	NetValue       int64  `json:"net_value"`
	Fee            int64  `json:"fee"`
	InputsAreKnown bool   `json:"inputs_are_known"`
}

// GetHistory reports a HistoryResult for every (watched address,
// transaction touching it) pair, so each item's hash160 names the one
// address it's reported against, per spec.md §3's History Item.
func (e *Engine) GetHistory() ([]HistoryResult, error) {
	if e.w == nil {
		return nil, newError(MissingChildNode, "no wallet bound; call restore-node first")
	}
	hash160s, err := e.w.WatchedHash160s()
	if err != nil {
		return nil, asAPIError(err)
	}

	var out []HistoryResult
	for _, hash160 := range hash160s {
		txs := e.view.GetTransactionsForAddresses([][]byte{hash160})
		for _, tx := range txs {
			item, err := e.view.TransactionToHistoryItem([][]byte{hash160}, tx.TxHash())
			if err != nil {
				return nil, asAPIError(err)
			}
			out = append(out, HistoryResult{
				TxHash:         item.TxHash.String(),
				Hash160:        primitives.ToHex(hash160),
				Height:         item.Height,
				Timestamp:      item.Timestamp,
				NetValue:       item.NetValue,
				Fee:            item.Fee,
				InputsAreKnown: item.InputsAreKnown,
			})
		}
	}
	return out, nil
}

// TxStatus is one entry of report-tx-statuses' request.
type TxStatus struct {
	TxHash string `json:"tx_hash"`
	Height int32  `json:"height"`
}

// ReportTxStatuses records a confirmation height for each tx_hash.
func (e *Engine) ReportTxStatuses(statuses []TxStatus) error {
	for _, s := range statuses {
		hash, err := chainhash.NewHashFromStr(s.TxHash)
		if err != nil {
			return newError(InvalidParam, "tx_hash is not a valid hash: "+s.TxHash)
		}
		e.view.ConfirmTransaction(*hash, s.Height)
	}
	return nil
}

// ReportTxEntry is one entry of report-txs' txs list: {tx}.
type ReportTxEntry struct {
	Tx string `json:"tx"`
}

// ReportTxs adds each hex-encoded raw transaction to the blockchain view.
func (e *Engine) ReportTxs(txs []ReportTxEntry) error {
	for _, entry := range txs {
		b, err := primitives.FromHex(entry.Tx)
		if err != nil {
			return newError(InvalidParam, "tx is not valid hex")
		}
		if _, err := e.view.AddTransaction(b); err != nil {
			return asAPIError(err)
		}
	}
	return nil
}

// ConfirmBlock records a block height's timestamp.
func (e *Engine) ConfirmBlock(height int32, timestamp int64) {
	e.view.ConfirmBlock(height, timestamp)
}

// CreateTxRecipient is one entry of create-tx's recipients list.
type CreateTxRecipient struct {
	AddrB58 string `json:"addr_b58"`
	Value   int64  `json:"value"`
}

// CreateTx assembles (and, if sign, signs) a spend transaction paying
// recipients, returning its hex-encoded raw bytes.
func (e *Engine) CreateTx(recipients []CreateTxRecipient, fee int64, sign bool) (string, error) {
	if e.w == nil {
		return "", newError(MissingChildNode, "no wallet bound; call restore-node first")
	}

	walletRecipients := make([]wallet.Recipient, 0, len(recipients))
	for _, r := range recipients {
		addr, err := btcutil.DecodeAddress(r.AddrB58, e.params)
		if err != nil {
			return "", newError(TransactionFailed, "malformed recipient address: "+r.AddrB58)
		}
		pkHashAddr, ok := addr.(*btcutil.AddressPubKeyHash)
		if !ok {
			return "", newError(TransactionFailed, "recipient address is not P2PKH: "+r.AddrB58)
		}
		walletRecipients = append(walletRecipients, wallet.Recipient{
			Hash160: pkHashAddr.Hash160()[:],
			Value:   r.Value,
		})
	}

	raw, err := e.w.CreateTx(walletRecipients, fee, sign, e.creds)
	if err != nil {
		return "", asAPIError(err)
	}
	return primitives.ToHex(raw), nil
}
