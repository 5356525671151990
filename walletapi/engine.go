package walletapi

import (
	"errors"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/czh0526/hdwallet/chainview"
	"github.com/czh0526/hdwallet/keychain"
	"github.com/czh0526/hdwallet/vault"
	"github.com/czh0526/hdwallet/wallet"
)

// errMissingChildNode is the sentinel causeToCode maps to
// MissingChildNode. The wallet-bound commands themselves report a
// missing account with an *Error carrying MissingChildNode directly.
var errMissingChildNode = errors.New("walletapi: no child node bound; call restore-node first")

// Engine owns the three objects SPEC_FULL.md §3 assigns to the API
// facade: one Credentials, one optional master Node, and one optional
// account-bound Wallet, all sharing a single Blockchain view.
type Engine struct {
	params *chaincfg.Params

	creds  *vault.Credentials
	master *keychain.Node
	w      *wallet.Wallet
	view   *chainview.View
}

// New returns an Engine for the given network, with a fresh unconfigured
// vault and an empty blockchain view.
func New(params *chaincfg.Params) *Engine {
	return &Engine{
		params: params,
		creds:  vault.New(),
		view:   chainview.New(),
	}
}

// Lock zeroizes the vault's derived key material and drops signing
// ability from any bound master node or wallet, retaining their public
// halves.
func (e *Engine) Lock() {
	e.creds.Lock()
	if e.master != nil && e.master.IsPrivate() {
		e.master = e.master.Neuter()
	}
	if e.w != nil && e.w.Account().IsPrivate() {
		e.w = wallet.New(e.w.Account().Neuter(), e.view)
	}
}
