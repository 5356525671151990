// Package netparams selects the active chaincfg.Params for hdwalletd's
// --testnet/--simnet network flags.
package netparams

import "github.com/btcsuite/btcd/chaincfg"

type Params struct {
	*chaincfg.Params
}

var MainNetParams = Params{Params: &chaincfg.MainNetParams}

var TestNetParams = Params{Params: &chaincfg.TestNet3Params}

var SimNetParams = Params{Params: &chaincfg.SimNetParams}
