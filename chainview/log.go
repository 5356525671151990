package chainview

import "github.com/btcsuite/btclog"

// log is the package-level logger; it does nothing until UseLogger
// installs a real backend.
var log = btclog.Disabled

// UseLogger sets the logger used by this package. Should be called
// before the package performs any logging.
func UseLogger(logger btclog.Logger) {
	log = logger
}
