package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"

	"github.com/czh0526/hdwallet/internal/cfgutil"
	"github.com/czh0526/hdwallet/netparams"
)

const (
	defaultLogFilename = "hdwalletd.log"
	defaultLogLevel    = "info"
)

var defaultAppDataDir = btcutil.AppDataDir("hdwalletd", false)

// config holds hdwalletd's command-line options. It is deliberately small:
// the engine keeps no on-disk wallet state of its own (the host persists
// whatever Dispatch results it cares about), so there is no data directory,
// database path, or RPC-client section to configure.
type config struct {
	AppDataDir string `short:"A" long:"appdata" description:"Directory for hdwalletd logs"`
	TestNet3   bool   `long:"testnet" description:"Use the test Bitcoin network (version 3) (default mainnet)"`
	SimNet     bool   `long:"simnet" description:"Use the simulation test network (default mainnet)"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	LogDir     string `long:"logdir" description:"Directory to log output"`

	activeNet *netparams.Params
}

func defaultConfig() config {
	return config{
		AppDataDir: defaultAppDataDir,
		DebugLevel: defaultLogLevel,
	}
}

// loadConfig parses command-line flags, resolves the active network, and
// fills in the log directory default. It never touches a wallet database —
// see the config doc comment.
func loadConfig() (*config, []string, error) {
	cfg := defaultConfig()

	preCfg := cfg
	parser := flags.NewParser(&preCfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}
	cfg = preCfg

	numNets := 0
	cfg.activeNet = &netparams.MainNetParams
	if cfg.TestNet3 {
		numNets++
		cfg.activeNet = &netparams.TestNetParams
	}
	if cfg.SimNet {
		numNets++
		cfg.activeNet = &netparams.SimNetParams
	}
	if numNets > 1 {
		return nil, nil, fmt.Errorf("testnet and simnet cannot be used together")
	}

	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.AppDataDir, "logs", cfg.activeNet.Name)
	}
	if err := cfgutil.CheckCreateDir(cfg.LogDir); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}

	return &cfg, remainingArgs, nil
}

func logFilePath(cfg *config) string {
	return filepath.Join(cfg.LogDir, defaultLogFilename)
}
