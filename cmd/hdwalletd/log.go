package main

import (
	"io"

	"github.com/btcsuite/btclog"

	"github.com/czh0526/hdwallet/chainview"
	"github.com/czh0526/hdwallet/keychain"
	"github.com/czh0526/hdwallet/vault"
	"github.com/czh0526/hdwallet/wallet"
	"github.com/czh0526/hdwallet/walletapi"
)

// logWriter forwards to whatever file initLogging last pointed it at.
// stdout and stdin are reserved for the command pump's protocol traffic, so
// unlike lnd's stdout+rotator logWriter, this one never touches
// either: it starts discarding everything and is redirected once the log
// file is open.
type logWriter struct {
	dest io.Writer
}

func (w *logWriter) Write(p []byte) (int, error) {
	return w.dest.Write(p)
}

var sink = &logWriter{dest: io.Discard}

// backendLog is the logging backend every subsystem logger below is created
// from. It must not be used for actual logging until initLogging has
// pointed sink at an open file.
var backendLog = btclog.NewBackend(sink)

var (
	vltLog = backendLog.Logger("VLT")
	kchLog = backendLog.Logger("KCH")
	cvwLog = backendLog.Logger("CVW")
	wltLog = backendLog.Logger("WLT")
	apiLog = backendLog.Logger("API")
)

// subsystemLoggers maps each subsystem identifier to its logger, for
// setLogLevels.
var subsystemLoggers = map[string]btclog.Logger{
	"VLT": vltLog,
	"KCH": kchLog,
	"CVW": cvwLog,
	"WLT": wltLog,
	"API": apiLog,
}

// initLogging points sink at logFile and wires every package's UseLogger
// hook to a subsystem logger backed by backendLog.
func initLogging(logFile io.Writer) {
	sink.dest = logFile

	vault.UseLogger(vltLog)
	keychain.UseLogger(kchLog)
	chainview.UseLogger(cvwLog)
	wallet.UseLogger(wltLog)
	walletapi.UseLogger(apiLog)
}

// setLogLevels configures every subsystem logger to logLevel. For an
// invalid level btclog.LevelFromString returns LevelInfo, so every
// subsystem is set to info.
func setLogLevels(logLevel string) {
	level, _ := btclog.LevelFromString(logLevel)
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}
