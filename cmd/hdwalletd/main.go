// Command hdwalletd hosts a walletapi.Engine behind a line-oriented JSON
// command pump: one {"command": ..., "args": {...}} object per line on
// stdin, one Envelope per line on stdout. It stands in for the
// request/response dispatcher spec.md places outside the engine's own
// scope — just enough of a body to exercise Engine.Dispatch end to end.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/czh0526/hdwallet/walletapi"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(logFilePath(cfg), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer logFile.Close()
	initLogging(logFile)
	setLogLevels(cfg.DebugLevel)

	apiLog.Infof("hdwalletd starting, active net %v", cfg.activeNet.Name)

	addInterruptHandler(func() {
		apiLog.Infof("hdwalletd shutting down")
	})

	engine := walletapi.New(cfg.activeNet.Params)
	return pump(engine, os.Stdin, os.Stdout)
}

// request is one line of stdin: a command name and its raw JSON arguments.
type request struct {
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args"`
}

// pump reads newline-delimited requests from r, dispatches each to engine,
// and writes the resulting Envelope as a newline-delimited JSON response to
// w. It runs until r is exhausted (EOF) or a read error occurs; a malformed
// request line yields an error Envelope rather than aborting the pump.
func pump(engine *walletapi.Engine, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			if encErr := enc.Encode(walletapi.Envelope{
				Error: &walletapi.ErrorObject{
					Code:    walletapi.InvalidParam,
					Message: "malformed request line: " + err.Error(),
				},
			}); encErr != nil {
				return encErr
			}
			continue
		}

		env := engine.Dispatch(req.Command, req.Args)
		if err := enc.Encode(env); err != nil {
			return err
		}
	}
	return scanner.Err()
}
