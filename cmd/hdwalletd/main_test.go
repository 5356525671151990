package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czh0526/hdwallet/walletapi"
)

func TestPumpDispatchesOneCommandPerLine(t *testing.T) {
	engine := walletapi.New(&chaincfg.MainNetParams)

	in := strings.NewReader(`{"command":"set-passphrase","args":{"new_passphrase":"hunter2"}}` + "\n")
	var out bytes.Buffer

	require.NoError(t, pump(engine, in, &out))

	var env walletapi.Envelope
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(out.Bytes()), &env))
	assert.Nil(t, env.Error)
	assert.NotEmpty(t, env.Result)
}

func TestPumpReportsMalformedLineWithoutAborting(t *testing.T) {
	engine := walletapi.New(&chaincfg.MainNetParams)

	in := strings.NewReader("not json\n" +
		`{"command":"get-addresses","args":null}` + "\n")
	var out bytes.Buffer

	require.NoError(t, pump(engine, in, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first walletapi.Envelope
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NotNil(t, first.Error)
	assert.Equal(t, walletapi.InvalidParam, first.Error.Code)

	var second walletapi.Envelope
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	require.NotNil(t, second.Error)
	assert.Equal(t, walletapi.MissingChildNode, second.Error.Code)
}
