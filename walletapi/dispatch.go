package walletapi

import "encoding/json"

// ErrorObject mirrors the wire error object of SPEC_FULL.md §6:
// {error: {code, message}}. Absence of Error means success.
type ErrorObject struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Envelope is what Dispatch always returns: either Result populated and
// Error nil (success), or Error populated and Result nil (failure).
type Envelope struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *ErrorObject    `json:"error,omitempty"`
}

func ok(v any) Envelope {
	raw, err := json.Marshal(v)
	if err != nil {
		return fail(err)
	}
	return Envelope{Result: raw}
}

func fail(err error) Envelope {
	apiErr := asAPIError(err).(*Error)
	return Envelope{Error: &ErrorObject{Code: apiErr.Code, Message: apiErr.Message}}
}

// Dispatch decodes args per command and runs the matching Engine method,
// always returning a populated Envelope rather than letting an error
// cross the boundary as a Go error — per SPEC_FULL.md §7's propagation
// policy.
func (e *Engine) Dispatch(command string, args json.RawMessage) Envelope {
	switch command {
	case "set-passphrase":
		var in struct {
			NewPassphrase string `json:"new_passphrase"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		res, err := e.SetPassphrase(in.NewPassphrase)
		if err != nil {
			return fail(err)
		}
		return ok(res)

	case "set-credentials":
		var in struct {
			Salt    string `json:"salt"`
			Check   string `json:"check"`
			EkeyEnc string `json:"ekey_enc"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		if err := e.SetCredentials(in.Salt, in.Check, in.EkeyEnc); err != nil {
			return fail(err)
		}
		return ok(map[string]bool{"success": true})

	case "unlock":
		var in struct{ Passphrase string }
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		if err := e.Unlock(in.Passphrase); err != nil {
			return fail(err)
		}
		return ok(map[string]bool{"success": true})

	case "lock":
		e.Lock()
		return ok(map[string]bool{"success": true})

	case "derive-seed-from-code":
		var in struct{ Code, Passphrase string }
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		seed, err := e.DeriveSeedFromCode(in.Code, in.Passphrase)
		if err != nil {
			return fail(err)
		}
		return ok(map[string]string{"seed": seed})

	case "derive-master-node":
		var in struct {
			SeedHex string `json:"seed_hex"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		res, err := e.DeriveMasterNode(in.SeedHex)
		if err != nil {
			return fail(err)
		}
		return ok(res)

	case "generate-master-node":
		res, err := e.GenerateMasterNode()
		if err != nil {
			return fail(err)
		}
		return ok(res)

	case "import-master-node":
		var in struct {
			ExtPrvB58  string `json:"ext_prv_b58"`
			Code       string `json:"code"`
			Passphrase string `json:"passphrase"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		res, err := e.ImportMasterNode(in.ExtPrvB58, in.Code, in.Passphrase)
		if err != nil {
			return fail(err)
		}
		return ok(res)

	case "derive-child-node":
		var in struct {
			Path        string `json:"path"`
			IsWatchOnly bool   `json:"is_watch_only"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		res, err := e.DeriveChildNode(in.Path, in.IsWatchOnly)
		if err != nil {
			return fail(err)
		}
		return ok(res)

	case "restore-node":
		var in struct {
			ExtPubB58  string `json:"ext_pub_b58"`
			ExtPrvEnc  string `json:"ext_prv_enc"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		res, err := e.RestoreNode(in.ExtPubB58, in.ExtPrvEnc)
		if err != nil {
			return fail(err)
		}
		return ok(res)

	case "describe-node":
		var in struct {
			ExtPubB58 string `json:"ext_pub_b58"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		res, err := e.DescribeNode(in.ExtPubB58)
		if err != nil {
			return fail(err)
		}
		return ok(res)

	case "describe-private-node":
		var in struct {
			ExtPrvEnc string `json:"ext_prv_enc"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		res, err := e.DescribePrivateNode(in.ExtPrvEnc)
		if err != nil {
			return fail(err)
		}
		return ok(res)

	case "get-addresses":
		res, err := e.GetAddresses()
		if err != nil {
			return fail(err)
		}
		return ok(res)

	case "get-history":
		res, err := e.GetHistory()
		if err != nil {
			return fail(err)
		}
		return ok(res)

	case "report-tx-statuses":
		var in struct {
			TxStatuses []TxStatus `json:"tx_statuses"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		if err := e.ReportTxStatuses(in.TxStatuses); err != nil {
			return fail(err)
		}
		return ok(map[string]bool{"success": true})

	case "report-txs":
		var in struct {
			Txs []ReportTxEntry `json:"txs"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		if err := e.ReportTxs(in.Txs); err != nil {
			return fail(err)
		}
		return ok(map[string]bool{"success": true})

	case "confirm-block":
		var in struct {
			BlockHeight int32 `json:"block_height"`
			Timestamp   int64 `json:"timestamp"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		e.ConfirmBlock(in.BlockHeight, in.Timestamp)
		return ok(map[string]bool{"success": true})

	case "create-tx":
		var in struct {
			Recipients []CreateTxRecipient `json:"recipients"`
			Fee        int64                `json:"fee"`
			Sign       bool                 `json:"sign"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fail(newError(MissingParam, "malformed arguments"))
		}
		raw, err := e.CreateTx(in.Recipients, in.Fee, in.Sign)
		if err != nil {
			return fail(err)
		}
		return ok(map[string]string{"tx": raw})

	default:
		return fail(newError(InvalidParam, "unknown command: "+command))
	}
}
