package chainview

// Standard Pay-to-PubKey-Hash script opcodes, per SPEC_FULL.md §3:
// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG.
const (
	opDup         = 0x76
	opHash160     = 0xa9
	opData20      = 0x14
	opEqualVerify = 0x88
	opCheckSig    = 0xac

	p2pkhScriptLen = 25
)

// BuildP2PKHScript returns the 25-byte P2PKH scriptPubKey paying hash160.
func BuildP2PKHScript(hash160 []byte) []byte {
	script := make([]byte, 0, p2pkhScriptLen)
	script = append(script, opDup, opHash160, opData20)
	script = append(script, hash160...)
	script = append(script, opEqualVerify, opCheckSig)
	return script
}

// extractP2PKHHash160 recognizes a standard P2PKH script and returns the
// embedded hash160. Any other script shape (including future output
// types this engine does not understand) returns ok=false; such outputs
// are still stored but never populate the address index, per
// SPEC_FULL.md §4.3.
func extractP2PKHHash160(script []byte) (hash160 []byte, ok bool) {
	if len(script) != p2pkhScriptLen {
		return nil, false
	}
	if script[0] != opDup || script[1] != opHash160 || script[2] != opData20 {
		return nil, false
	}
	if script[23] != opEqualVerify || script[24] != opCheckSig {
		return nil, false
	}
	return script[3:23], true
}
