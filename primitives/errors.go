package primitives

import "errors"

// ErrBadChecksum is returned by Base58CheckDecode when the trailing
// four-byte checksum does not match the payload.
var ErrBadChecksum = errors.New("primitives: base58check checksum mismatch")
