//go:build !cbor

package codec

import "errors"

var ErrCBORDisabled = errors.New("cbor_not_enabled")

func DecodeCBOR(b []byte, out *BlocksRequest) error { return ErrCBORDisabled }
