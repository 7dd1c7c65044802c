//go:build cbor

package codec

import "github.com/fxamacker/cbor/v2"

func DecodeCBOR(b []byte, out *BlocksRequest) error { return cbor.Unmarshal(b, out) }
