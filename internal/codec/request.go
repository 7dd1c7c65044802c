package codec

// BlocksRequest is the wire shape for block submission. Blocks are opaque
// text values; the demo traffic uses hex transaction ids.
type BlocksRequest struct {
	Blocks []string `json:"blocks" cbor:"blocks"`
}
