package types

// BatchHeader seals a contiguous run of accepted blocks under one Merkle
// root. Indices are 1-based block positions in the engine's queue.
type BatchHeader struct {
	Batch        uint64 `json:"batch"`
	FromIndex    uint64 `json:"from_index"`
	ToIndex      uint64 `json:"to_index"`
	BlockCount   uint64 `json:"block_count"`
	Root         string `json:"root"` // hex
	TimeUTC      int64  `json:"time_utc"`
	SignatureHex string `json:"signature_hex,omitempty"`
}
