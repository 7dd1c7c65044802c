package codec

import "encoding/json"

// DecodeJSON strips a UTF-8 BOM (0xEF,0xBB,0xBF) before parsing.
func DecodeJSON(b []byte, out *BlocksRequest) error {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		b = b[3:]
	}
	return json.Unmarshal(b, out)
}
