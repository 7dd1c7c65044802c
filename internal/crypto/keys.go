package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
)

type NodeKey struct {
	Algo string `json:"algo"`     // "ed25519"
	Priv string `json:"priv_hex"` // 64 bytes (hex)
	Pub  string `json:"pub_hex"`  // 32 bytes (hex)
}

// LoadOrCreate reads the node key at path; a missing or corrupt file gets
// regenerated in place.
func LoadOrCreate(path string) (ed25519.PrivateKey, ed25519.PublicKey, error) {
	if b, err := os.ReadFile(path); err == nil {
		var nk NodeKey
		if json.Unmarshal(b, &nk) == nil && nk.Algo == "ed25519" {
			priv, err1 := hex.DecodeString(nk.Priv)
			pub, err2 := hex.DecodeString(nk.Pub)
			if err1 == nil && err2 == nil && len(priv) == ed25519.PrivateKeySize && len(pub) == ed25519.PublicKeySize {
				return ed25519.PrivateKey(priv), ed25519.PublicKey(pub), nil
			}
		}
		_ = os.Remove(path)
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	nk := NodeKey{
		Algo: "ed25519",
		Priv: hex.EncodeToString(priv),
		Pub:  hex.EncodeToString(pub),
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	if b, err := json.MarshalIndent(nk, "", "  "); err == nil {
		_ = os.WriteFile(path, b, 0o600) // private key file
	}
	return priv, pub, nil
}
