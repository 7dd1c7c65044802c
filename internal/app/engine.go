package app

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	mycrypto "merkled/internal/crypto"
	"merkled/internal/merkle"
	"merkled/internal/types"
)

// Engine owns the block queue and everything derived from it: on-demand
// trees, fast-path roots, and signed batch headers. Access is serialized
// behind one mutex; the tree math itself is pure and never blocks.
type Engine struct {
	mu            sync.Mutex
	blocks        [][]byte
	lastCommitted int // blocks[:lastCommitted] are sealed into batches
	batches       []types.BatchHeader
	lastTree      *merkle.Tree

	// node signing key
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey

	// SSE subscribers
	subs map[chan []byte]struct{}
}

func NewEngine(keyPath string) *Engine {
	e := &Engine{subs: make(map[chan []byte]struct{})}
	if priv, pub, err := mycrypto.LoadOrCreate(keyPath); err == nil {
		e.priv, e.pub = priv, pub
	}
	return e
}

func (e *Engine) PushBlock(b []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make([]byte, len(b))
	copy(cp, b)
	e.blocks = append(e.blocks, cp)
}

func (e *Engine) BlockCount() int { e.mu.Lock(); defer e.mu.Unlock(); return len(e.blocks) }

// queueOrSample snapshots the queued blocks, or the fixed sample sequence
// when nothing has been submitted yet. Caller must hold e.mu.
func (e *Engine) queueOrSample() [][]byte {
	if len(e.blocks) == 0 {
		return merkle.DefaultBlocks
	}
	out := make([][]byte, len(e.blocks))
	copy(out, e.blocks)
	return out
}

// RootHash runs the fast path over the current queue (or the sample) and
// reports how many blocks it covered.
func (e *Engine) RootHash() (string, int, error) {
	e.mu.Lock()
	blocks := e.queueOrSample()
	e.mu.Unlock()
	root, err := merkle.RootHash(blocks)
	return root, len(blocks), err
}

// BuildTree assembles a full tree over the current queue (or the sample) and
// keeps it for node queries until the next build.
func (e *Engine) BuildTree() (*merkle.Tree, error) {
	e.mu.Lock()
	blocks := e.queueOrSample()
	e.mu.Unlock()
	return e.buildAndKeep(blocks)
}

// BuildTreeFrom assembles a tree over caller-supplied blocks instead of the
// queue and keeps it for node queries.
func (e *Engine) BuildTreeFrom(blocks [][]byte) (*merkle.Tree, error) {
	return e.buildAndKeep(blocks)
}

func (e *Engine) buildAndKeep(blocks [][]byte) (*merkle.Tree, error) {
	t, err := merkle.BuildTree(blocks)
	if err != nil {
		return nil, err
	}
	if err := t.SetRootHash(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.lastTree = t
	e.mu.Unlock()
	return t, nil
}

// LastTree returns the most recently built tree, nil before the first build.
func (e *Engine) LastTree() *merkle.Tree {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastTree
}

// ---- batch commit/query ----

// CommitBatch seals every block accepted since the last commit under one
// root and signs the header. Returns false when nothing new is queued.
func (e *Engine) CommitBatch() (types.BatchHeader, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	from := e.lastCommitted + 1
	to := len(e.blocks)
	if from > to {
		return types.BatchHeader{}, false
	}
	sub := make([][]byte, to-from+1)
	copy(sub, e.blocks[from-1:to])
	root, err := merkle.RootHash(sub)
	if err != nil {
		return types.BatchHeader{}, false
	}

	hdr := types.BatchHeader{
		Batch:      uint64(len(e.batches) + 1),
		FromIndex:  uint64(from),
		ToIndex:    uint64(to),
		BlockCount: uint64(len(sub)),
		Root:       root,
		TimeUTC:    time.Now().UTC().Unix(),
	}
	if sig, ok := e.SignBatchHeader(hdr); ok {
		hdr.SignatureHex = hex.EncodeToString(sig)
	}
	e.batches = append(e.batches, hdr)
	e.lastCommitted = to

	e.broadcastAsync(hdr)
	return hdr, true
}

func (e *Engine) GetBatch(n uint64) (types.BatchHeader, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n == 0 || int(n) > len(e.batches) {
		return types.BatchHeader{}, false
	}
	return e.batches[n-1], true
}

func (e *Engine) LatestBatch() (types.BatchHeader, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.batches) == 0 {
		return types.BatchHeader{}, false
	}
	return e.batches[len(e.batches)-1], true
}

// ---- signing ----

func (e *Engine) PubKeyHex() string {
	if len(e.pub) == 0 {
		return ""
	}
	return hex.EncodeToString(e.pub)
}

// CanonicalBatchHeaderBytes is what gets signed: the header fields minus the
// signature itself, as compact JSON.
func CanonicalBatchHeaderBytes(h types.BatchHeader) []byte {
	type canon struct {
		Batch      uint64 `json:"batch"`
		FromIndex  uint64 `json:"from_index"`
		ToIndex    uint64 `json:"to_index"`
		BlockCount uint64 `json:"block_count"`
		Root       string `json:"root"`
		TimeUTC    int64  `json:"time_utc"`
	}
	b, _ := json.Marshal(canon{
		Batch: h.Batch, FromIndex: h.FromIndex, ToIndex: h.ToIndex,
		BlockCount: h.BlockCount, Root: h.Root, TimeUTC: h.TimeUTC,
	})
	return b
}

func (e *Engine) SignBatchHeader(h types.BatchHeader) (sig []byte, ok bool) {
	if len(e.priv) == 0 {
		return nil, false
	}
	return ed25519.Sign(e.priv, CanonicalBatchHeaderBytes(h)), true
}

// ---- SSE ----

func (e *Engine) SubscribeForSSE() chan []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	ch := make(chan []byte, 16)
	e.subs[ch] = struct{}{}
	return ch
}

func (e *Engine) UnsubscribeForSSE(ch chan []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.subs[ch]; ok {
		delete(e.subs, ch)
		close(ch)
	}
}

func (e *Engine) broadcastAsync(payload any) {
	go func(v any) {
		b, err := json.Marshal(v)
		if err != nil {
			return
		}
		// snapshot under lock
		e.mu.Lock()
		chans := make([]chan []byte, 0, len(e.subs))
		for ch := range e.subs {
			chans = append(chans, ch)
		}
		e.mu.Unlock()
		// non-blocking send; slow subscribers drop
		for _, ch := range chans {
			select {
			case ch <- b:
			default:
			}
		}
	}(payload)
}
