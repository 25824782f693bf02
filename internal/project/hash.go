package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine хеширует части в заданном порядке: H( p1 || p2 ... ).
// Порядок должен быть детерминированным.
func Combine(parts ...Digest) Digest {
	h := sha256.New()
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// StringDigest hashes s.
func StringDigest(s string) Digest {
	return sha256.Sum256([]byte(s))
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
