package common

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
)

// Hasher accumulates a SHA-256 digest over streamed writes. It is an
// io.Writer, so it can sit in an io.MultiWriter next to the
// destination file while an upload or report is being written.
type Hasher struct {
	h hash.Hash
}

func NewHasher() *Hasher {
	return &Hasher{h: sha256.New()}
}

func (h *Hasher) Write(p []byte) (int, error) {
	return h.h.Write(p)
}

// Sum returns the lower-case hex digest of everything written so far.
func (h *Hasher) Sum() string {
	return hex.EncodeToString(h.h.Sum(nil))
}

// Sha256OfFile hashes the file at path and returns the hex digest
// together with the file size.
func Sha256OfFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()
	h := NewHasher()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return h.Sum(), n, nil
}
