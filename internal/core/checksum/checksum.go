// Package checksum computes streamed SHA-256 digests for the resume and
// verification paths of the transfer engine.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"bcmr/internal/core/errs"
)

const bufSize = 8 * 1024

// Hash streams the whole file through SHA-256 and returns its hex digest.
func Hash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errs.WrapIO("open for hash", err)
	}
	defer f.Close()
	return hashReader(f)
}

// HashPrefix streams only the first limitBytes of the file through SHA-256.
func HashPrefix(path string, limitBytes int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errs.WrapIO("open for hash", err)
	}
	defer f.Close()
	return hashReader(io.LimitReader(f, limitBytes))
}

func hashReader(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, bufSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", errs.WrapIO("read for hash", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
