package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// digest is the content identity of a blob. Hash is lowercase hex SHA-256
// and the sole identity used for duplicate matching; Quick is a lowercase
// hex xxhash64 used only as a cheap near-duplicate prefilter.
type digest struct {
	Hash  string
	Quick string
	Size  int64
}

// computeDigest streams r once through both hash functions.
func computeDigest(r io.Reader) (digest, error) {
	sha := sha256.New()
	quick := xxhash.New()

	n, err := io.Copy(io.MultiWriter(sha, quick), r)
	if err != nil {
		return digest{}, fmt.Errorf("hash stream: %w", err)
	}

	return digest{
		Hash:  hex.EncodeToString(sha.Sum(nil)),
		Quick: fmt.Sprintf("%016x", quick.Sum64()),
		Size:  n,
	}, nil
}
