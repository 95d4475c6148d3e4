package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"regexp"
	"strings"
)

const ChecksumAlgorithm = "sha256"

var hexDigestPattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

func ValidHexDigest(value string) bool {
	return hexDigestPattern.MatchString(value)
}

// ParseChecksum accepts "algorithm:hexvalue" or a bare hex value (which
// defaults to sha256) and returns the normalized lowercase digest. Any other
// algorithm name is unsupported.
func ParseChecksum(value string) (string, error) {
	algorithm, digest := ChecksumAlgorithm, strings.TrimSpace(value)
	if before, after, found := strings.Cut(digest, ":"); found {
		algorithm, digest = strings.ToLower(strings.TrimSpace(before)), strings.TrimSpace(after)
	}
	if algorithm != ChecksumAlgorithm {
		return "", fmt.Errorf("unsupported checksum algorithm %q", algorithm)
	}
	if !ValidHexDigest(digest) {
		return "", fmt.Errorf("malformed %s digest %q", ChecksumAlgorithm, digest)
	}
	return strings.ToLower(digest), nil
}

func HashReader(reader io.Reader) (string, error) {
	hasher := sha256.New()
	_, err := io.Copy(hasher, reader)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// TeeHasher hashes everything read through it, so a download can be verified
// without a second pass over the file.
type TeeHasher struct {
	io.Reader
	hasher hash.Hash
}

func NewTeeHasher(source io.Reader) *TeeHasher {
	return &TeeHasher{Reader: source, hasher: sha256.New()}
}

func (this *TeeHasher) Read(buffer []byte) (int, error) {
	count, err := this.Reader.Read(buffer)
	_, _ = this.hasher.Write(buffer[0:count])
	return count, err
}

func (this *TeeHasher) Sum() string {
	return hex.EncodeToString(this.hasher.Sum(nil))
}
