// Package fingerprint digests input files so stored outcomes can be matched
// to the exact source bytes that were processed.
package fingerprint

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/port"
)

type Blake2b struct{}

func New() port.Fingerprinter {
	return Blake2b{}
}

// Fingerprint returns "blake2b-256:<hex>" of the file contents.
func (Blake2b) Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}
	return "blake2b-256:" + hex.EncodeToString(h.Sum(nil)), nil
}

var _ port.Fingerprinter = Blake2b{}
