package port

import (
	"context"

	"github.com/bnema/audiobatch/internal/domain"
)

// DirLocker guards an output directory against other processes.
type DirLocker interface {
	Lock(ctx context.Context, dir string) (unlock func(), err error)
}

// InputValidator rejects inputs that cannot be read or are plainly not
// audio before any external tool is started.
type InputValidator interface {
	CheckInput(path string) error
}

// TagReader reads the descriptive tags embedded in an audio file. It
// returns nil tags and no error when the file carries none.
type TagReader interface {
	ReadTags(path string) (*domain.AudioTags, error)
}

// Fingerprinter digests an input file's contents.
type Fingerprinter interface {
	Fingerprint(path string) (string, error)
}
