// Package lock serializes writers to the same output directory across
// processes using advisory file locks kept under the data directory.
package lock

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/crypto/blake2b"

	"github.com/bnema/audiobatch/internal/port"
)

var ErrLockTimeout = errors.New("output directory is locked by another run")

const defaultRetryDelay = 100 * time.Millisecond

type DirLocker struct {
	lockDir    string
	timeout    time.Duration
	retryDelay time.Duration
}

// NewDirLocker keeps lock files in lockDir. A zero timeout waits until the
// caller's context is done.
func NewDirLocker(lockDir string, timeout time.Duration) *DirLocker {
	return &DirLocker{
		lockDir:    lockDir,
		timeout:    timeout,
		retryDelay: defaultRetryDelay,
	}
}

// LockPath returns the lock file guarding dir. Lock files are named by a
// digest of the absolute directory so any path spelling maps to one lock.
func (l *DirLocker) LockPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	sum := blake2b.Sum256([]byte(abs))
	return filepath.Join(l.lockDir, hex.EncodeToString(sum[:12])+".lock"), nil
}

func (l *DirLocker) Lock(ctx context.Context, dir string) (func(), error) {
	path, err := l.LockPath(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(l.lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	fl := flock.New(path)
	locked, err := fl.TryLockContext(ctx, l.retryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, dir)
		}
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, dir)
	}

	return func() { _ = fl.Unlock() }, nil
}

var _ port.DirLocker = (*DirLocker)(nil)
