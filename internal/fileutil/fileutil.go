package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrOutputBusy is returned when another process holds the lock for an
// output path.
var ErrOutputBusy = errors.New("output is being written by another vidcrop process")

// SamePath reports whether a and b name the same file. Paths that do not
// exist yet are compared after cleaning.
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

// OutputLock is an advisory lock keyed by an output path.
type OutputLock struct {
	path string
	lock *flock.Flock
}

// LockOutput takes a non-blocking lock for outputPath. Lock files live in
// lockDir, named by a hash of the absolute output path, so nothing is
// created beside the output itself.
func LockOutput(lockDir, outputPath string) (*OutputLock, error) {
	abs, err := filepath.Abs(outputPath)
	if err != nil {
		return nil, fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	lockPath := filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")

	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutputBusy, abs)
	}
	return &OutputLock{path: lockPath, lock: lock}, nil
}

// Path returns the lock file location.
func (l *OutputLock) Path() string {
	return l.path
}

// Unlock releases the lock. The lock file is left in place for reuse.
func (l *OutputLock) Unlock() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
