package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// lockSuffix names the lock file created next to a target directory while
// a run writes into it.
const lockSuffix = ".exgen.lock"

// claims tracks targets held by this process. The lock file covers other
// processes.
var claims = struct {
	sync.Mutex
	held map[string]bool
}{held: make(map[string]bool)}

// absPath resolves p against the working directory so that targets such
// as "." get a lock file and index beside them instead of inside.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// claimTarget reserves target for the caller. The returned release func
// must be called once writing is finished. A lock file left behind by a
// process that no longer runs is taken over.
func claimTarget(fsys afero.Fs, target string) (release func(), err error) {
	key := absPath(target)

	claims.Lock()
	if claims.held[key] {
		claims.Unlock()
		return nil, &TargetBusyError{Target: target}
	}
	claims.held[key] = true
	claims.Unlock()

	drop := func() {
		claims.Lock()
		delete(claims.held, key)
		claims.Unlock()
	}

	lock := key + lockSuffix
	if err := fsys.MkdirAll(filepath.Dir(lock), 0o755); err != nil {
		drop()
		return nil, &FilesystemError{Step: stepClaim, Path: filepath.Dir(lock), Err: err}
	}
	f, err := createLock(fsys, lock)
	if errors.Is(err, fs.ErrExist) && staleLock(fsys, lock) {
		if rmErr := fsys.Remove(lock); rmErr == nil {
			f, err = createLock(fsys, lock)
		}
	}
	if err != nil {
		drop()
		if errors.Is(err, fs.ErrExist) {
			return nil, &TargetBusyError{Target: target, Lock: lock}
		}
		return nil, &FilesystemError{Step: stepClaim, Path: lock, Err: err}
	}
	fmt.Fprintf(f, "%d\n", os.Getpid())
	f.Close()

	return func() {
		_ = fsys.Remove(lock)
		drop()
	}, nil
}

func createLock(fsys afero.Fs, lock string) (afero.File, error) {
	return fsys.OpenFile(lock, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
}

// staleLock reports whether lock names a process that has exited. A lock
// that cannot be read or parsed is never considered stale.
func staleLock(fsys afero.Fs, lock string) bool {
	data, err := afero.ReadFile(fsys, lock)
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 || pid == os.Getpid() {
		return false
	}
	return !processAlive(pid)
}

// checkTarget accepts a missing or empty directory and reports whether it
// already existed.
func checkTarget(fsys afero.Fs, target string) (existed bool, err error) {
	info, err := fsys.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &FilesystemError{Step: stepCheck, Path: target, Err: err}
	}
	if !info.IsDir() {
		return true, fmt.Errorf("%s is a file: %w", target, ErrTargetNotEmpty)
	}

	empty, err := afero.IsEmpty(fsys, target)
	if err != nil {
		return true, &FilesystemError{Step: stepCheck, Path: target, Err: err}
	}
	if !empty {
		return true, fmt.Errorf("%s: %w", target, ErrTargetNotEmpty)
	}
	return true, nil
}

// rollback restores target to its state before the run: removed when the
// run created it, emptied when it existed.
func rollback(fsys afero.Fs, target string, existed bool) error {
	if err := fsys.RemoveAll(target); err != nil {
		return err
	}
	if existed {
		return fsys.MkdirAll(target, 0o755)
	}
	return nil
}
