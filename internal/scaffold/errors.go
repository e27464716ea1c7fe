package scaffold

import (
	"errors"
	"fmt"

	"github.com/fhevm-examples/exgen/internal/render"
)

var (
	// ErrTargetNotEmpty is returned when the target directory already has
	// content. Existing projects are never overwritten.
	ErrTargetNotEmpty = errors.New("target directory is not empty")

	// ErrTargetBusy is returned when another run holds the target directory.
	ErrTargetBusy = errors.New("target directory is in use by another run")
)

// TargetBusyError reports a target claimed by another run. Lock is the
// lock file that holds it, empty when the claim is held in this process.
// It matches ErrTargetBusy with errors.Is.
type TargetBusyError struct {
	Target string
	Lock   string
}

func (e *TargetBusyError) Error() string {
	if e.Lock == "" {
		return fmt.Sprintf("%s: %v", e.Target, ErrTargetBusy)
	}
	return fmt.Sprintf("%s (lock file %s exists): %v", e.Target, e.Lock, ErrTargetBusy)
}

func (e *TargetBusyError) Is(target error) bool { return target == ErrTargetBusy }

// MissingArtifactError reports a contract or test file that could not be
// read or is empty. It matches render.ErrMissingArtifact with errors.Is.
type MissingArtifactError struct {
	Example string
	Path    string
	Err     error
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("example %q: artifact %s: %v", e.Example, e.Path, e.Err)
}

func (e *MissingArtifactError) Unwrap() error { return e.Err }

func (e *MissingArtifactError) Is(target error) bool {
	return target == render.ErrMissingArtifact
}

// FilesystemError reports a failed filesystem operation and the pipeline
// step it belonged to.
type FilesystemError struct {
	Step string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Step, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// Pipeline steps named in FilesystemError.
const (
	stepCheck    = "check target"
	stepClaim    = "claim target"
	stepTemplate = "copy template"
	stepInject   = "inject artifacts"
	stepDocs     = "write documents"
	stepSummary  = "update summary"
)
