package viewer

import (
	"errors"
	"fmt"
)

// ErrNoImage is returned by operations that need a loaded image.
var ErrNoImage = errors.New("no image loaded")

// ErrNoClipboard is returned by Copy and Paste when no clipboard is configured.
var ErrNoClipboard = errors.New("clipboard not available")

// DecodeError reports a failed import. The controller state is unchanged.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("import %s: %v", e.Path, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a failed export.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("export %s: %v", e.Path, e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }
