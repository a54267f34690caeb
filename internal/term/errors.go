package term

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrActive is returned by Start when a session is already running.
var ErrActive = errors.New("session already active")

// AllocationError wraps a failure to acquire or configure a pty pair.
type AllocationError struct {
	Err error
}

func (e *AllocationError) Error() string { return fmt.Sprintf("allocate pty: %v", e.Err) }
func (e *AllocationError) Unwrap() error { return e.Err }

// SpawnError wraps a failure to start the child process. The pty pair is
// already closed by the time this is returned.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string { return fmt.Sprintf("start %s: %v", e.Path, e.Err) }
func (e *SpawnError) Unwrap() error { return e.Err }

// WriteError wraps a failed input write. It does not terminate the session;
// a dead peer is discovered by the next pump tick.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write input: %v", e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// peerGone classifies a master read failure: true means the far end is
// simply gone (a pty master reads EIO once every slave descriptor is
// closed), so the session ends silently. Any other failure is rendered
// before teardown. Read failures never cross an API boundary as values;
// the pump is the only reader and it acts on them immediately.
func peerGone(err error) bool {
	return errors.Is(err, syscall.EIO) || errors.Is(err, os.ErrClosed)
}
