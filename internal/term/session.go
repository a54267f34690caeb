// Package term runs one child process at a time on a pseudo-terminal and
// streams its decoded output to a display sink.
package term

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"
	"unicode/utf8"
)

// Sink is the append-only text surface a session writes to. It is called
// from the pump goroutine and from SendInput; implementations must preserve
// insertion order and must not block or call back into the session.
type Sink interface {
	AppendText(text string, isErr bool)
}

// Command describes one child process launch.
type Command struct {
	Path string
	Args []string
	Dir  string
}

// String renders the command the way a shell prompt would show it.
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

const (
	// DefaultPollInterval is the pump cadence. It trades responsiveness
	// against idle CPU; correctness does not depend on it.
	DefaultPollInterval = 50 * time.Millisecond

	// DefaultReadChunk bounds how much one tick reads from the master.
	DefaultReadChunk = 1024

	// drainReads caps how many reads may flush buffered output after the
	// child has exited, so a straggling descendant cannot pin the session.
	drainReads = 64
)

// Options tunes a session's output pump. Zero values select the defaults.
type Options struct {
	PollInterval time.Duration
	ReadChunk    int
}

// Session owns at most one running child bound to a pty pair. Its lifecycle
// is idle -> starting -> running -> stopping -> idle; the transient states
// live inside locked sections of Start and Stop, so callers only ever
// observe running or idle. The master and slave descriptors are either both
// open or both nil, and they are closed exactly once, by whichever call
// tears the session down first.
//
// One mutex serializes the pump goroutine against SendInput and Stop, which
// arrive from the UI. Stop while a tick is in flight is safe: the tick
// re-checks the descriptors under the lock and no-ops once they are cleared.
type Session struct {
	mu sync.Mutex

	master  *os.File
	slave   *os.File
	cmd     *exec.Cmd
	running bool
	armed   bool // completion observer still owed for this cycle

	pollInterval time.Duration
	readChunk    int

	sink     Sink
	onFinish func()
}

// NewSession creates an idle session writing to sink. onFinish, if non-nil,
// is invoked exactly once per Start cycle, from whichever goroutine ends the
// session; like the sink it must not call back into the session.
func NewSession(sink Sink, onFinish func(), opts Options) *Session {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.ReadChunk <= 0 {
		opts.ReadChunk = DefaultReadChunk
	}
	return &Session{
		sink:         sink,
		onFinish:     onFinish,
		pollInterval: opts.PollInterval,
		readChunk:    opts.ReadChunk,
	}
}

// Active reports whether a child is currently believed to be running.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start launches the command on a fresh pty pair and begins pumping output.
// Valid only while idle. Allocation and spawn failures are rendered to the
// sink, fire the completion observer, and leave the session idle with no
// descriptors open.
func (s *Session) Start(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrActive
	}
	s.armed = true

	master, slave, err := openPair()
	if err != nil {
		s.failLocked(err)
		return err
	}

	c := exec.Command(cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = slave
	c.Stdout = slave
	c.Stderr = slave
	// New session with the slave as controlling terminal. The child leads
	// its own process group, so the whole tree can be signaled at once.
	c.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true}

	if err := c.Start(); err != nil {
		master.Close()
		slave.Close()
		spawnErr := &SpawnError{Path: cmd.Path, Err: err}
		s.failLocked(spawnErr)
		return spawnErr
	}

	s.master = master
	s.slave = slave
	s.cmd = c
	s.running = true

	done := make(chan error, 1)
	go func() { done <- c.Wait() }()
	go s.pump(master, done)

	return nil
}

// SendInput forwards one line to the child. Slave echo is off, so the line
// is first rendered to the sink, then written with a trailing newline to the
// master. No-op when idle or when line is empty. A failed write is rendered
// to the sink but does not end the session; a dead peer surfaces through the
// next pump tick instead.
func (s *Session) SendInput(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || line == "" {
		return nil
	}

	s.sink.AppendText(line+"\n", false)
	if _, err := s.master.Write([]byte(line + "\n")); err != nil {
		s.sink.AppendText(fmt.Sprintf("Error sending input: %v\n", err), true)
		return &WriteError{Err: err}
	}
	return nil
}

// Stop ends the session from any state. Safe to call repeatedly and
// concurrently with pump ticks.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
}

// teardownLocked is the single cleanup path: signal the child's process
// group, close both descriptors, clear the running flag, notify the
// completion observer for the current cycle. Every step tolerates having
// already happened.
func (s *Session) teardownLocked() {
	s.running = false

	if s.cmd != nil && s.cmd.Process != nil {
		// -pid addresses the whole group. It may already be gone.
		syscall.Kill(-s.cmd.Process.Pid, syscall.SIGTERM)
	}
	s.cmd = nil

	if s.master != nil {
		s.master.Close()
		s.master = nil
	}
	if s.slave != nil {
		s.slave.Close()
		s.slave = nil
	}

	s.finishLocked()
}

// failLocked reports a failed start and completes the cycle as if it had
// been stopped.
func (s *Session) failLocked(err error) {
	s.sink.AppendText(fmt.Sprintf("Error starting process: %v\n", err), true)
	s.teardownLocked()
}

// finishLocked fires the completion observer at most once per Start cycle.
func (s *Session) finishLocked() {
	if !s.armed {
		return
	}
	s.armed = false
	if s.onFinish != nil {
		s.onFinish()
	}
}

// pump drives the read loop for one session cycle. The master and done
// arguments pin the cycle: once Stop clears or a new Start replaces the
// descriptors, the next tick notices and the goroutine exits.
func (s *Session) pump(master *os.File, done chan error) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()
	for range ticker.C {
		if !s.tick(master, done) {
			return
		}
	}
}

// tick performs one poll cycle. Returns false once the session is over.
func (s *Session) tick(master *os.File, done chan error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.master != master {
		return false
	}

	// Exit check first, so the code is reported before teardown. Anything
	// the child wrote just before dying is still in the pty buffer; flush it
	// ahead of the exit line.
	select {
	case waitErr := <-done:
		s.drainLocked(master)
		s.sink.AppendText(fmt.Sprintf("\nProcess exited with code %d\n", exitCode(waitErr)), false)
		s.teardownLocked()
		return false
	default:
	}

	ready, err := readable(master)
	if err != nil {
		s.sink.AppendText(fmt.Sprintf("\nPTY error: %v\n", err), true)
		s.teardownLocked()
		return false
	}
	if !ready {
		return true
	}

	buf := make([]byte, s.readChunk)
	n, err := master.Read(buf)
	if n > 0 {
		s.sink.AppendText(decodeText(buf[:n]), false)
		return true
	}

	switch {
	case err == nil || errors.Is(err, io.EOF):
		// Far end closed.
		s.teardownLocked()
		return false
	case errors.Is(err, syscall.EAGAIN), errors.Is(err, syscall.EWOULDBLOCK), errors.Is(err, syscall.EINTR):
		// Readiness raced the read; try again next tick.
		return true
	case peerGone(err):
		s.teardownLocked()
		return false
	default:
		s.sink.AppendText(fmt.Sprintf("\nPTY error: %v\n", err), true)
		s.teardownLocked()
		return false
	}
}

// drainLocked flushes output still buffered in the pty after the child has
// exited, bounded by drainReads.
func (s *Session) drainLocked(master *os.File) {
	buf := make([]byte, s.readChunk)
	for i := 0; i < drainReads; i++ {
		ready, err := readable(master)
		if err != nil || !ready {
			return
		}
		n, err := master.Read(buf)
		if n > 0 {
			s.sink.AppendText(decodeText(buf[:n]), false)
		}
		if err != nil {
			return
		}
	}
}

// exitCode maps a Wait result to the reported code: the exit status for a
// natural death, the negated signal number for a signaled one.
func exitCode(waitErr error) int {
	if waitErr == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return -int(ws.Signal())
		}
		return exitErr.ExitCode()
	}
	return -1
}

// decodeText interprets raw pty bytes as UTF-8, substituting the
// replacement character for invalid sequences. Decode problems never fail a
// read.
func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return string(bytes.ToValidUTF8(b, []byte("�")))
}
