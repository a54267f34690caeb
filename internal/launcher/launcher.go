package launcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/scriptdeck/scriptdeck/internal/config"
	"github.com/scriptdeck/scriptdeck/internal/script"
	"github.com/scriptdeck/scriptdeck/internal/term"
)

// Runner owns the single pty session and the scrollback buffer behind the
// terminal panel. One script runs at a time; launching a new one stops the
// active session and starts the display over.
//
// Session callbacks arrive on the poll goroutine, so they only touch the
// buffer and poke the change channels. The UI drains Output and Finished
// and re-reads state from here.
type Runner struct {
	cfg *config.Config
	buf *Buffer

	mu        sync.Mutex
	session   *term.Session
	current   script.Entry
	started   bool
	startedAt time.Time

	outputCh   chan struct{}
	finishedCh chan struct{}
}

func NewRunner(cfg *config.Config) *Runner {
	r := &Runner{
		cfg:        cfg,
		buf:        NewBuffer(cfg.Terminal.ScrollbackBytes),
		outputCh:   make(chan struct{}, 1),
		finishedCh: make(chan struct{}, 1),
	}
	r.session = term.NewSession(r, r.finished, term.Options{
		PollInterval: time.Duration(cfg.Terminal.PollIntervalMs) * time.Millisecond,
		ReadChunk:    cfg.Terminal.ReadChunkBytes,
	})
	return r
}

// Run launches the given script, stopping any active session first. The
// scrollback is cleared and a command banner is written before the child
// starts, so a failed launch still shows what was attempted.
func (r *Runner) Run(e script.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session.Active() {
		r.session.Stop()
	}

	interp := script.InterpreterFor(e.Path, r.cfg.Runner.Interpreter, r.cfg.Runner.Interpreters)
	cmd := term.Command{
		Path: interp,
		Args: []string{e.Path},
		Dir:  filepath.Dir(e.Path),
	}

	r.buf.Clear()
	r.AppendText("$ "+cmd.String()+"\n", false)

	r.current = e
	r.started = true
	r.startedAt = time.Now()
	return r.session.Start(cmd)
}

// SendInput forwards one line to the running script's stdin.
func (r *Runner) SendInput(line string) error {
	return r.session.SendInput(line)
}

// Stop terminates the active session, if any.
func (r *Runner) Stop() {
	r.session.Stop()
}

func (r *Runner) Running() bool {
	return r.session.Active()
}

// CurrentScript returns the most recently launched entry.
func (r *Runner) CurrentScript() (script.Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.started
}

// StartedAt returns when the most recent launch happened.
func (r *Runner) StartedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startedAt
}

func (r *Runner) Buffer() *Buffer {
	return r.buf
}

// Clear empties the terminal scrollback.
func (r *Runner) Clear() {
	r.buf.Clear()
	r.notifyOutput()
}

// Output signals when new output has been buffered. The channel holds at
// most one pending notification; the reader re-reads the buffer on each.
func (r *Runner) Output() <-chan struct{} {
	return r.outputCh
}

// Finished signals when a session ends, whether by exit, stop, or a
// failed launch.
func (r *Runner) Finished() <-chan struct{} {
	return r.finishedCh
}

// AppendText implements term.Sink.
func (r *Runner) AppendText(text string, isErr bool) {
	r.buf.Append(text, isErr)
	r.notifyOutput()
}

func (r *Runner) finished() {
	select {
	case r.finishedCh <- struct{}{}:
	default:
	}
}

func (r *Runner) notifyOutput() {
	select {
	case r.outputCh <- struct{}{}:
	default:
	}
}
