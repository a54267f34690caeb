package term

import (
	"fmt"
	"os"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// openPair allocates a master/slave pty pair ready for a session: the master
// is switched to non-blocking mode so pump reads can never stall the caller,
// and local echo is cleared on the slave so the only bytes that ever appear
// on the master are the ones the child actually wrote. The slave keeps its
// default canonical modes, so line-reading children still get whole lines.
func openPair() (master, slave *os.File, err error) {
	master, slave, err = pty.Open()
	if err != nil {
		return nil, nil, &AllocationError{Err: err}
	}

	if err := syscall.SetNonblock(int(master.Fd()), true); err != nil {
		master.Close()
		slave.Close()
		return nil, nil, &AllocationError{Err: fmt.Errorf("set nonblocking: %w", err)}
	}

	if err := disableEcho(slave); err != nil {
		master.Close()
		slave.Close()
		return nil, nil, &AllocationError{Err: err}
	}

	return master, slave, nil
}

// disableEcho clears the ECHO flag on the slave side. Echo must be off before
// the child attaches: forwarded input is rendered by the caller, and kernel
// echo would duplicate every line.
func disableEcho(f *os.File) error {
	fd := int(f.Fd())
	tio, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}
	tio.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, tio); err != nil {
		return fmt.Errorf("set termios: %w", err)
	}
	return nil
}

// readable reports whether the master has bytes (or a hangup) waiting,
// without blocking. Hangup and error conditions count as readable so the
// following read can surface EOF or EIO instead of the session spinning.
func readable(f *os.File) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(f.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	return fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0, nil
}
