//go:build !windows

package terminal

import (
	"io"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// charMode makes a single keypress satisfy a blocking read
func charMode(echo bool) func(*unix.Termios) {
	return func(state *unix.Termios) {
		state.Lflag &^= unix.ICANON
		if !echo {
			state.Lflag &^= unix.ECHO
		}
		state.Cc[unix.VMIN] = 1
		state.Cc[unix.VTIME] = 0
	}
}

// pollMode never waits for input
func pollMode(state *unix.Termios) {
	state.Lflag &^= unix.ICANON
	state.Cc[unix.VMIN] = 0
	state.Cc[unix.VTIME] = 0
}

func getMode(fd uintptr, state *unix.Termios) error {
	return termios.Tcgetattr(fd, state)
}

func setMode(fd uintptr, state *unix.Termios) error {
	return termios.Tcsetattr(fd, termios.TCSANOW, state)
}

func readByte(fd int) (byte, error) {
	var buf [1]byte
	for {
		n, err := unix.Read(fd, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, io.EOF
		}
		return buf[0], nil
	}
}

// readable asks the OS whether fd has input waiting, with a zero timeout.
// Like select(2), a hangup or error counts as readable so that the next read
// reports it.
func readable(fd int) (bool, error) {
	for {
		fds := []unix.PollFd{
			{Fd: int32(fd), Events: unix.POLLIN},
		}
		n, err := unix.Poll(fds, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		if n == 0 {
			return false, nil
		}
		if fds[0].Revents&unix.POLLNVAL != 0 {
			return false, unix.EBADF
		}
		return fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0, nil
	}
}
