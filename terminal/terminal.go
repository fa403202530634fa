//go:build !windows

// Package terminal reads single keypresses from a terminal without waiting
// for the enter key.
//
// Every call saves the terminal mode, switches to non-canonical input for
// the duration of the call and puts the saved mode back before returning.
// Calls are not safe for concurrent use on the same terminal.
package terminal

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Terminal is a terminal device that keys are read from.
type Terminal struct {
	file *os.File

	getMode  func(fd uintptr, state *unix.Termios) error
	setMode  func(fd uintptr, state *unix.Termios) error
	readByte func(fd int) (byte, error)
	readable func(fd int) (bool, error)
}

// New returns a Terminal reading from f, which should be a terminal device.
func New(f *os.File) *Terminal {
	return &Terminal{
		file:     f,
		getMode:  getMode,
		setMode:  setMode,
		readByte: readByte,
		readable: readable,
	}
}

// Stdin returns a Terminal reading from standard input.
func Stdin() *Terminal {
	return New(os.Stdin)
}

// ReadCharEchoed blocks until a key is typed and returns it. The terminal
// echoes the key as usual.
//
// If the key was read but the terminal mode could not be restored, the key is
// returned together with an error for which IsWarning is true.
func (t *Terminal) ReadCharEchoed() (byte, error) {
	return t.readChar(true)
}

// ReadCharSilent is like ReadCharEchoed, but the key is not echoed.
func (t *Terminal) ReadCharSilent() (byte, error) {
	return t.readChar(false)
}

// HasPendingInput reports whether a key is waiting to be read. It never
// blocks.
func (t *Terminal) HasPendingInput() (bool, error) {
	var ready bool
	err := t.withMode(pollMode, func(fd uintptr) error {
		var err error
		ready, err = t.readable(int(fd))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPoll, err)
		}
		return nil
	})
	return ready, err
}

func (t *Terminal) readChar(echo bool) (byte, error) {
	var char byte
	err := t.withMode(charMode(echo), func(fd uintptr) error {
		var err error
		char, err = t.readByte(int(fd))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRead, err)
		}
		return nil
	})
	return char, err
}

// withMode runs fn with the terminal switched to the mode produced by
// configure. The previous mode is always put back once it has been changed.
func (t *Terminal) withMode(configure func(*unix.Termios), fn func(fd uintptr) error) error {
	fd := t.file.Fd()

	var state unix.Termios
	if err := t.getMode(fd, &state); err != nil {
		return fmt.Errorf("%w: %w", ErrModeQuery, err)
	}
	oldState := state

	configure(&state)
	if err := t.setMode(fd, &state); err != nil {
		// The mode may have been partially applied
		return errors.Join(fmt.Errorf("%w: %w", ErrModeApply, err), t.restore(fd, &oldState))
	}

	return errors.Join(fn(fd), t.restore(fd, &oldState))
}

func (t *Terminal) restore(fd uintptr, state *unix.Termios) error {
	if err := t.setMode(fd, state); err != nil {
		return fmt.Errorf("%w: %w", ErrRestore, err)
	}
	return nil
}

// ReadCharEchoed reads one key from standard input. See Terminal.ReadCharEchoed.
func ReadCharEchoed() (byte, error) {
	return Stdin().ReadCharEchoed()
}

// ReadCharSilent reads one key from standard input without echoing it.
func ReadCharSilent() (byte, error) {
	return Stdin().ReadCharSilent()
}

// HasPendingInput reports whether a key is waiting on standard input.
func HasPendingInput() (bool, error) {
	return Stdin().HasPendingInput()
}
