//go:build !windows

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"
	"unicode/utf8"

	"github.com/stefansundin/go-zflag"
	"github.com/stefansundin/keyhit/terminal"
	"golang.org/x/term"
)

const version = "0.0.1"

// The terminal is only in silent mode while a key is being read. Keys typed
// between polls are echoed by the terminal either way.
const echoUsage = "Let the terminal echo keys as they are read. Without it, only keys typed while a read is in progress are hidden; keys typed during the --interval wait between polls are still echoed. (use --interval 0 to keep that window small)"

func main() {
	exitCode, err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode)
}

func run() (int, error) {
	var quit string
	var interval time.Duration
	var echo, versionFlag bool
	zflag.StringVar(&quit, "quit", "O", "The key that ends the program.")
	zflag.DurationVar(&interval, "interval", 10*time.Millisecond, "How long to wait between polls when no key is pending. (0 polls continuously)")
	zflag.BoolVar(&echo, "echo", false, echoUsage)
	zflag.BoolVar(&versionFlag, "version", false, "Print version number.")
	zflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keyhit version %s\n", version)
		fmt.Fprintln(os.Stderr, "Prints each key as soon as it is pressed, along with how many times")
		fmt.Fprintln(os.Stderr, "the terminal was polled while waiting for it.")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "Usage: %s [parameters]\n", os.Args[0])
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Parameters:")
		zflag.PrintDefaults()
	}
	zflag.Parse()

	if versionFlag {
		fmt.Println(version)
		return 0, nil
	}

	if zflag.NArg() > 0 {
		zflag.Usage()
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Error: keyhit does not take positional arguments.")
		return 1, nil
	}
	quitKey, err := parseKey(quit)
	if err != nil {
		return 1, err
	}
	if interval < 0 {
		return 1, errors.New("Error: the interval can not be negative.")
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return 1, errors.New("Error: stdin is not a terminal.")
	}

	// Every call restores the terminal before returning, so an interrupt only
	// needs to stop the loop
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt)
	defer signal.Stop(signalChannel)

	fmt.Fprintf(os.Stderr, "Press %q to exit.\n", quitKey)
	w := watcher{
		kb:       terminal.Stdin(),
		out:      os.Stdout,
		errOut:   os.Stderr,
		quitKey:  quitKey,
		echo:     echo,
		interval: interval,
	}
	return w.run(signalChannel)
}

type keyboard interface {
	HasPendingInput() (bool, error)
	ReadCharEchoed() (byte, error)
	ReadCharSilent() (byte, error)
}

// watcher polls the keyboard and prints every key until the quit key
type watcher struct {
	kb       keyboard
	out      io.Writer
	errOut   io.Writer
	quitKey  byte
	echo     bool
	interval time.Duration
}

func (w *watcher) run(interrupt <-chan os.Signal) (int, error) {
	readChar := w.kb.ReadCharSilent
	if w.echo {
		readChar = w.kb.ReadCharEchoed
	}

	polls := 0
	for {
		select {
		case <-interrupt:
			fmt.Fprintln(w.errOut, "\nInterrupted.")
			return 1, nil
		default:
		}

		ready, err := w.kb.HasPendingInput()
		if err = w.check(err); err != nil {
			return 1, err
		}
		if !ready {
			polls++
			if w.interval > 0 {
				time.Sleep(w.interval)
			}
			continue
		}

		c, err := readChar()
		if err = w.check(err); err != nil {
			return 1, err
		}
		fmt.Fprintln(w.out, formatKey(c, polls))
		polls = 0

		if c == w.quitKey {
			return 0, nil
		}
	}
}

// check prints restore warnings and turns anything else into a fatal error
func (w *watcher) check(err error) error {
	if err == nil {
		return nil
	}
	if terminal.IsWarning(err) {
		fmt.Fprintf(w.errOut, "Warning: %v\n", err)
		return nil
	}
	return fmt.Errorf("Error: %w", err)
}

// parseKey accepts a single ASCII character
func parseKey(s string) (byte, error) {
	if len(s) != 1 {
		if utf8.RuneCountInString(s) == 1 {
			return 0, fmt.Errorf("Error: the quit key must be a single-byte character, got %q.", s)
		}
		return 0, fmt.Errorf("Error: the quit key must be exactly one character, got %q.", s)
	}
	if s[0] >= utf8.RuneSelf {
		return 0, fmt.Errorf("Error: the quit key must be a single-byte character, got %q.", s)
	}
	return s[0], nil
}

func formatKey(c byte, polls int) string {
	noun := "polls"
	if polls == 1 {
		noun = "poll"
	}
	return fmt.Sprintf("%q after %d %s", c, polls, noun)
}
