package terminal

import "errors"

// Errors returned by Terminal. They wrap the underlying OS error.
var (
	ErrModeQuery = errors.New("could not read terminal mode")
	ErrModeApply = errors.New("could not apply terminal mode")
	ErrRead      = errors.New("could not read from terminal")
	ErrPoll      = errors.New("could not check terminal for input")
	ErrRestore   = errors.New("could not restore terminal mode")
)

// IsWarning reports whether err only says that the terminal mode could not be
// restored. In that case the result returned alongside err is still valid.
func IsWarning(err error) bool {
	if err == nil || !errors.Is(err, ErrRestore) {
		return false
	}
	return !errors.Is(err, ErrModeQuery) &&
		!errors.Is(err, ErrModeApply) &&
		!errors.Is(err, ErrRead) &&
		!errors.Is(err, ErrPoll)
}
