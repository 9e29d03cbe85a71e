//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package term

import "errors"

// State holds the termios settings to restore.
type State struct{}

var errUnsupported = errors.New("term: raw mode not supported on this platform")

// MakeRaw is unsupported here. Callers fall back to cooked line input.
func MakeRaw(fd int) (*State, error) {
	return nil, errUnsupported
}

// Restore is unsupported here.
func Restore(fd int, st *State) error {
	return errUnsupported
}
