//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// Package term switches a terminal between cooked and raw mode. Raw mode
// is entered per line read and left before command handlers run, so
// handler output renders under normal output processing.
package term

import "golang.org/x/sys/unix"

// State holds the termios settings to restore.
type State struct {
	termios unix.Termios
}

// MakeRaw puts the terminal on fd into raw mode: no echo, no canonical
// line assembly, no signal keys, no output processing. The returned state
// restores the previous settings.
func MakeRaw(fd int) (*State, error) {
	tio, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, err
	}
	saved := *tio

	tio.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	tio.Oflag &^= unix.OPOST
	tio.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	tio.Cflag &^= unix.CSIZE | unix.PARENB
	tio.Cflag |= unix.CS8
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, tio); err != nil {
		return nil, err
	}
	return &State{termios: saved}, nil
}

// Restore puts the terminal back into the captured state.
func Restore(fd int, st *State) error {
	return unix.IoctlSetTermios(fd, ioctlWriteTermios, &st.termios)
}
