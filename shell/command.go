package shell

import (
	"context"
	"errors"
	"io"
)

// ErrExit tells the read loop to stop. Command handlers return it
// (usually wrapped by the exit builtin) to end the session cleanly.
var ErrExit = errors.New("shell: exit")

// ErrUnknownCommand is wrapped into the error reported when a line names
// no registered command.
var ErrUnknownCommand = errors.New("shell: unknown command")

// Command is one named operation. Name is the dispatch key and must be
// unique within a shell. Usage is a one line argument sketch shown by
// help, Help a one line description.
type Command struct {
	Name  string
	Usage string
	Help  string

	// Run handles one invocation. args holds the words after the command
	// name. Output belongs on out rather than os.Stdout so sessions can
	// be captured and tested.
	Run func(ctx context.Context, out io.Writer, args []string) error
}
