/*
Package shell implements a small interactive command interpreter in the
style of an embedded debug console.

A Shell owns an ordered registry of named commands, a line editor and a
bounded history. Run reads one line at a time, splits it into words and
dispatches on the first word:

	sh := shell.New(shell.WithPrompt("dbg> "))
	sh.Register(shell.Command{
		Name:  "echo",
		Usage: "echo [words]",
		Help:  "print the arguments",
		Run: func(ctx context.Context, out io.Writer, args []string) error {
			fmt.Fprintln(out, strings.Join(args, " "))
			return nil
		},
	})
	err := sh.Run(ctx)

When standard input is a terminal the shell switches it into raw mode for
the duration of each line read and provides emacs style editing: cursor
movement, kill to start or end of line, and history recall on the arrow
keys. On any other input the shell degrades to plain buffered reads, which
makes piped scripts and tests behave the same as typed input minus the
editing.

The builtins help, history and exit are always registered. A line whose
first non blank character is '#' is a comment and is ignored, so command
files can be annotated and piped in.

A Shell is confined to one goroutine. Run returns after exit, on end of
input, or once the context is cancelled.
*/
package shell
