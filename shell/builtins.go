package shell

import (
	"context"
	"fmt"
	"io"
)

func (s *Shell) registerBuiltins() {
	s.Register(Command{
		Name:  "help",
		Usage: "help",
		Help:  "list the available commands",
		Run: func(_ context.Context, out io.Writer, _ []string) error {
			s.printHelp(out)
			return nil
		},
	})
	s.Register(Command{
		Name:  "history",
		Usage: "history",
		Help:  "show recent command lines",
		Run: func(_ context.Context, out io.Writer, _ []string) error {
			for i, line := range s.hist.list() {
				fmt.Fprintf(out, "%4d  %s\n", i+1, line)
			}
			return nil
		},
	})
	s.Register(Command{
		Name:  "exit",
		Usage: "exit",
		Help:  "leave the shell",
		Run: func(_ context.Context, _ io.Writer, _ []string) error {
			return ErrExit
		},
	})
}

// printHelp lists every command in name order with its usage and help
// text. Width padding happens before styling so colour codes never skew
// the columns.
func (s *Shell) printHelp(out io.Writer) {
	width := 0
	s.cmds.Ascend(func(c Command) bool {
		u := c.Usage
		if u == "" {
			u = c.Name
		}
		if len(u) > width {
			width = len(u)
		}
		return true
	})
	s.cmds.Ascend(func(c Command) bool {
		u := c.Usage
		if u == "" {
			u = c.Name
		}
		cell := fmt.Sprintf("%-*s", width, u)
		fmt.Fprintf(out, "  %s  %s\n", s.render(s.styles.Name, cell), s.render(s.styles.Muted, c.Help))
		return true
	})
}
