package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/forestrie/go-kernelkit/ringbuf"
	"github.com/forestrie/go-kernelkit/shell"
)

// registerFifoCommands wires one byte fifo into the shell. Put and get
// report short transfers rather than failing, the same contract the
// buffer itself has.
func registerFifoCommands(sh *shell.Shell, capacity int) {
	b := ringbuf.New(capacity)
	sh.Register(shell.Command{
		Name:  "fifo",
		Usage: "fifo put|get|peek|skip|len|reset [args]",
		Help:  "fixed capacity byte fifo",
		Run: func(_ context.Context, out io.Writer, args []string) error {
			if len(args) == 0 {
				return usageErr("fifo put|get|peek|skip|len|reset [args]")
			}
			action, rest := args[0], args[1:]
			switch action {
			case "put":
				if len(rest) == 0 {
					return usageErr("fifo put <text>")
				}
				data := []byte(strings.Join(rest, " "))
				n := b.Put(data)
				fmt.Fprintf(out, "queued %d of %d bytes\n", n, len(data))
			case "get", "peek":
				n := b.Len()
				if len(rest) == 1 {
					var err error
					if n, err = parseCount(rest[0]); err != nil {
						return err
					}
				}
				buf := make([]byte, n)
				if action == "get" {
					n = b.Get(buf)
				} else {
					n = b.Peek(buf)
				}
				fmt.Fprintf(out, "%q\n", buf[:n])
			case "skip":
				if len(rest) != 1 {
					return usageErr("fifo skip <n>")
				}
				n, err := parseCount(rest[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "skipped %d bytes\n", b.Skip(n))
			case "len":
				fmt.Fprintf(out, "len=%d cap=%d free=%d\n", b.Len(), b.Cap(), b.Free())
			case "reset":
				b.Reset()
			default:
				return fmt.Errorf("fifo: unknown action %q", action)
			}
			return nil
		},
	})
}
