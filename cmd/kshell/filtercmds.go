package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/forestrie/go-kernelkit/bloom"
	"github.com/forestrie/go-kernelkit/shell"
)

// registerFilterCommands wires one bloom filter into the shell. has
// answers no or maybe, never yes, which is the nature of the structure.
func registerFilterCommands(sh *shell.Shell, n int, fp float64) {
	f := bloom.NewWithEstimate(n, fp)
	sh.Register(shell.Command{
		Name:  "filter",
		Usage: "filter add|has|stats|reset [args]",
		Help:  "probabilistic membership prefilter",
		Run: func(_ context.Context, out io.Writer, args []string) error {
			if len(args) == 0 {
				return usageErr("filter add|has|stats|reset [args]")
			}
			action, rest := args[0], args[1:]
			switch action {
			case "add":
				if len(rest) == 0 {
					return usageErr("filter add <text>")
				}
				f.Add([]byte(strings.Join(rest, " ")))
				fmt.Fprintf(out, "added, fill=%.4f\n", f.FillRatio())
			case "has":
				if len(rest) == 0 {
					return usageErr("filter has <text>")
				}
				if f.Has([]byte(strings.Join(rest, " "))) {
					fmt.Fprintln(out, "maybe")
				} else {
					fmt.Fprintln(out, "no")
				}
			case "stats":
				fmt.Fprintf(out, "bits=%d hashes=%d adds=%d fill=%.4f\n",
					f.Bits(), f.Hashes(), f.Adds(), f.FillRatio())
			case "reset":
				f.Reset()
			default:
				return fmt.Errorf("filter: unknown action %q", action)
			}
			return nil
		},
	})
}
