package main

import (
	"context"
	"fmt"
	"io"

	"github.com/forestrie/go-kernelkit/rbtree"
	"github.com/forestrie/go-kernelkit/shell"
)

// entry is a string keyed row for the tree command. Ordering ignores the
// value, so lookups and deletes can probe with the key alone.
type entry struct {
	key string
	val string
}

func entryLess(a, b entry) bool { return a.key < b.key }

// registerTreeCommands wires one ordered key value store into the shell.
func registerTreeCommands(sh *shell.Shell) {
	tr := rbtree.New(entryLess)
	sh.Register(shell.Command{
		Name:  "tree",
		Usage: "tree set|get|del|ls|min|max [args]",
		Help:  "ordered key value store on a red black tree",
		Run: func(_ context.Context, out io.Writer, args []string) error {
			if len(args) == 0 {
				return usageErr("tree set|get|del|ls|min|max [args]")
			}
			action, rest := args[0], args[1:]
			switch action {
			case "set":
				if len(rest) != 2 {
					return usageErr("tree set <key> <value>")
				}
				old, replaced := tr.ReplaceOrInsert(entry{key: rest[0], val: rest[1]})
				if replaced {
					fmt.Fprintf(out, "replaced %s (was %s)\n", rest[0], old.val)
				} else {
					fmt.Fprintf(out, "added %s\n", rest[0])
				}
			case "get":
				if len(rest) != 1 {
					return usageErr("tree get <key>")
				}
				e, ok := tr.Get(entry{key: rest[0]})
				if !ok {
					return fmt.Errorf("no entry for %s", rest[0])
				}
				fmt.Fprintln(out, e.val)
			case "del":
				if len(rest) != 1 {
					return usageErr("tree del <key>")
				}
				if _, ok := tr.Delete(entry{key: rest[0]}); !ok {
					return fmt.Errorf("no entry for %s", rest[0])
				}
				fmt.Fprintf(out, "del %s ok\n", rest[0])
			case "ls":
				tr.Ascend(func(e entry) bool {
					fmt.Fprintf(out, "%s\t%s\n", e.key, e.val)
					return true
				})
			case "min", "max":
				var e entry
				var ok bool
				if action == "min" {
					e, ok = tr.Min()
				} else {
					e, ok = tr.Max()
				}
				if !ok {
					return fmt.Errorf("tree is empty")
				}
				fmt.Fprintf(out, "%s\t%s\n", e.key, e.val)
			default:
				return fmt.Errorf("tree: unknown action %q", action)
			}
			return nil
		},
	})
}
