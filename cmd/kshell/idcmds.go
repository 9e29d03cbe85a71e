package main

import (
	"context"
	"fmt"
	"io"

	"github.com/forestrie/go-kernelkit/alloc"
	"github.com/forestrie/go-kernelkit/idmap"
	"github.com/forestrie/go-kernelkit/shell"
)

// registerIDCommands wires one first fit id map into the shell. The gate
// bounds how many tree nodes the map may hold live, so quota exhaustion
// can be demonstrated from the command line.
func registerIDCommands(sh *shell.Shell, gate alloc.Gate) {
	m := idmap.New[string](idmap.WithFirstFit(), idmap.WithGate(gate))
	sh.Register(shell.Command{
		Name:  "id",
		Usage: "id insert|alloc|get|del|ls|dump|drain|stats [args]",
		Help:  "sparse id map with first fit allocation",
		Run: func(_ context.Context, out io.Writer, args []string) error {
			if len(args) == 0 {
				return usageErr("id insert|alloc|get|del|ls|dump|drain|stats [args]")
			}
			action, rest := args[0], args[1:]
			switch action {
			case "insert":
				if len(rest) != 2 {
					return usageErr("id insert <key> <value>")
				}
				key, err := parseKey(rest[0])
				if err != nil {
					return err
				}
				if err := m.Insert(key, rest[1]); err != nil {
					return err
				}
				fmt.Fprintf(out, "insert %d ok\n", key)
			case "alloc":
				if len(rest) != 1 {
					return usageErr("id alloc <value>")
				}
				key, err := m.Alloc(rest[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d\n", key)
			case "get":
				if len(rest) != 1 {
					return usageErr("id get <key>")
				}
				key, err := parseKey(rest[0])
				if err != nil {
					return err
				}
				v, ok := m.Get(key)
				if !ok {
					return fmt.Errorf("no entry at %d", key)
				}
				fmt.Fprintln(out, v)
			case "del":
				if len(rest) != 1 {
					return usageErr("id del <key>")
				}
				key, err := parseKey(rest[0])
				if err != nil {
					return err
				}
				if _, ok := m.Remove(key); !ok {
					return fmt.Errorf("no entry at %d", key)
				}
				fmt.Fprintf(out, "del %d ok\n", key)
			case "ls":
				it := m.Iter()
				for it.Next() {
					fmt.Fprintf(out, "%d\t%s\n", it.Key(), it.Value())
				}
			case "dump":
				m.Dump(out)
			case "drain":
				n := m.Len()
				m.Drain(func(k uint64, v string) {
					fmt.Fprintf(out, "%d\t%s\n", k, v)
				})
				fmt.Fprintf(out, "drained %d entries\n", n)
			case "stats":
				fmt.Fprintf(out, "len=%d height=%d nodes=%d\n", m.Len(), m.Height(), m.Nodes())
			default:
				return fmt.Errorf("id: unknown action %q", action)
			}
			return nil
		},
	})
}
