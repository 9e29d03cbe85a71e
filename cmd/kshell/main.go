// kshell is an interactive console for poking at the kernelkit
// containers: the sparse id map, the byte fifo and the red black tree.
// It doubles as a demo surface and a way to reproduce container states
// by piping in command scripts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/forestrie/go-kernelkit/alloc"
	"github.com/forestrie/go-kernelkit/shell"
)

var (
	logLevel string
	logFile  string
	noColor  bool
	execLine string
	fifoCap  int
	idQuota  int
	filterN  int
	filterFP float64
)

var rootCmd = &cobra.Command{
	Use:          "kshell [script]",
	Short:        "Interactive console for the kernelkit containers",
	Args:         cobra.MaximumNArgs(1),
	RunE:         runShell,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "minimum log level")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this rotated file instead of stderr")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colour output")
	rootCmd.Flags().StringVarP(&execLine, "exec", "c", "", "run one command line and exit")
	rootCmd.Flags().IntVar(&fifoCap, "fifo-cap", 64, "fifo capacity in bytes, rounded up to a power of two")
	rootCmd.Flags().IntVar(&idQuota, "id-quota", 0, "cap on live id map nodes, 0 for unlimited")
	rootCmd.Flags().IntVar(&filterN, "filter-n", 1024, "bloom filter sizing, expected element count")
	rootCmd.Flags().Float64Var(&filterFP, "filter-fp", 0.01, "bloom filter sizing, target false positive rate")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kshell:", err)
		os.Exit(1)
	}
}

func runShell(cmd *cobra.Command, args []string) error {
	log, err := buildLogger(logLevel, logFile)
	if err != nil {
		return err
	}
	defer log.Sync()
	log = log.With(zap.String("session", uuid.NewString()))

	opts := []shell.Option{
		shell.WithPrompt("kshell> "),
		shell.WithLogger(log),
	}
	if noColor {
		opts = append(opts, shell.WithColor(false))
	}
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		opts = append(opts, shell.WithInput(f))
	}

	sh := shell.New(opts...)
	gate := alloc.Unlimited()
	if idQuota > 0 {
		gate = alloc.Quota(idQuota)
	}
	registerIDCommands(sh, gate)
	registerFifoCommands(sh, fifoCap)
	registerTreeCommands(sh)
	registerFilterCommands(sh, filterN, filterFP)

	// Interrupts cancel the context; the shell notices between lines.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if execLine != "" {
		return sh.Exec(ctx, execLine)
	}
	return sh.Run(ctx)
}
