package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/forestrie/go-kernelkit/internal/term"
	"github.com/forestrie/go-kernelkit/rbtree"
)

type config struct {
	in      io.Reader
	out     io.Writer
	prompt  string
	log     *zap.Logger
	styles  *Styles
	color   *bool
	histMax int
}

// Option configures a Shell at construction.
type Option func(*config)

// WithInput sets the reader lines are taken from. Line editing and
// history recall engage only when the reader is a terminal.
func WithInput(r io.Reader) Option {
	return func(c *config) { c.in = r }
}

// WithOutput sets the writer for prompts, command output and errors.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.out = w }
}

// WithPrompt sets the prompt text.
func WithPrompt(p string) Option {
	return func(c *config) { c.prompt = p }
}

// WithLogger attaches a logger for session diagnostics. The default is a
// no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithStyles replaces the colour scheme.
func WithStyles(st *Styles) Option {
	return func(c *config) { c.styles = st }
}

// WithColor forces colour output on or off. Without it colour follows
// whether the output is a terminal.
func WithColor(on bool) Option {
	return func(c *config) { c.color = &on }
}

// WithHistoryLimit caps the number of lines history retains.
func WithHistoryLimit(n int) Option {
	return func(c *config) { c.histMax = n }
}

// Shell is an interactive command interpreter. Construct with New,
// populate with Register, then drive with Run or Exec. A Shell is
// confined to one goroutine.
type Shell struct {
	in     io.Reader
	out    io.Writer
	prompt string
	log    *zap.Logger
	styles *Styles
	color  bool

	cmds *rbtree.Tree[Command]
	hist *history
	ed   *editor
}

// New builds a shell reading os.Stdin and writing os.Stdout unless the
// options say otherwise. The help, history and exit builtins come
// pre-registered.
func New(opts ...Option) *Shell {
	cfg := config{
		in:      os.Stdin,
		out:     os.Stdout,
		prompt:  "> ",
		log:     zap.NewNop(),
		styles:  DefaultStyles(),
		histMax: 128,
	}
	for _, o := range opts {
		o(&cfg)
	}

	s := &Shell{
		in:     cfg.in,
		out:    cfg.out,
		prompt: cfg.prompt,
		log:    cfg.log,
		styles: cfg.styles,
		cmds:   rbtree.New[Command](func(a, b Command) bool { return a.Name < b.Name }),
		hist:   newHistory(cfg.histMax),
	}
	if cfg.color != nil {
		s.color = *cfg.color
	} else if f, ok := cfg.out.(*os.File); ok {
		s.color = isatty.IsTerminal(f.Fd())
	}
	s.ed = newEditor(s.in, s.out, s.hist)
	s.registerBuiltins()
	return s
}

// Register adds cmd to the dispatch table. Registration is static setup
// done before Run, so a duplicate name, an empty name or a nil handler
// panics rather than erroring.
func (s *Shell) Register(cmd Command) {
	if cmd.Name == "" || cmd.Run == nil {
		panic("shell: Register needs a name and a handler")
	}
	if _, exists := s.cmds.Get(Command{Name: cmd.Name}); exists {
		panic("shell: duplicate command " + cmd.Name)
	}
	s.cmds.ReplaceOrInsert(cmd)
}

// Commands returns the registered command names in sorted order.
func (s *Shell) Commands() []string {
	names := make([]string, 0, s.cmds.Len())
	s.cmds.Ascend(func(c Command) bool {
		names = append(names, c.Name)
		return true
	})
	return names
}

// Run reads, parses and dispatches lines until the exit builtin runs,
// input ends, or ctx is cancelled. Cancellation is observed between
// lines, not during a blocking read. Command errors are reported on the
// output and do not end the session.
func (s *Shell) Run(ctx context.Context) error {
	fd, interactive := s.probeTerminal()
	s.log.Debug("session start", zap.Bool("interactive", interactive))

	var cooked *bufio.Reader
	if !interactive {
		cooked = bufio.NewReader(s.in)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.readLine(fd, interactive, cooked)
		if errors.Is(err, io.EOF) {
			s.log.Debug("session end", zap.String("cause", "eof"))
			return nil
		}
		if err != nil {
			return fmt.Errorf("shell: read: %w", err)
		}

		line = strings.TrimSpace(line)
		s.hist.append(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.dispatch(ctx, line); err != nil {
			s.log.Debug("session end", zap.String("cause", "exit"))
			return nil
		}
	}
}

// Exec parses and runs a single line. Unlike the Run loop it hands the
// command's error back to the caller, wrapping ErrUnknownCommand when the
// first word matches nothing.
func (s *Shell) Exec(ctx context.Context, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("shell: parse %q: %w", line, err)
	}
	if len(args) == 0 {
		return nil
	}
	cmd, ok := s.cmds.Get(Command{Name: args[0]})
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return cmd.Run(ctx, s.out, args[1:])
}

// dispatch runs one line and renders any failure. The returned error is
// non-nil only for ErrExit, which ends the session.
func (s *Shell) dispatch(ctx context.Context, line string) error {
	err := s.Exec(ctx, line)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrExit) {
		return err
	}
	msg := err.Error()
	if errors.Is(err, ErrUnknownCommand) {
		msg += " (try help)"
	}
	fmt.Fprintln(s.out, s.render(s.styles.Error, msg))
	s.log.Debug("command failed", zap.String("line", line), zap.Error(err))
	return nil
}

// probeTerminal decides whether the input supports raw mode editing. The
// probe round-trips the termios settings once so a terminal that refuses
// raw mode degrades to cooked reads instead of failing mid session.
func (s *Shell) probeTerminal() (int, bool) {
	f, ok := s.in.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return -1, false
	}
	fd := int(f.Fd())
	st, err := term.MakeRaw(fd)
	if err != nil {
		s.log.Warn("raw mode unavailable, line editing disabled", zap.Error(err))
		return -1, false
	}
	if err := term.Restore(fd, st); err != nil {
		s.log.Warn("terminal restore failed", zap.Error(err))
		return -1, false
	}
	return fd, true
}

// readLine fetches one line. Interactive reads hold the terminal in raw
// mode only while editing, so command handlers print under normal output
// processing. Cooked reads do not prompt, which keeps piped scripts from
// echoing prompt noise.
func (s *Shell) readLine(fd int, interactive bool, cooked *bufio.Reader) (string, error) {
	if !interactive {
		line, err := cooked.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && line != "" {
				return line, nil
			}
			return "", err
		}
		return line, nil
	}

	st, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("shell: raw mode: %w", err)
	}
	defer term.Restore(fd, st)
	return s.ed.ReadLine(s.render(s.styles.Prompt, s.prompt))
}
