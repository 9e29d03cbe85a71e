package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/forestrie/go-kernelkit/ringbuf"
)

const (
	keyCtrlA     = 0x01
	keyCtrlB     = 0x02
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyCtrlE     = 0x05
	keyCtrlF     = 0x06
	keyCtrlK     = 0x0b
	keyCtrlL     = 0x0c
	keyCtrlU     = 0x15
	keyCtrlW     = 0x17
	keyEscape    = 0x1b
	keyBackspace = 0x7f
)

// editor reads and edits one line at a time against a raw mode terminal.
// Input bytes are staged through a ring buffer, so escape sequences that
// arrive split across reads decode the same as ones that arrive whole.
type editor struct {
	in      io.Reader
	out     io.Writer
	pending *ringbuf.Buffer

	prompt string
	buf    []rune
	pos    int

	hist       *history
	saved      string
	navigating bool
}

func newEditor(in io.Reader, out io.Writer, hist *history) *editor {
	return &editor{
		in:      in,
		out:     out,
		pending: ringbuf.New(128),
		hist:    hist,
	}
}

// ReadLine performs one interactive edit and returns the line without its
// terminator. It returns io.EOF for ctrl-d on an empty line or once the
// input drains. The prompt may carry colour codes; cursor positioning
// never depends on its printed width.
func (e *editor) ReadLine(prompt string) (string, error) {
	e.prompt = prompt
	e.buf = e.buf[:0]
	e.pos = 0
	e.navigating = false
	e.refresh()

	for {
		c, err := e.nextByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(e.buf) > 0 {
				io.WriteString(e.out, "\r\n")
				return string(e.buf), nil
			}
			return "", err
		}

		switch {
		case c == '\r' || c == '\n':
			io.WriteString(e.out, "\r\n")
			return string(e.buf), nil
		case c == keyCtrlC:
			e.buf = e.buf[:0]
			e.pos = 0
			e.navigating = false
			io.WriteString(e.out, "^C\r\n")
			e.refresh()
		case c == keyCtrlD:
			if len(e.buf) == 0 {
				io.WriteString(e.out, "\r\n")
				return "", io.EOF
			}
			e.deleteAt()
		case c == keyBackspace || c == 0x08:
			e.backspace()
		case c == keyCtrlA:
			e.pos = 0
			e.refresh()
		case c == keyCtrlE:
			e.pos = len(e.buf)
			e.refresh()
		case c == keyCtrlB:
			e.moveLeft()
		case c == keyCtrlF:
			e.moveRight()
		case c == keyCtrlU:
			e.buf = append(e.buf[:0], e.buf[e.pos:]...)
			e.pos = 0
			e.refresh()
		case c == keyCtrlK:
			e.buf = e.buf[:e.pos]
			e.refresh()
		case c == keyCtrlW:
			e.killWordBack()
		case c == keyCtrlL:
			io.WriteString(e.out, "\x1b[H\x1b[2J")
			e.refresh()
		case c == keyEscape:
			if err := e.escape(); err != nil {
				return "", err
			}
		case c >= 0x20:
			r := rune(c)
			if c >= utf8.RuneSelf {
				r, err = e.nextRune(c)
				if err != nil {
					return "", err
				}
				if r == utf8.RuneError {
					continue
				}
			}
			e.insert(r)
		}
	}
}

// nextByte drains the staging buffer before touching the reader. A read
// that returns bytes and an error delivers the bytes first; the error
// resurfaces on the following call.
func (e *editor) nextByte() (byte, error) {
	for {
		if c, ok := e.pending.GetByte(); ok {
			return c, nil
		}
		var chunk [64]byte
		n, err := e.in.Read(chunk[:])
		if n > 0 {
			e.pending.Put(chunk[:n])
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

// nextRune completes a UTF-8 sequence whose first byte has been consumed.
func (e *editor) nextRune(first byte) (rune, error) {
	var rb [utf8.UTFMax]byte
	rb[0] = first
	n := 1
	for !utf8.FullRune(rb[:n]) {
		if n == len(rb) {
			return utf8.RuneError, nil
		}
		c, err := e.nextByte()
		if err != nil {
			return 0, err
		}
		rb[n] = c
		n++
	}
	r, _ := utf8.DecodeRune(rb[:n])
	return r, nil
}

// escape decodes the tail of an ANSI key sequence. Sequences the editor
// does not bind are swallowed so stray function keys cannot corrupt the
// line.
func (e *editor) escape() error {
	c, err := e.nextByte()
	if err != nil {
		return err
	}
	if c != '[' && c != 'O' {
		return nil
	}
	c, err = e.nextByte()
	if err != nil {
		return err
	}
	switch c {
	case 'A':
		e.historyPrev()
	case 'B':
		e.historyNext()
	case 'C':
		e.moveRight()
	case 'D':
		e.moveLeft()
	case 'H':
		e.pos = 0
		e.refresh()
	case 'F':
		e.pos = len(e.buf)
		e.refresh()
	case '1', '3', '4', '7', '8':
		final, err := e.nextByte()
		if err != nil {
			return err
		}
		if final != '~' {
			return nil
		}
		switch c {
		case '3':
			e.deleteAt()
		case '1', '7':
			e.pos = 0
			e.refresh()
		case '4', '8':
			e.pos = len(e.buf)
			e.refresh()
		}
	}
	return nil
}

func (e *editor) insert(r rune) {
	e.buf = append(e.buf, 0)
	copy(e.buf[e.pos+1:], e.buf[e.pos:])
	e.buf[e.pos] = r
	e.pos++
	e.refresh()
}

func (e *editor) backspace() {
	if e.pos == 0 {
		return
	}
	e.buf = append(e.buf[:e.pos-1], e.buf[e.pos:]...)
	e.pos--
	e.refresh()
}

func (e *editor) deleteAt() {
	if e.pos >= len(e.buf) {
		return
	}
	e.buf = append(e.buf[:e.pos], e.buf[e.pos+1:]...)
	e.refresh()
}

func (e *editor) killWordBack() {
	i := e.pos
	for i > 0 && e.buf[i-1] == ' ' {
		i--
	}
	for i > 0 && e.buf[i-1] != ' ' {
		i--
	}
	e.buf = append(e.buf[:i], e.buf[e.pos:]...)
	e.pos = i
	e.refresh()
}

func (e *editor) moveLeft() {
	if e.pos > 0 {
		e.pos--
		e.refresh()
	}
}

func (e *editor) moveRight() {
	if e.pos < len(e.buf) {
		e.pos++
		e.refresh()
	}
}

// historyPrev recalls the previous line. The first step saves the line
// being edited so walking forward again can restore it.
func (e *editor) historyPrev() {
	if e.hist == nil {
		return
	}
	if !e.navigating {
		e.saved = string(e.buf)
		e.navigating = true
	}
	line, ok := e.hist.prev()
	if !ok {
		return
	}
	e.setLine(line)
}

func (e *editor) historyNext() {
	if e.hist == nil || !e.navigating {
		return
	}
	line, ok := e.hist.next()
	if ok {
		e.setLine(line)
		return
	}
	e.setLine(e.saved)
	e.navigating = false
}

func (e *editor) setLine(s string) {
	e.buf = append(e.buf[:0], []rune(s)...)
	e.pos = len(e.buf)
	e.refresh()
}

// refresh redraws the whole line. The cursor lands on pos via a relative
// move back from the end, which keeps colour codes in the prompt out of
// the column math.
func (e *editor) refresh() {
	var sb strings.Builder
	sb.WriteString("\r\x1b[K")
	sb.WriteString(e.prompt)
	sb.WriteString(string(e.buf))
	if tail := len(e.buf) - e.pos; tail > 0 {
		fmt.Fprintf(&sb, "\x1b[%dD", tail)
	}
	io.WriteString(e.out, sb.String())
}
