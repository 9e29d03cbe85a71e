package shell

// history keeps the most recent command lines, oldest first, capped at
// max entries. cursor is the recall position: len(entries) means the
// user is editing a fresh line, smaller values walk back in time.
type history struct {
	max     int
	entries []string
	cursor  int
}

func newHistory(max int) *history {
	if max < 1 {
		max = 1
	}
	return &history{max: max}
}

// append records a line and resets the recall cursor. Blank lines and
// immediate repeats are dropped.
func (h *history) append(line string) {
	defer func() { h.cursor = len(h.entries) }()
	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	if len(h.entries) == h.max {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:h.max-1]
	}
	h.entries = append(h.entries, line)
}

// prev steps one line back. It reports false at the oldest entry.
func (h *history) prev() (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// next steps one line forward. It reports false once the cursor steps
// past the newest entry, meaning the fresh line should be restored.
func (h *history) next() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return "", false
	}
	return h.entries[h.cursor], true
}

// list returns the stored lines, oldest first.
func (h *history) list() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
