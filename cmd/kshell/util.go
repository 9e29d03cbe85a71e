package main

import (
	"fmt"
	"strconv"
)

// parseKey accepts any base strconv understands, so 0x40 and 64 name the
// same slot.
func parseKey(s string) (uint64, error) {
	key, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad key %q: %w", s, err)
	}
	return key, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad count %q", s)
	}
	return n, nil
}

func usageErr(u string) error {
	return fmt.Errorf("usage: %s", u)
}
