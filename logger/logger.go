// This file is part of Saturn Core.
//
// Saturn Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Saturn Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Saturn Core.  If not, see <https://www.gnu.org/licenses/>.


// Package logger implements the ring-buffer logger used to report
// recoverable conditions without aborting the emulator (spec §7: "the core
// never aborts the emulator" for input, protocol, state-validation or
// resource errors — it logs and continues).
//
// The buffer is fixed-size; once full, the oldest entry is discarded to
// make room for the newest. Frontends drain it with Write or Tail.
package logger

import (
	"fmt"
	"io"
	"sync"
)

const maxEntries = 1000

type entry struct {
	tag string
	msg string
}

var (
	mu      sync.Mutex
	entries []entry
)

// Log appends a tag: message entry to the ring. Oldest entries are dropped
// once the ring reaches capacity.
func Log(tag string, msg string) {
	mu.Lock()
	defer mu.Unlock()

	entries = append(entries, entry{tag: tag, msg: msg})
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
}

// Logf is a convenience wrapper that formats msg before logging it.
func Logf(tag string, format string, args ...interface{}) {
	Log(tag, fmt.Sprintf(format, args...))
}

// Write dumps every entry currently in the ring to w, in order, one per
// line, formatted as "tag: message".
func Write(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	for _, e := range entries {
		fmt.Fprintf(w, "%s: %s\n", e.tag, e.msg)
	}
}

// Tail writes the most recent num entries to w, oldest first. Asking for
// more entries than exist, or for zero, is not an error.
func Tail(w io.Writer, num int) {
	mu.Lock()
	defer mu.Unlock()

	if num <= 0 {
		return
	}
	if num > len(entries) {
		num = len(entries)
	}

	for _, e := range entries[len(entries)-num:] {
		fmt.Fprintf(w, "%s: %s\n", e.tag, e.msg)
	}
}

// Clear empties the ring. Intended for use between test cases.
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	entries = nil
}
