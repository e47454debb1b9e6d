// Package display renders run progress and formats sizes and durations for
// human-readable output. The core only emits structured progress events;
// everything visual lives here.
package display

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/backmassage/avicore/internal/batch"
	"github.com/backmassage/avicore/internal/engine"
	"github.com/backmassage/avicore/internal/term"
)

const (
	defaultWidth = 80
	minBarCells  = 10
)

// Bar renders a single-line progress bar on stderr, overwritten in place.
// It degrades to plain per-event lines when stderr is not a terminal, so
// redirected output stays readable.
type Bar struct {
	out     *os.File
	tty     bool
	wrote   bool
	verbose bool
}

// NewBar builds a renderer for the current terminal. When verbose is set
// the in-place bar is disabled, since debug logging would shred it.
func NewBar(verbose bool) *Bar {
	return &Bar{
		out:     os.Stderr,
		tty:     term.IsTerminal(os.Stderr) && !verbose,
		verbose: verbose,
	}
}

// Observe renders one progress event.
func (b *Bar) Observe(ev batch.ProgressEvent) {
	if !b.tty {
		return // the runner's own log lines cover non-TTY output
	}

	width := term.Width(b.out, defaultWidth)
	pct := 0
	if ev.Total > 0 {
		pct = ev.Index * 100 / ev.Total
		if ev.Status == engine.StatusRunning {
			pct = (ev.Index - 1) * 100 / ev.Total
		}
	}

	// Truncate the filename rather than the assembled line, so the status
	// label's escape sequences are never cut mid-way.
	prefix := fmt.Sprintf("%s %d/%d %3d%% ", b.cells(pct, width), ev.Index, ev.Total, pct)
	name := truncateName(ev.CurrentFile, width-len(prefix)-10)
	fmt.Fprintf(b.out, "\r\033[K%s%s %s", prefix, name, b.statusLabel(ev.Status))
	b.wrote = true
}

// Finish terminates the in-place line so the summary starts fresh.
func (b *Bar) Finish() {
	if b.wrote {
		fmt.Fprintln(b.out)
		b.wrote = false
	}
}

func (b *Bar) cells(pct, width int) string {
	n := width / 4
	if n < minBarCells {
		n = minBarCells
	}
	filled := n * pct / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", n-filled) + "]"
}

// truncateName shortens name to at most room bytes with a "..." marker,
// backing up to a rune boundary so multi-byte filenames are never split
// mid-sequence.
func truncateName(name string, room int) string {
	if room <= 3 || len(name) <= room {
		return name
	}
	cut := room - 3
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut] + "..."
}

func (b *Bar) statusLabel(st engine.Status) string {
	switch st {
	case engine.StatusSuccess:
		return term.Green + "ok" + term.NC
	case engine.StatusFailed:
		return term.Red + "failed" + term.NC
	case engine.StatusSkipped:
		return term.Yellow + "skipped" + term.NC
	default:
		return term.Cyan + "…" + term.NC
	}
}
