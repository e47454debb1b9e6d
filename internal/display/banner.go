package display

import (
	"fmt"
	"os"

	"github.com/backmassage/avicore/internal/term"
)

// PrintBanner prints the ASCII art banner; cyan when colors are enabled.
// Skipped entirely when stdout is not a terminal.
func PrintBanner() {
	if !term.IsTerminal(os.Stdout) {
		return
	}
	fmt.Fprint(os.Stdout, term.Cyan)
	fmt.Fprint(os.Stdout, `                _
  __ ___   ___ (_) ___ ___  _ __ ___
 / _`+"`"+` \ \ / / |/ __/ _ \| '__/ _ \
| (_| |\ V /| | (_| (_) | | |  __/
 \__,_| \_/ |_|\___\___/|_|  \___|
`)
	fmt.Fprintln(os.Stdout, term.NC)
}
