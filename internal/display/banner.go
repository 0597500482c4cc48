package display

import (
	"fmt"
	"io"

	"github.com/backmassage/toh264/internal/term"
)

const banner = `  _        _     ____   __   _  _
 | |_ ___ | |__ |___ \ / /_ | || |
 | __/ _ \| '_ \  __) | '_ \| || |_
 | || (_) | | | |/ __/| (_) |__   _|
  \__\___/|_| |_|_____|\___/   |_|
`

// PrintBanner prints the ASCII art banner to w, in magenta when p has colors.
func PrintBanner(w io.Writer, p term.Palette) {
	fmt.Fprint(w, p.Magenta+banner+p.NC)
	fmt.Fprintln(w)
}
