package harvest

import (
	"strings"

	"golang.org/x/text/width"
)

// DisplayWidth returns the number of terminal cells s occupies.
// Runes with East Asian width Wide or Fullwidth count as two cells,
// every other rune as one.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// PadToWidth right-pads s with spaces to w cells.
// Text already at or beyond w is returned unchanged.
func PadToWidth(s string, w int) string {
	pad := w - DisplayWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
