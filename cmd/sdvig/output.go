package main

import (
	"fmt"
	"io"

	"github.com/naveenspark/sdvig/pkg/figma"
)

// ANSI color constants for command output (no lipgloss, runs outside TUI).
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiItalic = "\033[3m"
	ansiLime   = "\033[38;2;212;255;51m"  // #d4ff33
	ansiOlive  = "\033[38;2;150;190;40m"  // #96be28
	ansiSlate  = "\033[38;2;136;144;160m" // #8890a0
)

// printLogo prints the spaced SDVIG wordmark in alternating lime.
func printLogo(w io.Writer) {
	letters := "SDVIG"
	colors := [2]string{ansiLime, ansiOlive}
	fmt.Fprint(w, "\n  ")
	for i, ch := range letters {
		fmt.Fprintf(w, "%s%s%c%s", colors[i%2], ansiBold, ch, ansiReset)
		if i < len(letters)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

// printSynced greets the owner of the saved token.
func printSynced(w io.Writer, me *figma.Me) {
	printLogo(w)
	fmt.Fprintf(w, "\n  %s%s✓%s  Figma connected as %s%s%s%s\n",
		ansiLime, ansiBold, ansiReset,
		ansiLime, ansiBold, me.Handle, ansiReset,
	)
	if me.Email != "" {
		fmt.Fprintf(w, "     %s%s%s\n", ansiSlate, me.Email, ansiReset)
	}
	fmt.Fprintln(w)
}

// printFile describes the design file behind link.
func printFile(w io.Writer, link string, f *figma.File) {
	fmt.Fprintf(w, "\n  %s%s%s%s\n", ansiLime, ansiBold, f.Name, ansiReset)
	fmt.Fprintf(w, "  %s%s%s\n", ansiSlate, link, ansiReset)
	if f.LastModified != "" {
		fmt.Fprintf(w, "  %smodified%s %s\n", ansiSlate, ansiReset, f.LastModified)
	}
	if f.ThumbnailURL != "" {
		fmt.Fprintf(w, "  %sthumbnail%s %s\n", ansiSlate, ansiReset, f.ThumbnailURL)
	}
	fmt.Fprintln(w)
}

// printCleared reports how many saved fields reset removed.
func printCleared(w io.Writer, n int) {
	printLogo(w)
	if n == 0 {
		fmt.Fprintf(w, "\n  %s%sNothing saved yet.%s\n\n", ansiSlate, ansiItalic, ansiReset)
		return
	}
	fmt.Fprintf(w, "\n  %s%s%d%s saved fields cleared. %s%sThe next start is a clean slate.%s\n\n",
		ansiLime, ansiBold, n, ansiReset,
		ansiSlate, ansiItalic, ansiReset,
	)
}
