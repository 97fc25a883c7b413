package report

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

type palette struct {
	title lipgloss.Style
	value lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
}

func newPalette(noColor bool) palette {
	if noColor {
		plain := lipgloss.NewStyle()
		return palette{title: plain, value: plain, warn: plain, err: plain}
	}
	return palette{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true),
		value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true),
		warn: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		err:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// ColorEnabled reports whether output to f should be coloured: f must be a
// terminal, NO_COLOR unset and noColor false.
func ColorEnabled(f *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// FormatError renders an error line for stderr.
func FormatError(err error, noColor bool) string {
	return newPalette(noColor).err.Render("error:") + " " + err.Error()
}
