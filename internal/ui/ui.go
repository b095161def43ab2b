// Package ui renders human-facing status output on stderr. Styling is
// dropped when stderr is not a terminal so piped diagnostics stay clean.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	warningStyle = lipgloss.NewStyle().Foreground(colorYellow)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// Stderr is the summary sink, injectable for tests.
var Stderr io.Writer = os.Stderr

// Interactive reports whether stderr is attached to a terminal.
func Interactive() bool {
	f, ok := Stderr.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func render(style lipgloss.Style, s string) string {
	if !Interactive() {
		return s
	}
	return style.Render(s)
}

// Title prints a bold section heading.
func Title(format string, args ...any) {
	fmt.Fprintln(Stderr, render(titleStyle, fmt.Sprintf(format, args...)))
}

// Success prints a green status line.
func Success(format string, args ...any) {
	fmt.Fprintln(Stderr, render(successStyle, "[OK] "+fmt.Sprintf(format, args...)))
}

// Error prints a red status line.
func Error(format string, args ...any) {
	fmt.Fprintln(Stderr, render(errorStyle, "[!!] "+fmt.Sprintf(format, args...)))
}

// Warning prints a yellow status line.
func Warning(format string, args ...any) {
	fmt.Fprintln(Stderr, render(warningStyle, "[??] "+fmt.Sprintf(format, args...)))
}

// Detail prints a dim detail line, indented under its status line.
func Detail(format string, args ...any) {
	fmt.Fprintln(Stderr, render(dimStyle, "     "+fmt.Sprintf(format, args...)))
}
