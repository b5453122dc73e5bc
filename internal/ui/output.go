package ui

import "fmt"

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓"
	SymbolWarning = "⚠"
)

// Success returns a success message with checkmark symbol.
func Success(msg string) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, msg)
}

// Warningf returns a formatted warning message with warning symbol.
func Warningf(format string, args ...interface{}) string {
	return fmt.Sprintf("%s %s", SymbolWarning, fmt.Sprintf(format, args...))
}

// FilePath returns an accent-styled file path when stdout is a terminal.
func FilePath(path string) string {
	if !IsTerminal() {
		return path
	}
	return Accent.Render(path)
}

// Hint returns a muted hint line.
func Hint(msg string) string {
	if !IsTerminal() {
		return msg
	}
	return Muted.Render(msg)
}
