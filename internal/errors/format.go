package errors

import "strings"

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

func red(text string) string  { return color(colorRed, text) }
func cyan(text string) string { return color(colorCyan, text) }
func gray(text string) string { return color(colorGray, text) }
func bold(text string) string { return color(colorBold, text) }

// Format returns a formatted error message for terminal display.
func (e *FaxError) Format() string {
	var b strings.Builder

	b.WriteString(red(bold("ERROR ")))
	if e.Code != "" {
		b.WriteString(bold(e.Code + ": "))
	}
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Category != "" {
		b.WriteString(gray("  category: " + string(e.Category)))
		b.WriteString("\n")
	}
	if e.Detail != "" {
		b.WriteString("\n  " + e.Detail + "\n")
	}
	if e.Wrapped != nil {
		b.WriteString("\n  " + gray("caused by: "+e.Wrapped.Error()) + "\n")
	}
	if e.Suggestion != "" {
		b.WriteString("\n  " + cyan("Hint: ") + e.Suggestion + "\n")
	}
	if e.DocURL != "" {
		b.WriteString("\n  " + gray("Learn more: "+e.DocURL) + "\n")
	}

	return b.String()
}
