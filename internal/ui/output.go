// Package ui writes the status lines of the egeinstall CLI.
//
// Status lines go to the status stream (stderr by default) so that stdout carries
// only the rendered report and stays parseable with -o json.
package ui

import (
	"fmt"
	"io"
	"os"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// Writer provides styled status output that respects color settings.
type Writer struct {
	out     io.Writer
	status  io.Writer
	noColor bool
}

// NewWriter creates a Writer with the report on stdout and status on stderr.
// Color is disabled when noColor is true or the NO_COLOR env var is set.
func NewWriter(noColor bool) *Writer {
	return &Writer{
		out:     os.Stdout,
		status:  os.Stderr,
		noColor: noColor || os.Getenv("NO_COLOR") != "",
	}
}

// NewWriterWithOutputs creates a Writer with custom destinations.
func NewWriterWithOutputs(out, status io.Writer, noColor bool) *Writer {
	return &Writer{
		out:     out,
		status:  status,
		noColor: noColor,
	}
}

// Out returns the report stream.
func (w *Writer) Out() io.Writer {
	return w.out
}

// Step prints a "[i/n] name" progress line for a one-based step index.
func (w *Writer) Step(index, total int, name string) {
	writeLine(w.status, w.styled(colorCyan, fmt.Sprintf("[%d/%d]", index, total)), name)
}

// Success prints a message with a green checkmark prefix.
func (w *Writer) Success(msg string) {
	writeLine(w.status, w.styled(colorGreen, "\u2713"), msg)
}

// Warning prints a message with a yellow prefix.
func (w *Writer) Warning(msg string) {
	writeLine(w.status, w.styled(colorYellow, "warning:"), msg)
}

// Error prints a message with a red prefix.
func (w *Writer) Error(msg string) {
	writeLine(w.status, w.styled(colorRed, "error:"), msg)
}

// Info prints a message with a cyan prefix.
func (w *Writer) Info(msg string) {
	writeLine(w.status, w.styled(colorCyan, "info:"), msg)
}

// Bold returns text in bold.
func (w *Writer) Bold(msg string) string {
	return w.styled(colorBold, msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Infof prints a formatted informational message.
func (w *Writer) Infof(format string, args ...any) {
	w.Info(fmt.Sprintf(format, args...))
}

func (w *Writer) styled(color, text string) string {
	if w.noColor {
		return text
	}

	return color + text + colorReset
}

func writeLine(out io.Writer, prefix, msg string) {
	if _, err := fmt.Fprintf(out, "%s %s\n", prefix, msg); err != nil {
		// Status output is best effort.
		return
	}
}
