// Package printer writes command output: status lines, tables and JSON.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// OutputType selects how results are printed.
type OutputType string

const (
	OutputTypeTable OutputType = "table"
	OutputTypeJSON  OutputType = "json"
)

// ParseOutputType validates an --output flag value.
func ParseOutputType(s string) (OutputType, error) {
	switch OutputType(s) {
	case OutputTypeTable, "":
		return OutputTypeTable, nil
	case OutputTypeJSON:
		return OutputTypeJSON, nil
	}
	return "", fmt.Errorf("unsupported output format %q (table, json)", s)
}

// Styles colors the status lines.
type Styles struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

var (
	mu     sync.RWMutex
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
	styles           = Styles{
		Info:    lipgloss.NewStyle(),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// SetStyles replaces the status line styles.
func SetStyles(s Styles) {
	mu.Lock()
	defer mu.Unlock()
	styles = s
}

// SetOutput redirects printed output. A nil writer restores the default.
func SetOutput(stdout, stderr io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	out = stdout
	errOut = stderr
}

// Stdout returns the writer results are printed to.
func Stdout() io.Writer {
	_, w, _ := currentStyles()
	return w
}

func currentStyles() (Styles, io.Writer, io.Writer) {
	mu.RLock()
	defer mu.RUnlock()
	return styles, out, errOut
}

// PrintInfo prints an informational line.
func PrintInfo(msg string) {
	s, w, _ := currentStyles()
	fmt.Fprintln(w, s.Info.Render(msg))
}

// PrintSuccess prints a success line.
func PrintSuccess(msg string) {
	s, w, _ := currentStyles()
	fmt.Fprintln(w, s.Success.Render("✓ "+msg))
}

// PrintWarning prints a warning line to stderr.
func PrintWarning(msg string) {
	s, _, w := currentStyles()
	fmt.Fprintln(w, s.Warning.Render("! "+msg))
}

// PrintError prints an error line to stderr.
func PrintError(msg string) {
	s, _, w := currentStyles()
	fmt.Fprintln(w, s.Error.Render("✗ "+msg))
}

// Printer prints structured results.
type Printer struct {
	outputType OutputType
	compact    bool
	w          io.Writer
}

// New returns a printer writing to stdout. compact disables JSON indentation.
func New(outputType OutputType, compact bool) *Printer {
	_, w, _ := currentStyles()
	return &Printer{outputType: outputType, compact: compact, w: w}
}

// PrintJSON encodes v.
func (p *Printer) PrintJSON(v any) error {
	enc := json.NewEncoder(p.w)
	if !p.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// TruncateString shortens s to at most width cells, ending in "...".
func TruncateString(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "...")
}
