package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
)

// Formatter writes command output in a selected format.
type Formatter interface {
	FormatTo(w io.Writer, data interface{}) error
}

// TextFormatter writes output as plain text. Values implementing
// fmt.Stringer render through String; everything else through %v.
type TextFormatter struct{}

// FormatTo writes data to writer in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data interface{}) error {
	if s, ok := data.(fmt.Stringer); ok {
		_, err := fmt.Fprintln(w, s.String())
		return err
	}
	_, err := fmt.Fprintf(w, "%v\n", data)
	return err
}

// JSONFormatter writes output as indented JSON.
type JSONFormatter struct{}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// NewFormatter creates a formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	if format == FormatJSON {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}
