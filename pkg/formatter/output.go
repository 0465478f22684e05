package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how a result is rendered.
type Format string

// Output formats
const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTable:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want json, yaml or table)", s)
	}
}

// Render writes v in format f. table renders the table form; when it is nil
// tables fall back to json.
func Render(w io.Writer, f Format, v interface{}, table func(io.Writer) error) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		if table != nil {
			return table(w)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
