package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pkgscope/frontier/pkg/frontier"
)

// Format identifies a report output format.
type Format string

// Supported output formats.
const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name from user input.
// It returns an error listing the valid formats for anything else.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatTOML:
		return FormatTOML, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'toml', 'json', or 'html')", s)
	}
}

// Write renders the report to w in the given format.
// All formats emit map keys in sorted order, so output for a fixed report
// is byte-stable across runs.
func Write(r *frontier.Report, format Format, w io.Writer) error {
	switch format {
	case FormatTOML:
		return writeTOML(r, w)
	case FormatJSON:
		return writeJSON(r, w)
	case FormatHTML:
		return writeHTML(r, w)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeTOML(r *frontier.Report, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

func writeJSON(r *frontier.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
