package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// writeOutput prints v as indented JSON or the text summary.
func writeOutput(w io.Writer, format string, v interface{}, text string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
