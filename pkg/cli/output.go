package cli

import (
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
)

// printJSON writes the value to stdout as indented JSON. Command output goes
// to stdout so that logs on stderr or a file do not interleave with it.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal output")
	}
	data = append(data, '\n')

	if _, err := os.Stdout.Write(data); err != nil {
		return goerr.Wrap(err, "failed to write output")
	}
	return nil
}
