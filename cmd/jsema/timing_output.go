package main

import (
	"encoding/json"
	"io"

	"jsema/internal/observ"
)

// printTimings writes phase timings; asJSON follows the machine-readable
// report formats so stderr stays parseable too.
func printTimings(out io.Writer, timer *observ.Timer, asJSON bool) error {
	if out == nil || timer == nil {
		return nil
	}
	if asJSON {
		return json.NewEncoder(out).Encode(timer.Report())
	}
	_, err := io.WriteString(out, timer.Summary())
	return err
}
