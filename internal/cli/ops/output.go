// Package ops implements the operator commands of the draftsmith CLI. Every
// command runs the engine in-process against the configured data dir, so the
// CLI and the daemon share state through the same files and the same ingest
// lock.
package ops

import (
	"encoding/json"
	"fmt"
)

func printJSON(v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
