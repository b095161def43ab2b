// Package output emits the JSON contract on stdout.
//
// Each invocation prints exactly one JSON object: on success the identifiers
// and credentials that were provisioned, on failure an object with an "error"
// key and optional operator guidance. Anything else belongs on stderr.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Stdout is the destination for the JSON result. Replaced in tests.
var Stdout io.Writer = os.Stdout

// Failure is the error object emitted when a required step fails.
type Failure struct {
	Error          string   `json:"error"`
	Details        any      `json:"details,omitempty"`
	ActionRequired string   `json:"action_required,omitempty"`
	Instructions   []string `json:"instructions,omitempty"`
	NextStep       string   `json:"next_step,omitempty"`
}

// Emit writes v as indented JSON followed by a newline.
func Emit(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(Stdout, string(data))
	return err
}

// Fail emits the failure object and returns an error carrying the same
// message, so the process exits non-zero.
func Fail(f Failure) error {
	_ = Emit(f)
	return errors.New(f.Error)
}

// Failf emits a plain failure with a formatted message.
func Failf(format string, args ...any) error {
	return Fail(Failure{Error: fmt.Sprintf(format, args...)})
}
